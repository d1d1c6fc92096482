package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/internal/api"
	"github.com/cryptoblog/blogctl/internal/session"
	"github.com/cryptoblog/blogctl/pkg/output"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if username == "" {
			if username, err = promptLine("Username or email"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptPassword("Password"); err != nil {
				return err
			}
		}
		if username == "" || password == "" {
			return fmt.Errorf("username and password are required")
		}

		client := newClient(cmd)
		resp, err := client.SignIn(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		identity := session.Identity{
			ID:       resp.ID,
			Username: resp.Username,
			Email:    resp.Email,
			Roles:    resp.Roles,
		}
		if err := store.SaveSession(resp.Token, identity); err != nil {
			return fmt.Errorf("signed in but failed to save session: %w", err)
		}

		output.Success("Logged in as %s", resp.Username)
		if store.IsAdmin() {
			output.Info("Administrator access enabled.")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.ClearSession(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		output.Success("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !store.IsAuthenticated() {
			output.Warn("Not logged in")
			return nil
		}
		identity, ok := store.Identity()
		if !ok {
			output.Warn("Not logged in")
			return nil
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(identity)
		}
		output.Info("Username: %s", output.Sanitize(identity.Username))
		output.Info("Email:    %s", output.Sanitize(identity.Email))
		if store.IsAdmin() {
			output.Info("Role:     administrator")
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account (multi-step email verification)",
	Long: `Register walks through the signup flow: it sends a verification
code to your email, asks for the code, then for a username and password.
An interrupted signup resumes at the verification step on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		ctx := cmd.Context()

		restart, _ := cmd.Flags().GetBool("restart")
		if restart {
			if err := store.ClearPendingRegistration(); err != nil {
				return err
			}
		}

		pending, resuming := store.PendingRegistration()
		if !resuming {
			var err error
			if pending, err = startRegistration(cmd, client); err != nil {
				return err
			}
		} else {
			output.Info("Resuming signup for %s", output.Sanitize(pending.Email))
			resend, _ := cmd.Flags().GetBool("resend")
			if resend {
				if err := client.ResendOTP(ctx, pending.RegistrationID); err != nil {
					return err
				}
				output.Success("Verification code resent to %s", output.Sanitize(pending.Email))
			}
		}

		otp, err := promptLine("Verification code")
		if err != nil {
			return err
		}
		if err := client.ValidateOTP(ctx, pending.RegistrationID, otp); err != nil {
			if api.IsNotFound(err) {
				// The backend forgot this registration; the saved state is
				// useless now.
				_ = store.ClearPendingRegistration()
				return fmt.Errorf("registration expired, please run 'blogctl register' again")
			}
			return err
		}

		username, err := promptLine("Choose a username")
		if err != nil {
			return err
		}
		password, err := promptNewPassword()
		if err != nil {
			return err
		}

		if err := client.CompleteSignUp(ctx, pending.RegistrationID, username, password); err != nil {
			return err
		}
		if err := store.ClearPendingRegistration(); err != nil {
			return err
		}

		output.Success("Account created. Run 'blogctl login' to sign in.")
		return nil
	},
}

func startRegistration(cmd *cobra.Command, client *api.Client) (session.PendingRegistration, error) {
	email, _ := cmd.Flags().GetString("email")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")

	var err error
	if email == "" {
		if email, err = promptLine("Email"); err != nil {
			return session.PendingRegistration{}, err
		}
	}
	if firstName == "" {
		if firstName, err = promptLine("First name"); err != nil {
			return session.PendingRegistration{}, err
		}
	}
	if lastName == "" {
		if lastName, err = promptLine("Last name"); err != nil {
			return session.PendingRegistration{}, err
		}
	}

	start, err := client.InitiateRegistration(cmd.Context(), email, firstName, lastName)
	if err != nil {
		return session.PendingRegistration{}, err
	}

	pending := session.PendingRegistration{RegistrationID: start.RegistrationID, Email: email}
	if err := store.SavePendingRegistration(pending); err != nil {
		return session.PendingRegistration{}, fmt.Errorf("failed to save signup state: %w", err)
	}
	output.Info("Verification code sent to %s", output.Sanitize(email))
	return pending, nil
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a forgotten password via emailed code",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		ctx := cmd.Context()

		email, _ := cmd.Flags().GetString("email")
		var err error
		if email == "" {
			if email, err = promptLine("Email"); err != nil {
				return err
			}
		}

		if err := client.InitiatePasswordReset(ctx, email); err != nil {
			return err
		}
		output.Info("Reset code sent to %s", output.Sanitize(email))

		var otp string
		for {
			if otp, err = promptLine("Reset code (or 'resend')"); err != nil {
				return err
			}
			if otp != "resend" {
				break
			}
			if err := client.ResendResetOTP(ctx, email); err != nil {
				return err
			}
			output.Info("Reset code resent to %s", output.Sanitize(email))
		}
		if err := client.ValidateResetOTP(ctx, email, otp); err != nil {
			return err
		}

		password, err := promptNewPassword()
		if err != nil {
			return err
		}
		if err := client.ResetPassword(ctx, email, otp, password); err != nil {
			return err
		}

		output.Success("Password updated. Run 'blogctl login' to sign in.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "username or email")
	loginCmd.Flags().StringP("password", "p", "", "password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().Bool("resend", false, "resend the verification code when resuming")
	registerCmd.Flags().Bool("restart", false, "discard an interrupted signup and start over")

	resetPasswordCmd.Flags().String("email", "", "account email address")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd, resetPasswordCmd)
}
