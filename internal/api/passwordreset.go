package api

import "context"

type passwordResetRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

// InitiatePasswordReset sends a reset code to the given email.
func (c *Client) InitiatePasswordReset(ctx context.Context, email string) error {
	req := passwordResetRequest{Email: email}
	if err := c.post(ctx, "/password-reset/initiate", req, nil); err != nil {
		return withFallback(err, "failed to start password reset")
	}
	return nil
}

// ValidateResetOTP checks the reset code without consuming it.
func (c *Client) ValidateResetOTP(ctx context.Context, email, otp string) error {
	req := passwordResetRequest{Email: email, OTP: otp}
	if err := c.post(ctx, "/password-reset/validate-otp", req, nil); err != nil {
		return withFallback(err, "invalid reset code")
	}
	return nil
}

// ResetPassword sets a new password using the emailed code.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	req := passwordResetRequest{Email: email, OTP: otp, NewPassword: newPassword}
	if err := c.post(ctx, "/password-reset/reset", req, nil); err != nil {
		return withFallback(err, "failed to reset password")
	}
	return nil
}

// ResendResetOTP asks for a fresh reset code.
func (c *Client) ResendResetOTP(ctx context.Context, email string) error {
	req := passwordResetRequest{Email: email}
	if err := c.post(ctx, "/password-reset/resend-otp", req, nil); err != nil {
		return withFallback(err, "failed to resend reset code")
	}
	return nil
}
