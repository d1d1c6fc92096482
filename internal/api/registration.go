package api

import (
	"context"
	"fmt"
	"net/url"
)

// The registration endpoints wrap their payloads in a common envelope:
// {"message": ..., "errorCode": ..., "data": {...}}.
type registrationEnvelope struct {
	Message   string            `json:"message"`
	ErrorCode string            `json:"errorCode"`
	Data      RegistrationStart `json:"data"`
}

// RegistrationStart identifies a signup in progress.
type RegistrationStart struct {
	RegistrationID string `json:"registrationId"`
}

type initiateRegistrationRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type validateOTPRequest struct {
	RegistrationID string `json:"registrationId"`
	OTP            string `json:"otp"`
}

type completeSignUpRequest struct {
	RegistrationID string `json:"registrationId"`
	Username       string `json:"username"`
	Password       string `json:"password"`
}

// InitiateRegistration starts the multi-step signup and returns the
// registration identifier used by the follow-up steps.
func (c *Client) InitiateRegistration(ctx context.Context, email, firstName, lastName string) (*RegistrationStart, error) {
	var envelope registrationEnvelope
	req := initiateRegistrationRequest{Email: email, FirstName: firstName, LastName: lastName}
	if err := c.post(ctx, "/v1/registration", req, &envelope); err != nil {
		return nil, withFallback(err, "registration failed, please try again")
	}
	return &envelope.Data, nil
}

// ValidateOTP confirms the one-time code sent to the registrant's email.
func (c *Client) ValidateOTP(ctx context.Context, registrationID, otp string) error {
	req := validateOTPRequest{RegistrationID: registrationID, OTP: otp}
	if err := c.put(ctx, "/v1/registration/validate-otp", req, nil); err != nil {
		return withFallback(err, "invalid verification code")
	}
	return nil
}

// CompleteSignUp finishes the signup with the chosen password.
func (c *Client) CompleteSignUp(ctx context.Context, registrationID, username, password string) error {
	req := completeSignUpRequest{RegistrationID: registrationID, Username: username, Password: password}
	if err := c.put(ctx, "/v1/registration/complete-sign-up", req, nil); err != nil {
		return withFallback(err, "failed to complete registration")
	}
	return nil
}

// ResendOTP asks for a fresh one-time code.
func (c *Client) ResendOTP(ctx context.Context, registrationID string) error {
	path := fmt.Sprintf("/v1/registration/%s/resend-email-otp", url.PathEscape(registrationID))
	if err := c.put(ctx, path, nil, nil); err != nil {
		return withFallback(err, "failed to resend verification code")
	}
	return nil
}
