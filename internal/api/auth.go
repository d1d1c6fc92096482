package api

import "context"

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// SignIn authenticates with a username (or email) and password. Persisting
// the returned credential is the caller's job; the request layer itself
// never writes to the session store on success.
func (c *Client) SignIn(ctx context.Context, username, password string) (*SignInResponse, error) {
	var resp SignInResponse
	req := SignInRequest{Username: username, Password: password}
	if err := c.post(ctx, "/auth/signin", req, &resp); err != nil {
		return nil, withFallback(err, "invalid username or password")
	}
	return &resp, nil
}
