package upstream

import (
	"context"
	"encoding/json"
	"fmt"
)

// User is the authenticated fleet API account
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
	Data  *struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	} `json:"data"`
}

// Login authenticates against the fleet API and stores the returned bearer
// token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}
	body, err := c.post(ctx, "/login", payload)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	token, user := resp.Token, resp.User
	if token == "" && resp.Data != nil {
		token, user = resp.Data.Token, resp.Data.User
	}
	if token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	c.SetToken(token)
	return user, nil
}

// Logout invalidates the session server-side and clears the stored token
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "/logout", nil)
	c.clearToken()
	return err
}
