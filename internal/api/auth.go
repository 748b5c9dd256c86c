package api

import (
	"context"

	"github.com/empdesk/empdesk-console/internal/models"
)

// Login exchanges credentials for a session token. The only unauthenticated
// calls the client makes are this one and Register.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	var sess models.Session
	if err := c.Post(ctx, "/auth/login", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.Post(ctx, "/auth/register", req, nil)
}
