package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/nikbrunner/mev/internal/model"
)

// Login posts the credentials. A 400 means they did not match. Caches are
// dropped on success, pages fetched before belong to the anonymous session.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/login")
	if err := c.check(resp, err); err != nil {
		return err
	}
	c.invalidateCaches()
	return nil
}

// SendVerificationEmail starts sign-up. A 400 means the email is taken.
func (c *Client) SendVerificationEmail(ctx context.Context, email string) error {
	return c.postEmail(ctx, "/send-verification-email", email)
}

// FindPassword issues a temporary password. A 400 means the email is
// unknown.
func (c *Client) FindPassword(ctx context.Context, email string) error {
	return c.postEmail(ctx, "/find-password", email)
}

// FindID recovers the username registered with email.
func (c *Client) FindID(ctx context.Context, email string) (string, error) {
	resp, err := c.emailRequest(ctx, email).Post("/find-id")
	if err := c.check(resp, err); err != nil {
		return "", err
	}

	var name string
	if err := json.Unmarshal(resp.Body(), &name); err == nil {
		return name, nil
	}
	// plain text bodies are accepted as well
	return strings.TrimSpace(resp.String()), nil
}

func (c *Client) postEmail(ctx context.Context, path, email string) error {
	resp, err := c.emailRequest(ctx, email).Post(path)
	return c.check(resp, err)
}

func (c *Client) emailRequest(ctx context.Context, email string) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(model.EmailRequest{Email: email})
}
