package apiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"jobmatch/internal/observability"
)

// User is the account snapshot kept in storage after login.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Headline   string   `json:"headline,omitempty"`
	Location   string   `json:"location,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	ResumePath string   `json:"resume_path,omitempty"`
}

// IsAuthenticated reports whether a token is stored.
func (c *Client) IsAuthenticated() bool {
	_, ok := c.storage.Get(TokenKey)
	return ok
}

// CurrentUser returns the stored user, or nil when none is stored or the
// stored value cannot be decoded.
func (c *Client) CurrentUser() *User {
	raw, ok := c.storage.Get(UserKey)
	if !ok || raw == "" {
		return nil
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		c.logger.Warn(context.Background(), "stored user is malformed", observability.Field{Key: "error", Value: err.Error()})
		return nil
	}
	return &user
}

// SetAuth stores the credentials and attaches the token to later requests.
func (c *Client) SetAuth(token string, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := c.storage.Set(TokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := c.storage.Set(UserKey, string(data)); err != nil {
		// A token without its user must not outlive a failed write.
		if rmErr := c.storage.Remove(TokenKey); rmErr != nil {
			c.logger.Error(context.Background(), "failed to roll back stored token", rmErr)
		}
		return fmt.Errorf("store user: %w", err)
	}
	for {
		cur := c.cfg.Load()
		if c.cfg.CompareAndSwap(cur, cur.WithHeader("Authorization", "Bearer "+token)) {
			return nil
		}
	}
}

// ClearAuth forgets the stored credentials.
func (c *Client) ClearAuth() {
	ctx := context.Background()
	for _, key := range []string{TokenKey, UserKey} {
		if err := c.storage.Remove(key); err != nil {
			c.logger.Error(ctx, "failed to remove stored credential", err, observability.Field{Key: "key", Value: key})
		}
	}
	for {
		cur := c.cfg.Load()
		if c.cfg.CompareAndSwap(cur, cur.WithoutHeader("Authorization")) {
			return
		}
	}
}
