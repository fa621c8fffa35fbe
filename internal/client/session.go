package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bigboy/appconfig/internal/storage"
)

// SaveSession persists a customer login: the access token and the user profile.
func (c *Client) SaveSession(ctx context.Context, accessToken string, user any) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}
	if err := c.store.Set(ctx, c.keys.AccessToken, accessToken); err != nil {
		return err
	}
	return c.store.Set(ctx, c.keys.UserData, string(data))
}

// SaveGuestSession persists the tokens a guest receives after scanning a table code.
func (c *Client) SaveGuestSession(ctx context.Context, guestToken, tableToken string) error {
	if err := c.store.Set(ctx, c.keys.GuestToken, guestToken); err != nil {
		return err
	}
	return c.store.Set(ctx, c.keys.TableToken, tableToken)
}

// User decodes the stored user profile into out. It reports false when no
// profile is stored.
func (c *Client) User(ctx context.Context, out any) (bool, error) {
	raw, err := c.store.Get(ctx, c.keys.UserData)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode user data: %w", err)
	}
	return true, nil
}

// ClearSession removes every persisted session value.
func (c *Client) ClearSession(ctx context.Context) error {
	for _, k := range c.keys.All() {
		if err := c.store.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
