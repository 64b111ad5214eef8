package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"shopfront/internal/domain"
)

// ErrBadCredentials is returned when the upstream auth API rejects a login.
var ErrBadCredentials = errors.New("invalid username or password")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginPayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	Token     string `json:"token"`
}

// Login authenticates against the upstream auth API and returns the profile
// plus the issued session token.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("auth login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, "", ErrBadCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &APIError{Op: "auth login", StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, "", fmt.Errorf("auth login: read body: %w", err)
	}
	var payload loginPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "", fmt.Errorf("auth login: decode body: %w", err)
	}
	if payload.Token == "" {
		return nil, "", errors.New("auth login: response missing token")
	}

	user := &domain.User{
		ID:        payload.ID,
		Username:  payload.Username,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Avatar:    payload.Image,
	}
	return user, payload.Token, nil
}
