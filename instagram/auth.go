package instagram

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type session struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"sessionid"`
	CSRFToken string `json:"csrftoken"`
	DeviceID  string `json:"device_id"`
}

// Login authenticates with username/password and saves the resulting
// session to disk so later runs can resume without a fresh login.
func (c *Client) Login() error {
	if c.session.DeviceID == "" {
		c.session.DeviceID = "android-" + uuid.NewString()
	}

	form := url.Values{
		"username":  {c.config.Username},
		"password":  {c.config.Password},
		"device_id": {c.session.DeviceID},
	}

	body, err := c.postForm("/accounts/login/", form)
	if err != nil {
		return err
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return fmt.Errorf("failed to unmarshal login response: %w", err)
	}

	if lr.LoggedInUser.PK == 0 || c.session.SessionID == "" {
		return fmt.Errorf("%w: login did not establish a session", ErrAuthRequired)
	}

	c.session.UserID = strconv.FormatInt(lr.LoggedInUser.PK, 10)
	c.session.Username = lr.LoggedInUser.Username

	if err := c.saveSession(); err != nil {
		log.Warn().Err(err).Msg("Failed to persist session file")
	}

	log.Info().
		Str("username", c.session.Username).
		Str("user_id", c.session.UserID).
		Msg("Instagram login successful")

	return nil
}

// ResumeSession loads a previously saved session and verifies it is still
// accepted. Returns ErrInvalidSession when the provider rejects it.
func (c *Client) ResumeSession() error {
	data, err := os.ReadFile(c.config.SessionFile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if err := json.Unmarshal(data, &c.session); err != nil {
		return fmt.Errorf("%w: corrupt session file", ErrInvalidSession)
	}

	body, err := c.get("/accounts/current_user/", nil)
	if err != nil {
		return err
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return fmt.Errorf("failed to unmarshal current user response: %w", err)
	}

	if lr.LoggedInUser.PK != 0 {
		c.session.UserID = strconv.FormatInt(lr.LoggedInUser.PK, 10)
	}
	if c.session.UserID == "" {
		return ErrInvalidSession
	}

	log.Info().
		Str("user_id", c.session.UserID).
		Msg("Instagram session resumed")

	return nil
}

func (c *Client) saveSession() error {
	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(c.config.SessionFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}
