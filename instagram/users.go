package instagram

import (
	"encoding/json"
	"fmt"
)

// UserInfo resolves a user's display name, preferring the full name over
// the handle. Best effort, callers fall back to a default on error.
func (c *Client) UserInfo(userID string) (string, error) {
	body, err := c.get("/users/"+userID+"/info/", nil)
	if err != nil {
		return "", err
	}

	var ur userInfoResponse
	if err := json.Unmarshal(body, &ur); err != nil {
		return "", fmt.Errorf("failed to unmarshal user info response: %w", err)
	}

	if ur.User.FullName != "" {
		return ur.User.FullName, nil
	}
	return ur.User.Username, nil
}
