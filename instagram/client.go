package instagram

import (
	"net/http"
)

type Config struct {
	Username    string
	Password    string
	SessionFile string
	BaseURL     string
	UserAgent   string
}

// Client adapts Instagram's private web API to the capability set the
// reply loop needs: list recent threads, send a text, resolve a display
// name. The caller owns the http.Client so timeouts and proxying are
// configured in one place.
type Client struct {
	config     Config
	httpClient *http.Client
	session    session
}

func NewClient(config Config, httpClient *http.Client) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://i.instagram.com/api/v1"
	}
	if config.UserAgent == "" {
		config.UserAgent = "Instagram 275.0.0.27.98 Android (33/13; 420dpi; 1080x2400)"
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// SelfID returns the authenticated account's user id, empty before a
// successful Login or ResumeSession.
func (c *Client) SelfID() string {
	return c.session.UserID
}
