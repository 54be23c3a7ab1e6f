package instagram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) get(path string, query url.Values) ([]byte, error) {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req)
}

func (c *Client) postForm(path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.config.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.captureCookies(resp)

	if err := classify(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	if c.session.SessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.session.SessionID})
	}
	if c.session.CSRFToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.session.CSRFToken})
		req.Header.Set("X-CSRFToken", c.session.CSRFToken)
	}
}

func (c *Client) captureCookies(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		switch cookie.Name {
		case "sessionid":
			if cookie.Value != "" {
				c.session.SessionID = cookie.Value
			}
		case "csrftoken":
			if cookie.Value != "" {
				c.session.CSRFToken = cookie.Value
			}
		}
	}
}

// classify maps a provider response onto the error taxonomy the loop
// branches on. Anything unrecognized becomes a transient APIError.
func classify(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	if statusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	var envelope apiEnvelope
	json.Unmarshal(body, &envelope)

	switch {
	case envelope.TwoFactorRequired:
		return ErrTwoFactorRequired
	case envelope.Message == "login_required":
		return ErrInvalidSession
	case envelope.Message == "challenge_required":
		return fmt.Errorf("%w: account challenge", ErrAuthRequired)
	case envelope.ErrorType == "bad_password" || envelope.ErrorType == "invalid_user":
		return fmt.Errorf("%w: %s", ErrAuthRequired, envelope.ErrorType)
	case strings.Contains(envelope.Message, "Please wait a few minutes"):
		return ErrRateLimited
	}

	return &APIError{StatusCode: statusCode, Message: envelope.Message}
}
