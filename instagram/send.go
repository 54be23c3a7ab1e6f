package instagram

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// SendText broadcasts a text message into an existing thread.
func (c *Client) SendText(threadID, text string) error {
	form := url.Values{
		"thread_ids":     {fmt.Sprintf("[%s]", threadID)},
		"text":           {text},
		"client_context": {uuid.NewString()},
		"action":         {"send_item"},
	}

	_, err := c.postForm("/direct_v2/threads/broadcast/text/", form)
	return err
}
