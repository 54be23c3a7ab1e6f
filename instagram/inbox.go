package instagram

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ListRecentThreads fetches a bounded window of the most recent inbox
// threads, each reduced to the tail message the loop classifies on.
// Threads without any message are skipped.
func (c *Client) ListRecentThreads(limit int) ([]Thread, error) {
	query := url.Values{
		"limit": {strconv.Itoa(limit)},
	}

	body, err := c.get("/direct_v2/inbox/", query)
	if err != nil {
		return nil, err
	}

	var ir inboxResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inbox response: %w", err)
	}

	var threads []Thread
	for _, t := range ir.Inbox.Threads {
		if len(t.Items) == 0 {
			continue
		}

		last := t.Items[0]
		threads = append(threads, Thread{
			ID:           t.ThreadID,
			LastSenderID: strconv.FormatInt(last.UserID, 10),
			LastText:     last.Text,
			LastActivity: parseTimestamp(last.Timestamp),
		})
	}

	return threads, nil
}

// parseTimestamp converts Instagram's unix-microsecond strings. A value
// that does not parse yields the zero time rather than an error, the
// loop does not depend on it.
func parseTimestamp(raw string) time.Time {
	micros, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros)
}
