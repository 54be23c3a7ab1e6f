package instagram

import "time"

// Thread is a point-in-time read of a conversation's most recent message.
// Transient, never persisted.
type Thread struct {
	ID           string
	LastSenderID string
	LastText     string
	LastActivity time.Time
}

type apiEnvelope struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	ErrorType         string `json:"error_type"`
	TwoFactorRequired bool   `json:"two_factor_required"`
}

type loginResponse struct {
	LoggedInUser struct {
		PK       int64  `json:"pk"`
		Username string `json:"username"`
	} `json:"logged_in_user"`
	Status string `json:"status"`
}

type inboxResponse struct {
	Inbox struct {
		Threads []inboxThread `json:"threads"`
	} `json:"inbox"`
	Status string `json:"status"`
}

type inboxThread struct {
	ThreadID string       `json:"thread_id"`
	Items    []threadItem `json:"items"`
}

type threadItem struct {
	UserID    int64  `json:"user_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // unix microseconds as a string
}

type userInfoResponse struct {
	User struct {
		Username string `json:"username"`
		FullName string `json:"full_name"`
	} `json:"user"`
	Status string `json:"status"`
}
