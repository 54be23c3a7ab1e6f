package bot

import (
	"github.com/ladelicato/salesbot/instagram"
	"github.com/ladelicato/salesbot/store"
)

// Gateway is the slice of the Instagram client the loop depends on.
type Gateway interface {
	ListRecentThreads(limit int) ([]instagram.Thread, error)
	SendText(threadID, text string) error
	UserInfo(userID string) (string, error)
}

// Store is the slice of the durable store the loop writes through. Every
// call persists before returning; the HTTP surface may read at any time.
type Store interface {
	Answered() ([]string, error)
	MarkAnswered(threadID string) error
	MarkPending(threadID string) error
	AddSale(sale store.SaleRecord) error
}
