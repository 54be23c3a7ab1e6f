package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ladelicato/salesbot/instagram"
	"github.com/ladelicato/salesbot/store"
)

type fakeGateway struct {
	threads []instagram.Thread
	listErr error

	sendErr map[string]error
	sends   []string

	names   map[string]string
	nameErr error
}

func (g *fakeGateway) ListRecentThreads(limit int) ([]instagram.Thread, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.threads, nil
}

func (g *fakeGateway) SendText(threadID, text string) error {
	g.sends = append(g.sends, threadID)
	if err := g.sendErr[threadID]; err != nil {
		return err
	}
	return nil
}

func (g *fakeGateway) UserInfo(userID string) (string, error) {
	if g.nameErr != nil {
		return "", g.nameErr
	}
	return g.names[userID], nil
}

func newTestBot(t *testing.T, dir string, gateway *fakeGateway) (*Bot, *store.FileStore) {
	t.Helper()

	fs, err := store.NewFileStore(dir, nil)
	require.NoError(t, err)

	b := New(gateway, fs, Config{
		BotUserID:        "900",
		ReplyText:        "Oi! Obrigada pelo interesse!",
		UnitPrice:        89.90,
		InboxLimit:       20,
		FallbackCustomer: "Cliente",
	}, Backoff{}, NewStatus())

	return b, fs
}

func thread(id, senderID string) instagram.Thread {
	return instagram.Thread{
		ID:           id,
		LastSenderID: senderID,
		LastText:     "quero comprar",
		LastActivity: time.Now(),
	}
}

func TestTickAnswersOnlyNewThreads(t *testing.T) {
	gateway := &fakeGateway{
		threads: []instagram.Thread{
			thread("t-self", "900"),
			thread("t-old", "101"),
			thread("t-new", "102"),
		},
		names: map[string]string{"102": "Maria Silva"},
	}

	b, fs := newTestBot(t, t.TempDir(), gateway)
	require.NoError(t, fs.MarkAnswered("t-old"))

	require.NoError(t, b.tick(context.Background()))

	require.Equal(t, []string{"t-new"}, gateway.sends)

	answered, err := fs.Answered()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t-old", "t-new"}, answered)

	pending, err := fs.Pending()
	require.NoError(t, err)
	require.Equal(t, []string{"t-new"}, pending)

	sales, err := fs.Sales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Equal(t, "t-new", sales[0].ThreadID)
	require.Equal(t, "Maria Silva", sales[0].Customer)
	require.Equal(t, 89.90, sales[0].Amount)
}

func TestTickIsIdempotentAcrossTicks(t *testing.T) {
	gateway := &fakeGateway{
		threads: []instagram.Thread{thread("t-1", "101")},
		names:   map[string]string{"101": "João"},
	}

	b, fs := newTestBot(t, t.TempDir(), gateway)

	require.NoError(t, b.tick(context.Background()))
	require.NoError(t, b.tick(context.Background()))

	require.Equal(t, []string{"t-1"}, gateway.sends)

	sales, err := fs.Sales()
	require.NoError(t, err)
	require.Len(t, sales, 1)

	answered, err := fs.Answered()
	require.NoError(t, err)
	require.Equal(t, []string{"t-1"}, answered)
}

func TestTickSendFailureRetriesNextTick(t *testing.T) {
	gateway := &fakeGateway{
		threads: []instagram.Thread{thread("t-1", "101")},
		sendErr: map[string]error{"t-1": errors.New("send failed")},
	}

	b, fs := newTestBot(t, t.TempDir(), gateway)

	require.NoError(t, b.tick(context.Background()))

	pending, err := fs.Pending()
	require.NoError(t, err)
	require.Equal(t, []string{"t-1"}, pending)

	answered, err := fs.Answered()
	require.NoError(t, err)
	require.Empty(t, answered)

	sales, err := fs.Sales()
	require.NoError(t, err)
	require.Empty(t, sales)

	// Next tick retries and succeeds.
	gateway.sendErr = nil
	require.NoError(t, b.tick(context.Background()))

	require.Equal(t, []string{"t-1", "t-1"}, gateway.sends)

	answered, err = fs.Answered()
	require.NoError(t, err)
	require.Equal(t, []string{"t-1"}, answered)

	sales, err = fs.Sales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
	require.Equal(t, "Cliente", sales[0].Customer)
}

func TestTickRateLimitAbortsTick(t *testing.T) {
	gateway := &fakeGateway{
		threads: []instagram.Thread{thread("t-1", "101"), thread("t-2", "102")},
		sendErr: map[string]error{"t-1": instagram.ErrRateLimited},
	}

	b, fs := newTestBot(t, t.TempDir(), gateway)

	err := b.tick(context.Background())
	require.ErrorIs(t, err, instagram.ErrRateLimited)

	// Only the first send was attempted; nothing was marked answered.
	require.Equal(t, []string{"t-1"}, gateway.sends)

	answered, aerr := fs.Answered()
	require.NoError(t, aerr)
	require.Empty(t, answered)
}

func TestPendingSurvivesRestartAndStillSends(t *testing.T) {
	dir := t.TempDir()

	gateway := &fakeGateway{
		threads: []instagram.Thread{thread("t-1", "101")},
		sendErr: map[string]error{"t-1": errors.New("network down")},
	}

	b, _ := newTestBot(t, dir, gateway)
	require.NoError(t, b.tick(context.Background()))

	// Simulate a process restart over the same data dir.
	gateway.sendErr = nil
	b2, fs2 := newTestBot(t, dir, gateway)

	pending, err := fs2.Pending()
	require.NoError(t, err)
	require.Equal(t, []string{"t-1"}, pending)

	require.NoError(t, b2.tick(context.Background()))

	answered, err := fs2.Answered()
	require.NoError(t, err)
	require.Equal(t, []string{"t-1"}, answered)

	sales, err := fs2.Sales()
	require.NoError(t, err)
	require.Len(t, sales, 1)
}

func TestRunStopsOnCancelAndGoesOffline(t *testing.T) {
	gateway := &fakeGateway{listErr: instagram.ErrRateLimited}

	b, _ := newTestBot(t, t.TempDir(), gateway)
	b.backoff.RateLimitCooldown = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	require.False(t, b.status.Snapshot().Online)
}
