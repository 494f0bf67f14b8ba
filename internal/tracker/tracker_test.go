package tracker

import (
	"bytes"
	"context"
	"io"
	"sync"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/store"
)

var testSession = auth.Session{UID: "alice", Email: "alice@example.com", Verified: true}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// recordingBlobs captures uploads for assertions.
type recordingBlobs struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func newRecordingBlobs() *recordingBlobs {
	return &recordingBlobs{uploads: make(map[string][]byte)}
}

func (b *recordingBlobs) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads[objectPath] = buf.Bytes()
	return nil
}

func (b *recordingBlobs) paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for p := range b.uploads {
		out = append(out, p)
	}
	return out
}

// fakeStore delegates to a real MemoryStore but lets one test override the
// expense listing to control timing.
type fakeStore struct {
	store.Store
	listExpenses func(ctx context.Context, userID, cutoffDate string) ([]*model.Expense, error)
}

func (f *fakeStore) ListExpenses(ctx context.Context, userID, cutoffDate string) ([]*model.Expense, error) {
	if f.listExpenses != nil {
		return f.listExpenses(ctx, userID, cutoffDate)
	}
	return f.Store.ListExpenses(ctx, userID, cutoffDate)
}
