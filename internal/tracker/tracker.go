// Package tracker holds the per-entity record caches and the operations the
// UI drives: filtered fetches, adds with attachment uploads, updates,
// deletes, and the reminder completion bridge.
//
// Every operation takes the session explicitly. A signed-out session is a
// valid steady state: operations return immediately without touching the
// cache or the network.
package tracker

import (
	"context"
	"io"
)

// Notifier is the toast boundary. Every user-triggered operation reports its
// outcome through it; failures are never fatal to the caller.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// BlobStore is the slice of blob storage the tracker needs for attachment
// uploads.
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
