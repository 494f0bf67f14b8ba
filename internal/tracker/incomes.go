package tracker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/storage"
	"fintrack/internal/store"
)

// Incomes is the client-side income cache plus its CRUD operations.
type Incomes struct {
	store  store.Store
	blobs  BlobStore
	notify Notifier
	now    func() time.Time

	mu       sync.Mutex
	records  []*model.Income
	loading  bool
	fetchSeq uint64
	lastOpts FetchOptions
}

// NewIncomes creates an income cache.
func NewIncomes(st store.Store, blobs BlobStore, notify Notifier) *Incomes {
	return &Incomes{
		store:  st,
		blobs:  blobs,
		notify: notify,
		now:    time.Now,
	}
}

// Records returns a copy of the cached income list.
func (i *Incomes) Records() []*model.Income {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]*model.Income(nil), i.records...)
}

// Loading reports whether a fetch is in flight.
func (i *Incomes) Loading() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.loading
}

// Fetch loads the user's income records, newest first. Same contract as
// Expenses.Fetch: stale responses are dropped, failures leave the cache
// untouched.
func (i *Incomes) Fetch(ctx context.Context, sess auth.Session, opts FetchOptions) ([]*model.Income, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	i.mu.Lock()
	i.loading = true
	i.fetchSeq++
	seq := i.fetchSeq
	i.lastOpts = opts
	i.mu.Unlock()

	cutoff, _ := opts.TimeFilter.Cutoff(i.now())

	records, err := i.store.ListIncomes(ctx, sess.UID, cutoff)
	if err != nil {
		if i.settle(seq, nil, false) {
			i.notify.Error("Failed to load income.")
		}
		return nil, err
	}

	filtered := SearchIncomes(records, opts.Search)
	i.settle(seq, filtered, true)
	return filtered, nil
}

func (i *Incomes) settle(seq uint64, records []*model.Income, install bool) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if seq != i.fetchSeq {
		return false
	}
	i.loading = false
	if install {
		i.records = records
	}
	return true
}

// Refresh re-runs the last fetch.
func (i *Incomes) Refresh(ctx context.Context, sess auth.Session) error {
	i.mu.Lock()
	opts := i.lastOpts
	i.mu.Unlock()
	_, err := i.Fetch(ctx, sess, opts)
	return err
}

// Add inserts an income row, uploads any attachment files, and records their
// object paths back on the row. Income attachments are bare path references;
// unlike expenses there is no metadata row per file.
func (i *Incomes) Add(ctx context.Context, sess auth.Session, income model.Income, files []storage.File) (*model.Income, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	income.ID = ""
	income.CreatedAt = time.Time{}
	income.UserID = sess.UID
	income.FileAttachments = nil

	if err := i.store.CreateIncome(ctx, &income); err != nil {
		i.notify.Error("Failed to add income.")
		return nil, err
	}

	if len(files) > 0 {
		paths, err := i.uploadFiles(ctx, sess, income.ID, files)
		if err != nil {
			i.notify.Error("Failed to add income.")
			return nil, err
		}
		income.FileAttachments = paths
		if err := i.store.UpdateIncome(ctx, sess.UID, &income); err != nil {
			i.notify.Error("Failed to add income.")
			return nil, err
		}
	}

	i.notify.Success("Income added successfully!")
	return &income, nil
}

func (i *Incomes) uploadFiles(ctx context.Context, sess auth.Session, incomeID string, files []storage.File) ([]string, error) {
	paths := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for n, file := range files {
		g.Go(func() error {
			objectPath := storage.ObjectPath(sess.UID, incomeID, file.Name)
			if err := i.blobs.Upload(ctx, objectPath, file.Content, file.ContentType); err != nil {
				return err
			}
			paths[n] = objectPath
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// IncomePatch holds the fields an update may change; nil means unchanged.
type IncomePatch struct {
	Amount      *float64
	Description *string
	Category    *string
	Currency    *string
	Date        *string
}

// Update applies a partial update to an owned income record.
func (i *Incomes) Update(ctx context.Context, sess auth.Session, incomeID string, patch IncomePatch) (*model.Income, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	income, err := i.store.GetIncome(ctx, incomeID)
	if err != nil {
		i.notify.Error("Failed to update income.")
		return nil, err
	}

	if patch.Amount != nil {
		income.Amount = *patch.Amount
	}
	if patch.Description != nil {
		income.Description = *patch.Description
	}
	if patch.Category != nil {
		income.Category = *patch.Category
	}
	if patch.Currency != nil {
		income.Currency = *patch.Currency
	}
	if patch.Date != nil {
		income.Date = *patch.Date
	}

	if err := i.store.UpdateIncome(ctx, sess.UID, income); err != nil {
		i.notify.Error("Failed to update income.")
		return nil, err
	}

	i.notify.Success("Income updated successfully!")
	return income, nil
}

// Delete removes an owned income row.
func (i *Incomes) Delete(ctx context.Context, sess auth.Session, incomeID string) error {
	if !sess.SignedIn() {
		return nil
	}

	if err := i.store.DeleteIncome(ctx, sess.UID, incomeID); err != nil {
		i.notify.Error("Failed to delete income.")
		return err
	}

	i.notify.Success("Income deleted successfully!")
	return nil
}

// Record inserts an income row without emitting any notification; the
// reminder completion bridge it backs reports its own outcome.
func (i *Incomes) Record(ctx context.Context, sess auth.Session, income model.Income) error {
	if !sess.SignedIn() {
		return nil
	}
	income.ID = ""
	income.CreatedAt = time.Time{}
	income.UserID = sess.UID
	return i.store.CreateIncome(ctx, &income)
}
