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

// Expenses is the client-side expense cache plus its CRUD operations against
// the table store and blob storage.
type Expenses struct {
	store  store.Store
	blobs  BlobStore
	notify Notifier
	now    func() time.Time

	mu       sync.Mutex
	records  []*model.Expense
	loading  bool
	fetchSeq uint64
	lastOpts FetchOptions
}

// NewExpenses creates an expense cache. blobs may be nil when attachment
// uploads are not configured; Add then rejects file uploads.
func NewExpenses(st store.Store, blobs BlobStore, notify Notifier) *Expenses {
	return &Expenses{
		store:  st,
		blobs:  blobs,
		notify: notify,
		now:    time.Now,
	}
}

// Records returns a copy of the cached expense list.
func (e *Expenses) Records() []*model.Expense {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*model.Expense(nil), e.records...)
}

// Loading reports whether a fetch is in flight.
func (e *Expenses) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Fetch loads the user's expenses, time-narrowed server-side and
// search-filtered client-side, newest first. On failure the previous cache
// value survives untouched. Responses from fetches superseded by a newer one
// are dropped rather than installed, so a slow stale response can never
// overwrite a fresher result.
func (e *Expenses) Fetch(ctx context.Context, sess auth.Session, opts FetchOptions) ([]*model.Expense, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	e.mu.Lock()
	e.loading = true
	e.fetchSeq++
	seq := e.fetchSeq
	e.lastOpts = opts
	e.mu.Unlock()

	cutoff, _ := opts.TimeFilter.Cutoff(e.now())

	records, err := e.store.ListExpenses(ctx, sess.UID, cutoff)
	if err != nil {
		if e.settle(seq, nil, false) {
			e.notify.Error("Failed to load expenses.")
		}
		return nil, err
	}

	for _, rec := range records {
		attachments, attErr := e.store.ListAttachments(ctx, rec.ID)
		if attErr != nil {
			if e.settle(seq, nil, false) {
				e.notify.Error("Failed to load expenses.")
			}
			return nil, attErr
		}
		rec.Attachments = attachments
	}

	filtered := SearchExpenses(records, opts.Search)
	e.settle(seq, filtered, true)
	return filtered, nil
}

// settle clears the loading flag and optionally installs a fetched result,
// but only when seq still identifies the newest fetch. It reports whether the
// fetch was still current, so a superseded failure stays silent too.
func (e *Expenses) settle(seq uint64, records []*model.Expense, install bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.fetchSeq {
		return false
	}
	e.loading = false
	if install {
		e.records = records
	}
	return true
}

// Refresh re-runs the last fetch. Mutations never patch the cache locally;
// callers observe their effect through this single entry point.
func (e *Expenses) Refresh(ctx context.Context, sess auth.Session) error {
	e.mu.Lock()
	opts := e.lastOpts
	e.mu.Unlock()
	_, err := e.Fetch(ctx, sess, opts)
	return err
}

// Add inserts an expense row and uploads any attachment files. Server-owned
// fields (id, creation timestamp) are assigned by the store. Uploads run
// concurrently and all settle before the call returns; a failed upload fails
// the whole call but neither the row nor already-uploaded files are rolled
// back. Callers re-fetch to pick up attachments.
func (e *Expenses) Add(ctx context.Context, sess auth.Session, expense model.Expense, files []storage.File) (*model.Expense, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	expense.ID = ""
	expense.CreatedAt = time.Time{}
	expense.UserID = sess.UID
	expense.Attachments = nil

	if err := e.store.CreateExpense(ctx, &expense); err != nil {
		e.notify.Error("Failed to add expense.")
		return nil, err
	}

	if len(files) > 0 {
		if err := e.uploadAttachments(ctx, sess, expense.ID, files); err != nil {
			e.notify.Error("Failed to add expense.")
			return nil, err
		}
	}

	e.notify.Success("Expense added successfully!")
	return &expense, nil
}

func (e *Expenses) uploadAttachments(ctx context.Context, sess auth.Session, expenseID string, files []storage.File) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			objectPath := storage.ObjectPath(sess.UID, expenseID, file.Name)
			if err := e.blobs.Upload(ctx, objectPath, file.Content, file.ContentType); err != nil {
				return err
			}
			return e.store.CreateAttachment(ctx, &model.Attachment{
				ExpenseID: expenseID,
				FileName:  file.Name,
				FilePath:  objectPath,
				FileType:  file.ContentType,
				FileSize:  file.Size,
			})
		})
	}
	return g.Wait()
}

// ExpensePatch holds the fields an update may change; nil means unchanged.
type ExpensePatch struct {
	Amount      *float64
	Description *string
	Category    *string
	Currency    *string
	Date        *string
}

// Update applies a partial update to an owned expense. Ownership is
// re-asserted by the store on every call.
func (e *Expenses) Update(ctx context.Context, sess auth.Session, expenseID string, patch ExpensePatch) (*model.Expense, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	expense, err := e.store.GetExpense(ctx, expenseID)
	if err != nil {
		e.notify.Error("Failed to update expense.")
		return nil, err
	}

	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.Description != nil {
		expense.Description = *patch.Description
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.Currency != nil {
		expense.Currency = *patch.Currency
	}
	if patch.Date != nil {
		expense.Date = *patch.Date
	}

	if err := e.store.UpdateExpense(ctx, sess.UID, expense); err != nil {
		e.notify.Error("Failed to update expense.")
		return nil, err
	}

	e.notify.Success("Expense updated successfully!")
	return expense, nil
}

// Delete removes an owned expense row. The interactive confirmation lives at
// the UI boundary; by the time this runs the user already said yes.
func (e *Expenses) Delete(ctx context.Context, sess auth.Session, expenseID string) error {
	if !sess.SignedIn() {
		return nil
	}

	if err := e.store.DeleteExpense(ctx, sess.UID, expenseID); err != nil {
		e.notify.Error("Failed to delete expense.")
		return err
	}

	e.notify.Success("Expense deleted successfully!")
	return nil
}
