package tracker

import (
	"context"
	"log"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/store"
)

// IncomeRecorder receives the income record synthesized when a reminder with
// an amount is completed. *Incomes satisfies it.
type IncomeRecorder interface {
	Record(ctx context.Context, sess auth.Session, income model.Income) error
}

// Reminders is the client-side reminder cache plus its operations, including
// the completion bridge into income.
type Reminders struct {
	store  store.Store
	income IncomeRecorder
	notify Notifier
	now    func() time.Time

	mu       sync.Mutex
	records  []*model.Reminder
	loading  bool
	fetchSeq uint64
}

// NewReminders creates a reminder cache. income may be nil to disable the
// completion bridge.
func NewReminders(st store.Store, income IncomeRecorder, notify Notifier) *Reminders {
	return &Reminders{
		store:  st,
		income: income,
		notify: notify,
		now:    time.Now,
	}
}

// Records returns a copy of the cached reminder list, soonest due first.
func (r *Reminders) Records() []*model.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.Reminder(nil), r.records...)
}

// Loading reports whether a fetch is in flight.
func (r *Reminders) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Fetch loads all of the user's reminders in ascending due-date order.
// Reminders carry no time filter or search; the list is small and always
// shown whole.
func (r *Reminders) Fetch(ctx context.Context, sess auth.Session) ([]*model.Reminder, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	r.mu.Lock()
	r.loading = true
	r.fetchSeq++
	seq := r.fetchSeq
	r.mu.Unlock()

	records, err := r.store.ListReminders(ctx, sess.UID)
	if err != nil {
		if r.settle(seq, nil, false) {
			r.notify.Error("Failed to load reminders.")
		}
		return nil, err
	}

	r.settle(seq, records, true)
	return records, nil
}

func (r *Reminders) settle(seq uint64, records []*model.Reminder, install bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.fetchSeq {
		return false
	}
	r.loading = false
	if install {
		r.records = records
	}
	return true
}

// Refresh re-runs the fetch.
func (r *Reminders) Refresh(ctx context.Context, sess auth.Session) error {
	_, err := r.Fetch(ctx, sess)
	return err
}

// Add inserts a reminder. New reminders always start pending.
func (r *Reminders) Add(ctx context.Context, sess auth.Session, reminder model.Reminder) (*model.Reminder, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	reminder.ID = ""
	reminder.CreatedAt = time.Time{}
	reminder.UserID = sess.UID
	reminder.Completed = false

	if err := r.store.CreateReminder(ctx, &reminder); err != nil {
		r.notify.Error("Failed to add reminder.")
		return nil, err
	}

	r.notify.Success("Reminder added successfully!")
	return &reminder, nil
}

// ReminderPatch holds the fields an update may change; nil means unchanged.
// Completion state moves only through Toggle.
type ReminderPatch struct {
	Title       *string
	Description *string
	Category    *string
	DueDate     *string
	Amount      **float64
}

// Update applies a partial update to an owned reminder.
func (r *Reminders) Update(ctx context.Context, sess auth.Session, reminderID string, patch ReminderPatch) (*model.Reminder, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	reminder, err := r.store.GetReminder(ctx, reminderID)
	if err != nil {
		r.notify.Error("Failed to update reminder.")
		return nil, err
	}

	if patch.Title != nil {
		reminder.Title = *patch.Title
	}
	if patch.Description != nil {
		reminder.Description = *patch.Description
	}
	if patch.Category != nil {
		reminder.Category = *patch.Category
	}
	if patch.DueDate != nil {
		reminder.DueDate = *patch.DueDate
	}
	if patch.Amount != nil {
		reminder.Amount = *patch.Amount
	}

	if err := r.store.UpdateReminder(ctx, sess.UID, reminder); err != nil {
		r.notify.Error("Failed to update reminder.")
		return nil, err
	}

	r.notify.Success("Reminder updated successfully!")
	return reminder, nil
}

// Delete removes an owned reminder.
func (r *Reminders) Delete(ctx context.Context, sess auth.Session, reminderID string) error {
	if !sess.SignedIn() {
		return nil
	}

	if err := r.store.DeleteReminder(ctx, sess.UID, reminderID); err != nil {
		r.notify.Error("Failed to delete reminder.")
		return err
	}

	r.notify.Success("Reminder deleted successfully!")
	return nil
}

// Toggle sets a reminder's completion state. On the pending-to-completed
// transition of a reminder that carries an amount, a matching income record
// is synthesized dated today. The synthesis is best effort and one way:
// failure to record the income is logged but never blocks the completion,
// and un-completing a reminder never deletes the income it created. Only the
// pending-to-completed edge synthesizes; setting an already completed
// reminder to completed again does nothing extra.
func (r *Reminders) Toggle(ctx context.Context, sess auth.Session, reminderID string, completed bool) (*model.Reminder, error) {
	if !sess.SignedIn() {
		return nil, nil
	}

	reminder, err := r.store.GetReminder(ctx, reminderID)
	if err != nil {
		r.notify.Error("Failed to update reminder.")
		return nil, err
	}

	completing := completed && !reminder.Completed
	reminder.Completed = completed

	if err := r.store.UpdateReminder(ctx, sess.UID, reminder); err != nil {
		r.notify.Error("Failed to update reminder.")
		return nil, err
	}

	if completing && reminder.Amount != nil && r.income != nil {
		income := model.Income{
			Amount:      *reminder.Amount,
			Description: "Payment received: " + reminder.Title,
			Category:    "Other",
			Currency:    "USD",
			Date:        r.now().Format(model.DateLayout),
		}
		if err := r.income.Record(ctx, sess, income); err != nil {
			log.Printf("[Bridge] failed to record income for reminder %s: %v", reminder.ID, err)
		} else {
			r.notify.Success("Reminder completed and income recorded!")
			return reminder, nil
		}
	}

	r.notify.Success("Reminder updated successfully!")
	return reminder, nil
}
