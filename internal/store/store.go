package store

import (
	"context"
	"errors"

	"fintrack/internal/model"
)

// Sentinel errors for store operations. Implementations wrap these with the
// entity and id involved.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// Store defines the table-store operations used by the tracker layer.
//
// List operations are scoped to one user. Expenses and incomes accept an
// optional cutoff date (inclusive, YYYY-MM-DD); rows with Date >= cutoff are
// returned in descending date order. Reminders come back in ascending
// due-date order, since upcoming-first is the useful order for actionable
// items.
//
// Update and Delete re-assert ownership on every call: a row belonging to a
// different user yields ErrPermissionDenied, never a silent write.
type Store interface {
	// Expense operations
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*model.Expense, error)
	UpdateExpense(ctx context.Context, userID string, expense *model.Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) error
	ListExpenses(ctx context.Context, userID, cutoffDate string) ([]*model.Expense, error)

	// Income operations
	CreateIncome(ctx context.Context, income *model.Income) error
	GetIncome(ctx context.Context, incomeID string) (*model.Income, error)
	UpdateIncome(ctx context.Context, userID string, income *model.Income) error
	DeleteIncome(ctx context.Context, userID, incomeID string) error
	ListIncomes(ctx context.Context, userID, cutoffDate string) ([]*model.Income, error)

	// Reminder operations
	CreateReminder(ctx context.Context, reminder *model.Reminder) error
	GetReminder(ctx context.Context, reminderID string) (*model.Reminder, error)
	UpdateReminder(ctx context.Context, userID string, reminder *model.Reminder) error
	DeleteReminder(ctx context.Context, userID, reminderID string) error
	ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error)

	// Attachment metadata operations
	CreateAttachment(ctx context.Context, attachment *model.Attachment) error
	ListAttachments(ctx context.Context, expenseID string) ([]model.Attachment, error)
}
