package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/model"
)

func TestMemoryStoreExpenses(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		expense := &model.Expense{UserID: "alice", Amount: 12.50, Description: "Lunch", Date: "2025-05-01"}
		require.NoError(t, s.CreateExpense(ctx, expense))
		assert.NotEmpty(t, expense.ID)
		assert.False(t, expense.CreatedAt.IsZero())

		got, err := s.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lunch", got.Description)
	})

	t.Run("get unknown id is ErrNotFound", func(t *testing.T) {
		_, err := s.GetExpense(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update by another user is denied", func(t *testing.T) {
		expense := &model.Expense{UserID: "alice", Amount: 5, Date: "2025-05-02"}
		require.NoError(t, s.CreateExpense(ctx, expense))

		expense.Amount = 500
		err := s.UpdateExpense(ctx, "mallory", expense)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		got, err := s.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, 5.0, got.Amount)
	})

	t.Run("delete by another user is denied", func(t *testing.T) {
		expense := &model.Expense{UserID: "alice", Amount: 5, Date: "2025-05-02"}
		require.NoError(t, s.CreateExpense(ctx, expense))

		assert.ErrorIs(t, s.DeleteExpense(ctx, "mallory", expense.ID), ErrPermissionDenied)
		require.NoError(t, s.DeleteExpense(ctx, "alice", expense.ID))

		_, err := s.GetExpense(ctx, expense.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStoreListExpenses(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	dates := []string{"2025-05-03", "2025-04-20", "2025-05-10", "2025-01-01"}
	for _, d := range dates {
		require.NoError(t, s.CreateExpense(ctx, &model.Expense{UserID: "alice", Amount: 1, Date: d}))
	}
	require.NoError(t, s.CreateExpense(ctx, &model.Expense{UserID: "bob", Amount: 1, Date: "2025-05-09"}))

	t.Run("scoped to user, newest first", func(t *testing.T) {
		got, err := s.ListExpenses(ctx, "alice", "")
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "2025-05-10", got[0].Date)
		assert.Equal(t, "2025-01-01", got[3].Date)
	})

	t.Run("cutoff is inclusive", func(t *testing.T) {
		got, err := s.ListExpenses(ctx, "alice", "2025-04-20")
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, e := range got {
			assert.GreaterOrEqual(t, e.Date, "2025-04-20")
		}
	})
}

func TestMemoryStoreReminders(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, due := range []string{"2025-06-15", "2025-06-01", "2025-07-01"} {
		require.NoError(t, s.CreateReminder(ctx, &model.Reminder{UserID: "alice", Title: "r", DueDate: due}))
	}

	got, err := s.ListReminders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-06-01", got[0].DueDate)
	assert.Equal(t, "2025-07-01", got[2].DueDate)
}

func TestMemoryStoreAttachments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateAttachment(ctx, &model.Attachment{ExpenseID: "e1", FileName: "b.pdf"}))
	require.NoError(t, s.CreateAttachment(ctx, &model.Attachment{ExpenseID: "e1", FileName: "a.png"}))
	require.NoError(t, s.CreateAttachment(ctx, &model.Attachment{ExpenseID: "e2", FileName: "c.png"}))

	got, err := s.ListAttachments(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.png", got[0].FileName)
	assert.Equal(t, "b.pdf", got[1].FileName)
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	expense := &model.Expense{UserID: "alice", Amount: 10, Date: "2025-05-01"}
	require.NoError(t, s.CreateExpense(ctx, expense))

	got, err := s.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	got.Amount = 999

	again, err := s.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, again.Amount)
}
