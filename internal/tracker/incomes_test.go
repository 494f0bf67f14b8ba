package tracker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/storage"
	"fintrack/internal/store"
)

func TestIncomesAddWithFiles(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	blobs := newRecordingBlobs()
	i := NewIncomes(mem, blobs, NopNotifier{})

	files := []storage.File{
		{Name: "payslip.pdf", ContentType: "application/pdf", Size: 4, Content: strings.NewReader("%PDF")},
	}
	created, err := i.Add(ctx, testSession, model.Income{
		Amount: 3000, Description: "May salary", Category: "Salary", Currency: "USD", Date: "2025-05-01",
	}, files)
	require.NoError(t, err)
	require.Len(t, created.FileAttachments, 1)
	assert.True(t, strings.HasPrefix(created.FileAttachments[0], "alice/"+created.ID+"/"))

	// The uploaded paths are persisted on the stored row too.
	stored, err := mem.GetIncome(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.FileAttachments, stored.FileAttachments)
	assert.Len(t, blobs.paths(), 1)
}

func TestIncomesUpdateOwnership(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	i := NewIncomes(mem, nil, NopNotifier{})

	created, err := i.Add(ctx, testSession, model.Income{
		Amount: 100, Description: "Gift", Category: "Gift", Currency: "USD", Date: "2025-05-01",
	}, nil)
	require.NoError(t, err)

	amount := 150.0
	_, err = i.Update(ctx, auth.Session{UID: "mallory"}, created.ID, IncomePatch{Amount: &amount})
	assert.ErrorIs(t, err, store.ErrPermissionDenied)

	updated, err := i.Update(ctx, testSession, created.ID, IncomePatch{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Amount)
}

func TestIncomesRecordIsOwnerScopedAndSilent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	notify := &recordingNotifier{}
	i := NewIncomes(mem, nil, notify)

	require.NoError(t, i.Record(ctx, testSession, model.Income{
		Amount: 50, Description: "Payment received: Loan", Category: "Other", Currency: "USD", Date: "2025-05-15",
	}))
	assert.Empty(t, notify.successes, "Record emits no toast of its own")
	assert.Empty(t, notify.errors)

	records, err := mem.ListIncomes(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].UserID)

	assert.NoError(t, i.Record(ctx, auth.Session{}, model.Income{Amount: 1}), "signed out is a silent no-op")
	records, err = mem.ListIncomes(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
