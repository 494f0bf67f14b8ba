package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/model"
)

// MemoryStore implements Store with in-memory maps. It backs tests and local
// development (USE_MEMORY_STORE=true).
type MemoryStore struct {
	mu sync.RWMutex

	expenses    map[string]*model.Expense
	incomes     map[string]*model.Income
	reminders   map[string]*model.Reminder
	attachments map[string]*model.Attachment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expenses:    make(map[string]*model.Expense),
		incomes:     make(map[string]*model.Income),
		reminders:   make(map[string]*model.Reminder),
		attachments: make(map[string]*model.Attachment),
	}
}

// Expense operations

func (m *MemoryStore) CreateExpense(ctx context.Context, expense *model.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	cp := *expense
	m.expenses[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) GetExpense(ctx context.Context, expenseID string) (*model.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expense, ok := m.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
	}

	cp := *expense
	return &cp, nil
}

func (m *MemoryStore) UpdateExpense(ctx context.Context, userID string, expense *model.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.expenses[expense.ID]
	if !ok {
		return fmt.Errorf("expense %s: %w", expense.ID, ErrNotFound)
	}
	if existing.UserID != userID {
		return fmt.Errorf("expense %s: %w", expense.ID, ErrPermissionDenied)
	}

	cp := *expense
	m.expenses[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.expenses[expenseID]
	if !ok {
		return fmt.Errorf("expense %s: %w", expenseID, ErrNotFound)
	}
	if existing.UserID != userID {
		return fmt.Errorf("expense %s: %w", expenseID, ErrPermissionDenied)
	}

	delete(m.expenses, expenseID)
	return nil
}

func (m *MemoryStore) ListExpenses(ctx context.Context, userID, cutoffDate string) ([]*model.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Expense
	for _, expense := range m.expenses {
		if expense.UserID != userID {
			continue
		}
		if cutoffDate != "" && expense.Date < cutoffDate {
			continue
		}
		cp := *expense
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

// Income operations

func (m *MemoryStore) CreateIncome(ctx context.Context, income *model.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	if income.CreatedAt.IsZero() {
		income.CreatedAt = time.Now()
	}

	cp := *income
	m.incomes[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	income, ok := m.incomes[incomeID]
	if !ok {
		return nil, fmt.Errorf("income %s: %w", incomeID, ErrNotFound)
	}

	cp := *income
	return &cp, nil
}

func (m *MemoryStore) UpdateIncome(ctx context.Context, userID string, income *model.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.incomes[income.ID]
	if !ok {
		return fmt.Errorf("income %s: %w", income.ID, ErrNotFound)
	}
	if existing.UserID != userID {
		return fmt.Errorf("income %s: %w", income.ID, ErrPermissionDenied)
	}

	cp := *income
	m.incomes[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.incomes[incomeID]
	if !ok {
		return fmt.Errorf("income %s: %w", incomeID, ErrNotFound)
	}
	if existing.UserID != userID {
		return fmt.Errorf("income %s: %w", incomeID, ErrPermissionDenied)
	}

	delete(m.incomes, incomeID)
	return nil
}

func (m *MemoryStore) ListIncomes(ctx context.Context, userID, cutoffDate string) ([]*model.Income, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Income
	for _, income := range m.incomes {
		if income.UserID != userID {
			continue
		}
		if cutoffDate != "" && income.Date < cutoffDate {
			continue
		}
		cp := *income
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

// Reminder operations

func (m *MemoryStore) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}

	cp := *reminder
	m.reminders[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) GetReminder(ctx context.Context, reminderID string) (*model.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reminder, ok := m.reminders[reminderID]
	if !ok {
		return nil, fmt.Errorf("reminder %s: %w", reminderID, ErrNotFound)
	}

	cp := *reminder
	return &cp, nil
}

func (m *MemoryStore) UpdateReminder(ctx context.Context, userID string, reminder *model.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reminders[reminder.ID]
	if !ok {
		return fmt.Errorf("reminder %s: %w", reminder.ID, ErrNotFound)
	}
	if existing.UserID != userID {
		return fmt.Errorf("reminder %s: %w", reminder.ID, ErrPermissionDenied)
	}

	cp := *reminder
	m.reminders[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reminders[reminderID]
	if !ok {
		return fmt.Errorf("reminder %s: %w", reminderID, ErrNotFound)
	}
	if existing.UserID != userID {
		return fmt.Errorf("reminder %s: %w", reminderID, ErrPermissionDenied)
	}

	delete(m.reminders, reminderID)
	return nil
}

func (m *MemoryStore) ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Reminder
	for _, reminder := range m.reminders {
		if reminder.UserID != userID {
			continue
		}
		cp := *reminder
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DueDate < result[j].DueDate
	})
	return result, nil
}

// Attachment operations

func (m *MemoryStore) CreateAttachment(ctx context.Context, attachment *model.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if attachment.ID == "" {
		attachment.ID = uuid.New().String()
	}
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now()
	}

	cp := *attachment
	m.attachments[cp.ID] = &cp
	return nil
}

func (m *MemoryStore) ListAttachments(ctx context.Context, expenseID string) ([]model.Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.Attachment
	for _, attachment := range m.attachments {
		if attachment.ExpenseID != expenseID {
			continue
		}
		result = append(result, *attachment)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FileName < result[j].FileName
	})
	return result, nil
}
