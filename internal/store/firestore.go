package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fintrack/internal/model"
)

// Collection names. These match the hosted table layout one to one.
const (
	colExpenses    = "expenses"
	colIncome      = "income"
	colReminders   = "reminders"
	colAttachments = "expense_attachments"
)

// FirestoreStore implements Store against Firestore. Row-level authorization
// lives in the security rules; this layer still re-checks ownership before
// every update and delete so a misconfigured rule set cannot turn into a
// cross-user write.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// NOTE: Query field names must match the Go struct field names, as that is
// how the Firestore client serializes untagged structs.

func translateErr(entity, id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// Expense operations

func (s *FirestoreStore) CreateExpense(ctx context.Context, expense *model.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now()
	}

	_, err := s.client.Collection(colExpenses).Doc(expense.ID).Set(ctx, expense)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetExpense(ctx context.Context, expenseID string) (*model.Expense, error) {
	doc, err := s.client.Collection(colExpenses).Doc(expenseID).Get(ctx)
	if err != nil {
		return nil, translateErr("expense", expenseID, err)
	}

	var expense model.Expense
	if err := doc.DataTo(&expense); err != nil {
		return nil, fmt.Errorf("parse expense %s: %w", expenseID, err)
	}
	return &expense, nil
}

func (s *FirestoreStore) UpdateExpense(ctx context.Context, userID string, expense *model.Expense) error {
	existing, err := s.GetExpense(ctx, expense.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("expense %s: %w", expense.ID, ErrPermissionDenied)
	}

	if _, err := s.client.Collection(colExpenses).Doc(expense.ID).Set(ctx, expense); err != nil {
		return fmt.Errorf("update expense %s: %w", expense.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	existing, err := s.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("expense %s: %w", expenseID, ErrPermissionDenied)
	}

	if _, err := s.client.Collection(colExpenses).Doc(expenseID).Delete(ctx); err != nil {
		return fmt.Errorf("delete expense %s: %w", expenseID, err)
	}
	return nil
}

func (s *FirestoreStore) ListExpenses(ctx context.Context, userID, cutoffDate string) ([]*model.Expense, error) {
	query := s.client.Collection(colExpenses).Query.Where("UserID", "==", userID)
	if cutoffDate != "" {
		query = query.Where("Date", ">=", cutoffDate)
	}
	// Firestore requires the order-by to start on the inequality field.
	query = query.OrderBy("Date", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses := make([]*model.Expense, 0, len(docs))
	for _, doc := range docs {
		var expense model.Expense
		if err := doc.DataTo(&expense); err != nil {
			return nil, fmt.Errorf("parse expense %s: %w", doc.Ref.ID, err)
		}
		expenses = append(expenses, &expense)
	}
	return expenses, nil
}

// Income operations

func (s *FirestoreStore) CreateIncome(ctx context.Context, income *model.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	if income.CreatedAt.IsZero() {
		income.CreatedAt = time.Now()
	}

	_, err := s.client.Collection(colIncome).Doc(income.ID).Set(ctx, income)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	doc, err := s.client.Collection(colIncome).Doc(incomeID).Get(ctx)
	if err != nil {
		return nil, translateErr("income", incomeID, err)
	}

	var income model.Income
	if err := doc.DataTo(&income); err != nil {
		return nil, fmt.Errorf("parse income %s: %w", incomeID, err)
	}
	return &income, nil
}

func (s *FirestoreStore) UpdateIncome(ctx context.Context, userID string, income *model.Income) error {
	existing, err := s.GetIncome(ctx, income.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("income %s: %w", income.ID, ErrPermissionDenied)
	}

	if _, err := s.client.Collection(colIncome).Doc(income.ID).Set(ctx, income); err != nil {
		return fmt.Errorf("update income %s: %w", income.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	existing, err := s.GetIncome(ctx, incomeID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("income %s: %w", incomeID, ErrPermissionDenied)
	}

	if _, err := s.client.Collection(colIncome).Doc(incomeID).Delete(ctx); err != nil {
		return fmt.Errorf("delete income %s: %w", incomeID, err)
	}
	return nil
}

func (s *FirestoreStore) ListIncomes(ctx context.Context, userID, cutoffDate string) ([]*model.Income, error) {
	query := s.client.Collection(colIncome).Query.Where("UserID", "==", userID)
	if cutoffDate != "" {
		query = query.Where("Date", ">=", cutoffDate)
	}
	query = query.OrderBy("Date", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	incomes := make([]*model.Income, 0, len(docs))
	for _, doc := range docs {
		var income model.Income
		if err := doc.DataTo(&income); err != nil {
			return nil, fmt.Errorf("parse income %s: %w", doc.Ref.ID, err)
		}
		incomes = append(incomes, &income)
	}
	return incomes, nil
}

// Reminder operations

func (s *FirestoreStore) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}

	_, err := s.client.Collection(colReminders).Doc(reminder.ID).Set(ctx, reminder)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetReminder(ctx context.Context, reminderID string) (*model.Reminder, error) {
	doc, err := s.client.Collection(colReminders).Doc(reminderID).Get(ctx)
	if err != nil {
		return nil, translateErr("reminder", reminderID, err)
	}

	var reminder model.Reminder
	if err := doc.DataTo(&reminder); err != nil {
		return nil, fmt.Errorf("parse reminder %s: %w", reminderID, err)
	}
	return &reminder, nil
}

func (s *FirestoreStore) UpdateReminder(ctx context.Context, userID string, reminder *model.Reminder) error {
	existing, err := s.GetReminder(ctx, reminder.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("reminder %s: %w", reminder.ID, ErrPermissionDenied)
	}

	if _, err := s.client.Collection(colReminders).Doc(reminder.ID).Set(ctx, reminder); err != nil {
		return fmt.Errorf("update reminder %s: %w", reminder.ID, err)
	}
	return nil
}

func (s *FirestoreStore) DeleteReminder(ctx context.Context, userID, reminderID string) error {
	existing, err := s.GetReminder(ctx, reminderID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return fmt.Errorf("reminder %s: %w", reminderID, ErrPermissionDenied)
	}

	if _, err := s.client.Collection(colReminders).Doc(reminderID).Delete(ctx); err != nil {
		return fmt.Errorf("delete reminder %s: %w", reminderID, err)
	}
	return nil
}

func (s *FirestoreStore) ListReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	query := s.client.Collection(colReminders).Query.
		Where("UserID", "==", userID).
		OrderBy("DueDate", firestore.Asc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}

	reminders := make([]*model.Reminder, 0, len(docs))
	for _, doc := range docs {
		var reminder model.Reminder
		if err := doc.DataTo(&reminder); err != nil {
			return nil, fmt.Errorf("parse reminder %s: %w", doc.Ref.ID, err)
		}
		reminders = append(reminders, &reminder)
	}
	return reminders, nil
}

// Attachment operations

func (s *FirestoreStore) CreateAttachment(ctx context.Context, attachment *model.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.New().String()
	}
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now()
	}

	_, err := s.client.Collection(colAttachments).Doc(attachment.ID).Set(ctx, attachment)
	if err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

func (s *FirestoreStore) ListAttachments(ctx context.Context, expenseID string) ([]model.Attachment, error) {
	query := s.client.Collection(colAttachments).Query.Where("ExpenseID", "==", expenseID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	attachments := make([]model.Attachment, 0, len(docs))
	for _, doc := range docs {
		var attachment model.Attachment
		if err := doc.DataTo(&attachment); err != nil {
			return nil, fmt.Errorf("parse attachment %s: %w", doc.Ref.ID, err)
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}
