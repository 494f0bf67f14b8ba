//go:build ignore
// +build ignore

// Seeds demo data straight into Firestore so the CLI has something to show.
//
//	GOOGLE_CLOUD_PROJECT=<project> USER_ID=<uid> go run scripts/seed-data.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"

	"fintrack/internal/model"
	"fintrack/internal/store"
)

func main() {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		log.Fatal("GOOGLE_CLOUD_PROJECT must be set")
	}

	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "local-dev-user"
	}

	log.Printf("🌱 Seeding data for user: %s", userID)

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	s := store.NewFirestoreStore(client)

	if err := seedExpenses(ctx, s, userID); err != nil {
		log.Fatalf("Failed to seed expenses: %v", err)
	}
	if err := seedIncomes(ctx, s, userID); err != nil {
		log.Fatalf("Failed to seed incomes: %v", err)
	}
	if err := seedReminders(ctx, s, userID); err != nil {
		log.Fatalf("Failed to seed reminders: %v", err)
	}

	log.Println("✅ Successfully seeded all test data!")
}

func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(model.DateLayout)
}

func seedExpenses(ctx context.Context, s store.Store, userID string) error {
	expenses := []model.Expense{
		{Amount: 4.50, Description: "Morning coffee", Category: "Food & Dining", Currency: "USD", Date: daysAgo(1)},
		{Amount: 62.30, Description: "Weekly groceries", Category: "Food & Dining", Currency: "USD", Date: daysAgo(3)},
		{Amount: 18.00, Description: "Uber to downtown", Category: "Transportation", Currency: "USD", Date: daysAgo(5)},
		{Amount: 89.99, Description: "Electric bill", Category: "Bills & Utilities", Currency: "USD", Date: daysAgo(10)},
		{Amount: 15.99, Description: "Netflix subscription", Category: "Entertainment", Currency: "USD", Date: daysAgo(14)},
		{Amount: 120.00, Description: "New running shoes", Category: "Shopping", Currency: "USD", Date: daysAgo(25)},
		{Amount: 45.00, Description: "Gym membership", Category: "Health & Fitness", Currency: "USD", Date: daysAgo(40)},
	}

	for _, e := range expenses {
		e.UserID = userID
		if err := s.CreateExpense(ctx, &e); err != nil {
			return fmt.Errorf("create expense %q: %w", e.Description, err)
		}
		log.Printf("  💸 %s (%.2f)", e.Description, e.Amount)
	}
	return nil
}

func seedIncomes(ctx context.Context, s store.Store, userID string) error {
	incomes := []model.Income{
		{Amount: 4200.00, Description: "Monthly salary", Category: "Salary", Currency: "USD", Date: daysAgo(15)},
		{Amount: 350.00, Description: "Freelance article", Category: "Freelance", Currency: "USD", Date: daysAgo(8)},
		{Amount: 75.00, Description: "Dividend payout", Category: "Investments", Currency: "USD", Date: daysAgo(30)},
	}

	for _, i := range incomes {
		i.UserID = userID
		if err := s.CreateIncome(ctx, &i); err != nil {
			return fmt.Errorf("create income %q: %w", i.Description, err)
		}
		log.Printf("  💰 %s (%.2f)", i.Description, i.Amount)
	}
	return nil
}

func seedReminders(ctx context.Context, s store.Store, userID string) error {
	rent := 1500.0
	loan := 200.0
	reminders := []model.Reminder{
		{Title: "Pay rent", Category: "bill", DueDate: time.Now().AddDate(0, 0, 3).Format(model.DateLayout), Amount: &rent},
		{Title: "Loan from Sam", Category: "loan", DueDate: time.Now().AddDate(0, 0, 10).Format(model.DateLayout), Amount: &loan},
		{Title: "Refill prescription", Category: "medicine", DueDate: time.Now().AddDate(0, 0, 5).Format(model.DateLayout)},
	}

	for _, r := range reminders {
		r.UserID = userID
		if err := s.CreateReminder(ctx, &r); err != nil {
			return fmt.Errorf("create reminder %q: %w", r.Title, err)
		}
		log.Printf("  ⏰ %s (due %s)", r.Title, r.DueDate)
	}
	return nil
}
