package model

import "time"

// Expense is a single spending record. The store assigns ID and CreatedAt;
// everything else comes from the caller. Date is an ISO calendar date
// (YYYY-MM-DD) with no time component, so lexical comparison is date order.
type Expense struct {
	ID          string
	UserID      string
	Amount      float64
	Description string
	Category    string
	Currency    string
	Date        string
	AISuggested bool
	CreatedAt   time.Time
	Attachments []Attachment
}

// Income is a single earning record. FileAttachments holds blob storage
// paths; unlike expenses there is no separate attachment row per file.
type Income struct {
	ID              string
	UserID          string
	Amount          float64
	Description     string
	Category        string
	Currency        string
	Date            string
	FileAttachments []string
	CreatedAt       time.Time
}

// Reminder is a due-dated item (bill, loan, medicine, recharge). Amount is
// optional; when set, completing the reminder records a matching income.
type Reminder struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    string
	DueDate     string
	Amount      *float64
	Completed   bool
	CreatedAt   time.Time
}

// Attachment is the metadata row for one uploaded expense file. FilePath is
// the blob storage object path, FileType the MIME type.
type Attachment struct {
	ID        string
	ExpenseID string
	FileName  string
	FilePath  string
	FileType  string
	FileSize  int64
	CreatedAt time.Time
}
