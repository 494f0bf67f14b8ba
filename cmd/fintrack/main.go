package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	gcsstorage "cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"fintrack/internal/aggregate"
	"fintrack/internal/auth"
	"fintrack/internal/model"
	"fintrack/internal/report"
	"fintrack/internal/storage"
	"fintrack/internal/store"
	"fintrack/internal/tracker"
)

const usage = `Usage: fintrack <command> [flags]

Commands:
  list          List expenses, income, or reminders
  add-expense   Record an expense, optionally with attachment files
  add-income    Record an income, optionally with attachment files
  add-reminder  Create a reminder
  complete      Toggle a reminder's completion state
  delete        Delete a record (asks for confirmation)
  download      Fetch an attachment blob to a local file
  calendar      Show a month or year activity calendar
  report        Print a financial report for the current period
`

// app wires the session and record caches behind the subcommands.
type app struct {
	session   auth.Session
	expenses  *tracker.Expenses
	incomes   *tracker.Incomes
	reminders *tracker.Reminders
	bucket    *storage.BucketStore
}

func main() {
	// A missing .env is fine; env vars may come from the shell.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	a, cleanup, err := setup(ctx)
	if err != nil {
		log.Fatalf("[Setup] %v", err)
	}
	defer cleanup()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "list":
		err = a.list(ctx, args)
	case "add-expense":
		err = a.addExpense(ctx, args)
	case "add-income":
		err = a.addIncome(ctx, args)
	case "add-reminder":
		err = a.addReminder(ctx, args)
	case "complete":
		err = a.complete(ctx, args)
	case "delete":
		err = a.delete(ctx, args)
	case "download":
		err = a.download(ctx, args)
	case "calendar":
		err = a.calendar(ctx, args)
	case "report":
		err = a.report(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("[%s] %v", cmd, err)
	}
}

func setup(ctx context.Context) (*app, func(), error) {
	useMemoryStore := os.Getenv("USE_MEMORY_STORE") == "true" || os.Getenv("ENV") == "local"

	notify := consoleNotifier{}
	cleanup := func() {}

	var (
		st     store.Store
		blobs  tracker.BlobStore
		bucket *storage.BucketStore
		sess   auth.Session
	)

	if useMemoryStore {
		log.Println("Using in-memory store for local development")
		st = store.NewMemoryStore()
		blobs = discardBlobs{}
		sess = auth.Session{UID: "local-user", Email: "local@fintrack.dev", Name: "Local User", Verified: true}
	} else {
		projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
		if projectID == "" {
			return nil, nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT must be set")
		}

		firestoreClient, err := firestore.NewClient(ctx, projectID)
		if err != nil {
			return nil, nil, fmt.Errorf("create firestore client: %w", err)
		}

		gcsClient, err := gcsstorage.NewClient(ctx)
		if err != nil {
			firestoreClient.Close()
			return nil, nil, fmt.Errorf("create storage client: %w", err)
		}
		bucketName := os.Getenv("FINTRACK_BUCKET")
		if bucketName == "" {
			bucketName = projectID + ".appspot.com"
		}

		firebaseAuth, err := auth.NewFirebaseAuth(ctx)
		if err != nil {
			firestoreClient.Close()
			gcsClient.Close()
			return nil, nil, fmt.Errorf("initialize firebase auth: %w", err)
		}

		idToken := os.Getenv("FINTRACK_ID_TOKEN")
		if idToken == "" {
			return nil, nil, fmt.Errorf("FINTRACK_ID_TOKEN must be set (a Firebase ID token for the signed-in user)")
		}
		sess, err = firebaseAuth.VerifyToken(ctx, idToken)
		if err != nil {
			firestoreClient.Close()
			gcsClient.Close()
			return nil, nil, fmt.Errorf("verify token: %w", err)
		}

		st = store.NewFirestoreStore(firestoreClient)
		bucket = storage.NewBucketStore(gcsClient.Bucket(bucketName))
		blobs = bucket
		cleanup = func() {
			firestoreClient.Close()
			gcsClient.Close()
		}
	}

	incomes := tracker.NewIncomes(st, blobs, notify)
	a := &app{
		session:   sess,
		expenses:  tracker.NewExpenses(st, blobs, notify),
		incomes:   incomes,
		reminders: tracker.NewReminders(st, incomes, notify),
		bucket:    bucket,
	}
	return a, cleanup, nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	kind := fs.String("kind", "expenses", "expenses, income, or reminders")
	filter := fs.String("filter", "all", "time filter: all, week, month, year")
	search := fs.String("search", "", "search description and category")
	fs.Parse(args)

	opts := tracker.FetchOptions{TimeFilter: model.TimeFilter(*filter), Search: *search}

	switch *kind {
	case "expenses":
		records, err := a.expenses.Fetch(ctx, a.session, opts)
		if err != nil {
			return err
		}
		for _, e := range records {
			fmt.Printf("%s  %s  %s%.2f  %-20s %s\n",
				e.ID, e.Date, model.CurrencySymbol(e.Currency), e.Amount, e.Category, e.Description)
		}
	case "income":
		records, err := a.incomes.Fetch(ctx, a.session, opts)
		if err != nil {
			return err
		}
		for _, i := range records {
			fmt.Printf("%s  %s  %s%.2f  %-20s %s\n",
				i.ID, i.Date, model.CurrencySymbol(i.Currency), i.Amount, i.Category, i.Description)
		}
	case "reminders":
		records, err := a.reminders.Fetch(ctx, a.session)
		if err != nil {
			return err
		}
		for _, r := range records {
			state := "pending"
			if r.Completed {
				state = "done"
			}
			if r.Amount != nil {
				fmt.Printf("%s  due %s  [%s]  %s (%.2f)\n", r.ID, r.DueDate, state, r.Title, *r.Amount)
			} else {
				fmt.Printf("%s  due %s  [%s]  %s\n", r.ID, r.DueDate, state, r.Title)
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}
	return nil
}

func (a *app) addExpense(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-expense", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "expense amount")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "", "one of: "+strings.Join(model.ExpenseCategories, ", ")+" (suggested from description when empty)")
	currency := fs.String("currency", "USD", "currency code")
	date := fs.String("date", time.Now().Format(model.DateLayout), "date (YYYY-MM-DD)")
	fs.Parse(args)

	expense := model.Expense{
		Amount:      *amount,
		Description: *desc,
		Category:    *category,
		Currency:    *currency,
		Date:        *date,
	}
	if expense.Category == "" {
		expense.Category = model.SuggestCategory(expense.Description)
		expense.AISuggested = true
	}

	files, err := openFiles(fs.Args())
	if err != nil {
		return err
	}
	defer closeFiles(files)

	created, err := a.expenses.Add(ctx, a.session, expense, files)
	if err != nil {
		return err
	}
	fmt.Printf("Added expense %s\n", created.ID)
	return nil
}

func (a *app) addIncome(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-income", flag.ExitOnError)
	amount := fs.Float64("amount", 0, "income amount")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "Other", "one of: "+strings.Join(model.IncomeCategories, ", "))
	currency := fs.String("currency", "USD", "currency code")
	date := fs.String("date", time.Now().Format(model.DateLayout), "date (YYYY-MM-DD)")
	fs.Parse(args)

	income := model.Income{
		Amount:      *amount,
		Description: *desc,
		Category:    *category,
		Currency:    *currency,
		Date:        *date,
	}

	files, err := openFiles(fs.Args())
	if err != nil {
		return err
	}
	defer closeFiles(files)

	created, err := a.incomes.Add(ctx, a.session, income, files)
	if err != nil {
		return err
	}
	fmt.Printf("Added income %s\n", created.ID)
	return nil
}

func (a *app) addReminder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-reminder", flag.ExitOnError)
	title := fs.String("title", "", "reminder title")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "bill", "one of: "+strings.Join(model.ReminderCategories, ", "))
	due := fs.String("due", "", "due date (YYYY-MM-DD)")
	amount := fs.Float64("amount", 0, "expected amount (0 means none)")
	fs.Parse(args)

	reminder := model.Reminder{
		Title:       *title,
		Description: *desc,
		Category:    *category,
		DueDate:     *due,
	}
	if *amount != 0 {
		reminder.Amount = amount
	}

	created, err := a.reminders.Add(ctx, a.session, reminder)
	if err != nil {
		return err
	}
	fmt.Printf("Added reminder %s\n", created.ID)
	return nil
}

func (a *app) complete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("complete", flag.ExitOnError)
	id := fs.String("id", "", "reminder id")
	undo := fs.Bool("undo", false, "mark the reminder pending again")
	fs.Parse(args)

	_, err := a.reminders.Toggle(ctx, a.session, *id, !*undo)
	return err
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	kind := fs.String("kind", "expenses", "expenses, income, or reminders")
	id := fs.String("id", "", "record id")
	fs.Parse(args)

	fmt.Printf("Delete %s record %s? [y/N] ", *kind, *id)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
		return nil
	}

	switch *kind {
	case "expenses":
		return a.expenses.Delete(ctx, a.session, *id)
	case "income":
		return a.incomes.Delete(ctx, a.session, *id)
	case "reminders":
		return a.reminders.Delete(ctx, a.session, *id)
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}
}

func (a *app) download(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	objectPath := fs.String("path", "", "attachment object path (as listed on the record)")
	out := fs.String("out", "", "output file (defaults to the object's base name)")
	fs.Parse(args)

	if a.bucket == nil {
		return fmt.Errorf("downloads need the hosted backend; not available with USE_MEMORY_STORE")
	}
	if *objectPath == "" {
		return fmt.Errorf("-path is required")
	}
	if !strings.HasPrefix(*objectPath, a.session.UID+"/") {
		return fmt.Errorf("attachment %s does not belong to the signed-in user", *objectPath)
	}

	data, err := a.bucket.Download(ctx, *objectPath)
	if err != nil {
		return err
	}

	target := *out
	if target == "" {
		target = filepath.Base(*objectPath)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Printf("Downloaded %s (%d bytes)\n", target, len(data))
	return nil
}

func (a *app) calendar(ctx context.Context, args []string) error {
	now := time.Now()
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	year := fs.Int("year", now.Year(), "calendar year")
	month := fs.Int("month", int(now.Month()), "calendar month (0 shows the whole year)")
	fs.Parse(args)

	opts := tracker.FetchOptions{TimeFilter: model.TimeFilterAll}
	expenses, err := a.expenses.Fetch(ctx, a.session, opts)
	if err != nil {
		return err
	}
	incomes, err := a.incomes.Fetch(ctx, a.session, opts)
	if err != nil {
		return err
	}
	reminders, err := a.reminders.Fetch(ctx, a.session)
	if err != nil {
		return err
	}

	if *month == 0 {
		months := aggregate.YearCalendar(*year, expenses, incomes, reminders)
		fmt.Printf("Year %d\n", *year)
		for i, m := range months {
			fmt.Printf("  %-9s  spent %10.2f  earned %10.2f  reminders %d\n",
				time.Month(i+1), m.Expenses, m.Income, m.Reminders)
		}
		return nil
	}

	days := aggregate.MonthCalendar(*year, *month, expenses, incomes, reminders)
	fmt.Printf("%s %d\n", time.Month(*month), *year)
	for day := 1; day <= 31; day++ {
		activity, ok := days[day]
		if !ok || !activity.HasActivity() {
			continue
		}
		fmt.Printf("  %2d  expenses %d  income %d  reminders %d\n",
			day, len(activity.Expenses), len(activity.Incomes), len(activity.Reminders))
	}
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	period := fs.String("period", "monthly", "monthly, quarterly, or yearly")
	fs.Parse(args)

	opts := tracker.FetchOptions{TimeFilter: model.TimeFilterAll}
	expenses, err := a.expenses.Fetch(ctx, a.session, opts)
	if err != nil {
		return err
	}
	incomes, err := a.incomes.Fetch(ctx, a.session, opts)
	if err != nil {
		return err
	}

	r := report.Build(time.Now(), expenses, incomes, report.Period(*period))
	fmt.Print(r.Render())
	return nil
}

func openFiles(paths []string) ([]storage.File, error) {
	var files []storage.File
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeFiles(files)
			return nil, fmt.Errorf("open attachment %s: %w", p, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			closeFiles(files)
			return nil, fmt.Errorf("stat attachment %s: %w", p, err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(p))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		files = append(files, storage.File{
			Name:        filepath.Base(p),
			ContentType: contentType,
			Size:        info.Size(),
			Content:     f,
		})
	}
	return files, nil
}

func closeFiles(files []storage.File) {
	for _, f := range files {
		if closer, ok := f.Content.(interface{ Close() error }); ok {
			closer.Close()
		}
	}
}

// consoleNotifier prints operation outcomes the way toasts would show them.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { log.Printf("✅ %s", msg) }
func (consoleNotifier) Error(msg string)   { log.Printf("❌ %s", msg) }

// discardBlobs stands in for blob storage in memory mode. Uploads succeed
// without persisting anything.
type discardBlobs struct{}

func (discardBlobs) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	return nil
}
