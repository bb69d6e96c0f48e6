package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abisalde/inventory-service/internal/configs"
	"github.com/abisalde/inventory-service/internal/database"
)

var dbSeq atomic.Int64

// SetupTestDB opens a private in-memory SQLite database migrated with the
// production schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &configs.Config{}
	cfg.DB.Driver = configs.DriverSQLite
	cfg.DB.SQLitePath = fmt.Sprintf("file:testdb_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), dbSeq.Add(1))

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.RunMigrations(context.Background(), db, configs.DriverSQLite); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

// Mailer records every message and fails while Err is set.
type Mailer struct {
	mu   sync.Mutex
	Err  error
	Sent []SentMail
}

func (m *Mailer) SendPlainTextEmail(ctx context.Context, to, subject, body string) error {
	return m.record(to, subject, body)
}

func (m *Mailer) SendHTMLEmail(ctx context.Context, to, subject, htmlBody string) error {
	return m.record(to, subject, htmlBody)
}

func (m *Mailer) record(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *Mailer) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

var codePattern = regexp.MustCompile(`class="code">(\d+)<`)

// LastCode returns the code from the most recent verification email sent
// to recipient.
func (m *Mailer) LastCode(recipient string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.Sent) - 1; i >= 0; i-- {
		if m.Sent[i].To != recipient {
			continue
		}
		if match := codePattern.FindStringSubmatch(m.Sent[i].Body); match != nil {
			return match[1]
		}
	}
	return ""
}
