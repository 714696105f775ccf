package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() }) // nolint:errcheck

	return New(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func recordColumns() []string {
	return []string{
		"id", "name", "url", "normalized_url", "normalized_cfp_url",
		"start_date", "end_date", "city", "country", "cfp_url",
		"twitter", "mastodon", "topics", "code_of_conduct",
		"created_at", "updated_at",
	}
}

func strPtr(s string) *string { return &s }

func TestStore_FindByIdentity(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(recordColumns()).AddRow(
		int64(7), "GopherCon Europe", "https://gophercon.eu/?ref=1",
		"https://gophercon.eu", "https://gophercon.eu/cfp",
		nil, nil, "Berlin", "Germany", "https://gophercon.eu/cfp",
		"unknown", "unknown", []byte("{golang,cloud}"), "unknown",
		now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM conferences").
		WithArgs("https://gophercon.eu", "https://gophercon.eu/cfp").
		WillReturnRows(rows)

	matches, err := s.FindByIdentity(ctx, strPtr("https://gophercon.eu"), strPtr("https://gophercon.eu/cfp"))
	if err != nil {
		t.Fatalf("FindByIdentity() error = %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].ID != 7 {
		t.Errorf("ID = %d, want 7", matches[0].ID)
	}
	if matches[0].NormalizedURL != "https://gophercon.eu" {
		t.Errorf("NormalizedURL = %q", matches[0].NormalizedURL)
	}
	if len(matches[0].Topics) != 2 || matches[0].Topics[0] != "golang" {
		t.Errorf("Topics = %v", matches[0].Topics)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_FindByIdentity_NoMatch(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM conferences").
		WithArgs("https://nowhere.example.com", nil).
		WillReturnRows(sqlmock.NewRows(recordColumns()))

	matches, err := s.FindByIdentity(context.Background(), strPtr("https://nowhere.example.com"), nil)
	if err != nil {
		t.Fatalf("FindByIdentity() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %d, want 0", len(matches))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_Create(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO conferences").
		WithArgs(
			"GopherCon Europe",
			"https://gophercon.eu/?ref=1",
			"https://gophercon.eu",
			sqlmock.AnyArg(), // normalized cfp url (nullable)
			sqlmock.AnyArg(), // start date
			sqlmock.AnyArg(), // end date
			"Berlin",
			"Germany",
			"https://gophercon.eu/cfp",
			"unknown",
			"unknown",
			sqlmock.AnyArg(), // topics array
			"unknown",
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))

	cand := conference.NewCandidate()
	cand.Name = "GopherCon Europe"
	cand.URL = "https://gophercon.eu/?ref=1"
	cand.City = "Berlin"
	cand.Country = "Germany"
	cand.CFPURL = "https://gophercon.eu/cfp"
	cand.Topics = []string{"golang"}

	rec := conference.NewRecord(cand, "https://gophercon.eu", strPtr("https://gophercon.eu/cfp"))

	created, err := s.Create(context.Background(), rec)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 42 {
		t.Errorf("ID = %d, want 42", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps should be populated from the database")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_CreateIsUpsert(t *testing.T) {
	// The insert must carry the conflict clause that closes the
	// concurrent-run race on normalized_url.
	s, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO conferences .+ ON CONFLICT \(normalized_url\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), time.Now(), time.Now()))

	cand := conference.NewCandidate()
	cand.URL = "https://confx.example.com"
	rec := conference.NewRecord(cand, "https://confx.example.com", nil)

	if _, err := s.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	s, mock := newMockStore(t)

	created := time.Now().UTC().Add(-24 * time.Hour)
	updated := time.Now().UTC()

	mock.ExpectQuery("UPDATE conferences SET").
		WithArgs(
			"GopherCon Europe",
			"https://gophercon.eu",
			"https://gophercon.eu",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			"Munich",
			"Germany",
			"unknown",
			"unknown",
			"unknown",
			sqlmock.AnyArg(),
			"unknown",
			int64(7),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), created, updated))

	cand := conference.NewCandidate()
	cand.Name = "GopherCon Europe"
	cand.URL = "https://gophercon.eu"
	cand.City = "Munich"
	cand.Country = "Germany"
	rec := conference.NewRecord(cand, "https://gophercon.eu", nil)

	got, err := s.Update(context.Background(), 7, rec)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.ID != 7 {
		t.Errorf("ID = %d, want 7", got.ID)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("UpdatedAt should be refreshed past CreatedAt")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_CreateError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO conferences").
		WillReturnError(errors.New("connection reset"))

	cand := conference.NewCandidate()
	cand.URL = "https://confx.example.com"
	rec := conference.NewRecord(cand, "https://confx.example.com", nil)

	if _, err := s.Create(context.Background(), rec); err == nil {
		t.Fatal("Create() error = nil, want wrapped store failure")
	}
}

func TestStore_Migrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS conferences").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
