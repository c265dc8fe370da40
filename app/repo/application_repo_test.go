package repo

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baffa-m/gamjifoundation/app/model"
)

func newApplication() *model.Application {
	return &model.Application{
		ApplicantID:       uuid.New(),
		AwardID:           uuid.New(),
		ApplicationNumber: "APP-ABC123XYZ0",
		ApplicationDate:   time.Now(),
	}
}

func TestApplicationCreateSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	app := newApplication()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	r := NewApplicationRepo(db)
	if err := r.Create(app); err != nil {
		t.Fatalf("create: %v", err)
	}
	if app.ID != id {
		t.Fatalf("id not set: %v", app.ID)
	}
	if app.Status != model.ApplicationPending {
		t.Fatalf("new application must be pending, got %q", app.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// The second concurrent submit for the same (applicant, award) pair must
// observe a typed Duplicate failure from the unique index, not a raw driver
// error.
func TestApplicationCreateDuplicatePair(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_applications_applicant_award"})

	r := NewApplicationRepo(db)
	if err := r.Create(newApplication()); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestApplicationCreateNumberCollision(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_applications_number"})

	r := NewApplicationRepo(db)
	if err := r.Create(newApplication()); !errors.Is(err, ErrNumberConflict) {
		t.Fatalf("expected ErrNumberConflict, got %v", err)
	}
}

func TestApplicationUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET application_status")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewApplicationRepo(db)
	err = r.UpdateStatus(uuid.New(), model.ApplicationRejected, "incomplete")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplicationUpdateStatusWritesNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET application_status")).
		WithArgs(model.ApplicationRejected, "incomplete", sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewApplicationRepo(db)
	if err := r.UpdateStatus(id, model.ApplicationRejected, "incomplete"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
