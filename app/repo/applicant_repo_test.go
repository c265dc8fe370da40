package repo

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baffa-m/gamjifoundation/app/model"
)

func TestCreateProfileAlreadyExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applicants")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_applicants_user"})

	r := NewApplicantRepo(db)
	a := &model.Applicant{UserID: uuid.New(), FullName: "Amina Bello", Email: "amina@example.com"}
	if err := r.CreateProfile(a); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpsertDocumentUsesOnConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (applicant_id, type)")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	r := NewApplicantRepo(db)
	score := 245
	doc := &model.ApplicantDocument{
		ApplicantID: uuid.New(),
		Type:        model.DocumentJamb,
		FilePath:    "applicants/documents/01J8ZV.pdf",
		Score:       &score,
	}
	if err := r.UpsertDocument(doc); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if doc.ID != id {
		t.Fatalf("id not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Deleting an applicant with applications must fail with Conflict and roll
// back without touching any row.
func TestDeleteApplicantBlockedByApplications(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM applications WHERE applicant_id")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	r := NewApplicantRepo(db)
	if err := r.Delete(uuid.New()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFindByUserIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM applicants WHERE user_id")).
		WillReturnError(sql.ErrNoRows)

	r := NewApplicantRepo(db)
	if _, err := r.FindByUserID(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
