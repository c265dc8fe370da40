package repo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
)

type ApplicationRepository interface {
	Create(app *model.Application) error
	ExistsFor(applicantID, awardID uuid.UUID) (bool, error)
	FindByID(id uuid.UUID) (*model.Application, error)
	FindAllForApplicant(applicantID uuid.UUID, status string, page, limit int) ([]model.Application, int64, error)
	FindAll(f model.ApplicationFilter) ([]model.Application, int64, error)
	UpdateStatus(id uuid.UUID, status model.ApplicationStatus, notes string) error
	CountByStatus() (map[model.ApplicationStatus]int64, error)
	CountByStatusForApplicant(applicantID uuid.UUID) (map[model.ApplicationStatus]int64, error)
	CountForSponsor(sponsorID uuid.UUID) (total, pending int64, err error)
	MonthlyCounts(year int) ([]int64, error)
}

type ApplicationRepo struct {
	DB *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db}
}

const applicationColumns = `ap.id, ap.applicant_id, ap.award_id, ap.application_number, ap.application_date,
	ap.application_status, ap.admin_notes, ap.jamb_score, ap.created_at, ap.updated_at`

// Create inserts the application in pending state. The
// (applicant_id, award_id) unique index resolves the concurrent-submit race:
// the second writer gets ErrDuplicate. A collision on the generated
// application number surfaces as ErrNumberConflict so the caller can retry
// with a fresh number.
func (r *ApplicationRepo) Create(app *model.Application) error {
	query := `
		INSERT INTO applications (applicant_id, award_id, application_number, application_date,
			application_status, admin_notes, jamb_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	err := r.DB.QueryRow(query,
		app.ApplicantID, app.AwardID, app.ApplicationNumber, app.ApplicationDate,
		model.ApplicationPending, app.AdminNotes, app.JambScore, now, now,
	).Scan(&app.ID)
	if err != nil {
		switch uniqueConstraint(err) {
		case "idx_applications_applicant_award":
			return ErrDuplicate
		case "idx_applications_number":
			return ErrNumberConflict
		}
		return err
	}
	app.Status = model.ApplicationPending
	app.CreatedAt, app.UpdatedAt = now, now
	return nil
}

func (r *ApplicationRepo) ExistsFor(applicantID, awardID uuid.UUID) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM applications WHERE applicant_id = $1 AND award_id = $2)`,
		applicantID, awardID,
	).Scan(&exists)
	return exists, err
}

func (r *ApplicationRepo) FindByID(id uuid.UUID) (*model.Application, error) {
	query := `SELECT ` + applicationColumns + `, a.full_name, aw.title, aw.category, aw.status
		FROM applications ap
		JOIN applicants a ON a.id = ap.applicant_id
		JOIN awards aw ON aw.id = ap.award_id
		WHERE ap.id = $1`

	var app model.Application
	var notes sql.NullString
	var jambScore sql.NullInt64
	var applicantName, awardTitle, awardCategory string
	var awardStatus model.AwardStatus

	err := r.DB.QueryRow(query, id).Scan(
		&app.ID, &app.ApplicantID, &app.AwardID, &app.ApplicationNumber, &app.ApplicationDate,
		&app.Status, &notes, &jambScore, &app.CreatedAt, &app.UpdatedAt,
		&applicantName, &awardTitle, &awardCategory, &awardStatus,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}

	app.AdminNotes = notes.String
	if jambScore.Valid {
		s := int(jambScore.Int64)
		app.JambScore = &s
	}
	app.Applicant = &model.Applicant{ID: app.ApplicantID, FullName: applicantName}
	app.Award = &model.Award{ID: app.AwardID, Title: awardTitle, Category: awardCategory, Status: awardStatus}
	return &app, nil
}

func (r *ApplicationRepo) FindAllForApplicant(applicantID uuid.UUID, status string, page, limit int) ([]model.Application, int64, error) {
	f := model.ApplicationFilter{Status: status, Page: page, Limit: limit}
	return r.findAll(f, &applicantID)
}

func (r *ApplicationRepo) FindAll(f model.ApplicationFilter) ([]model.Application, int64, error) {
	return r.findAll(f, nil)
}

func (r *ApplicationRepo) findAll(f model.ApplicationFilter, applicantID *uuid.UUID) ([]model.Application, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if applicantID != nil {
		where += fmt.Sprintf(" AND ap.applicant_id = $%d", argIndex)
		args = append(args, *applicantID)
		argIndex++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND ap.application_status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	if f.Search != "" {
		where += fmt.Sprintf(" AND (a.full_name ILIKE $%d OR a.email ILIKE $%d OR ap.application_number ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}
	if f.AwardID != nil {
		where += fmt.Sprintf(" AND ap.award_id = $%d", argIndex)
		args = append(args, *f.AwardID)
		argIndex++
	}

	base := ` FROM applications ap
		JOIN applicants a ON a.id = ap.applicant_id
		JOIN awards aw ON aw.id = ap.award_id` + where

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationColumns + `, a.full_name, aw.title, aw.category, aw.status` +
		base +
		fmt.Sprintf(" ORDER BY ap.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var app model.Application
		var notes sql.NullString
		var jambScore sql.NullInt64
		var applicantName, awardTitle, awardCategory string
		var awardStatus model.AwardStatus

		if err := rows.Scan(
			&app.ID, &app.ApplicantID, &app.AwardID, &app.ApplicationNumber, &app.ApplicationDate,
			&app.Status, &notes, &jambScore, &app.CreatedAt, &app.UpdatedAt,
			&applicantName, &awardTitle, &awardCategory, &awardStatus,
		); err != nil {
			return nil, 0, err
		}

		app.AdminNotes = notes.String
		if jambScore.Valid {
			s := int(jambScore.Int64)
			app.JambScore = &s
		}
		app.Applicant = &model.Applicant{ID: app.ApplicantID, FullName: applicantName}
		app.Award = &model.Award{ID: app.AwardID, Title: awardTitle, Category: awardCategory, Status: awardStatus}
		apps = append(apps, app)
	}

	return apps, total, rows.Err()
}

func (r *ApplicationRepo) UpdateStatus(id uuid.UUID, status model.ApplicationStatus, notes string) error {
	query := `UPDATE applications SET application_status = $1, admin_notes = $2, updated_at = $3 WHERE id = $4`
	result, err := r.DB.Exec(query, status, notes, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) CountByStatus() (map[model.ApplicationStatus]int64, error) {
	return r.countByStatus(`SELECT application_status, COUNT(*) FROM applications GROUP BY application_status`)
}

func (r *ApplicationRepo) CountByStatusForApplicant(applicantID uuid.UUID) (map[model.ApplicationStatus]int64, error) {
	return r.countByStatus(
		`SELECT application_status, COUNT(*) FROM applications WHERE applicant_id = $1 GROUP BY application_status`,
		applicantID,
	)
}

func (r *ApplicationRepo) countByStatus(query string, args ...interface{}) (map[model.ApplicationStatus]int64, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ApplicationStatus]int64)
	for rows.Next() {
		var status model.ApplicationStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *ApplicationRepo) CountForSponsor(sponsorID uuid.UUID) (total, pending int64, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE ap.application_status = 'pending')
		FROM applications ap
		JOIN awards aw ON aw.id = ap.award_id
		WHERE aw.sponsor_id = $1`
	err = r.DB.QueryRow(query, sponsorID).Scan(&total, &pending)
	return total, pending, err
}

// MonthlyCounts returns one bucket per month of the given year.
func (r *ApplicationRepo) MonthlyCounts(year int) ([]int64, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*)
		FROM applications
		WHERE EXTRACT(YEAR FROM created_at) = $1
		GROUP BY month`

	rows, err := r.DB.Query(query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]int64, 12)
	for rows.Next() {
		var month int
		var n int64
		if err := rows.Scan(&month, &n); err != nil {
			return nil, err
		}
		if month >= 1 && month <= 12 {
			counts[month-1] = n
		}
	}
	return counts, rows.Err()
}
