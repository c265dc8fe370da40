package repo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
)

type ApplicantRepository interface {
	CreateProfile(a *model.Applicant) error
	FindByUserID(userID uuid.UUID) (*model.Applicant, error)
	FindByID(id uuid.UUID) (*model.Applicant, error)
	Update(a *model.Applicant) error
	Delete(id uuid.UUID) error
	FindAll(f model.ApplicantFilter) ([]model.Applicant, int64, error)
	CountAll() (int64, error)
	UpsertDocument(doc *model.ApplicantDocument) error
	FindDocument(applicantID uuid.UUID, docType model.DocumentType) (*model.ApplicantDocument, error)
	FindDocuments(applicantID uuid.UUID) ([]model.ApplicantDocument, error)
}

type ApplicantRepo struct {
	DB *sql.DB
}

func NewApplicantRepo(db *sql.DB) *ApplicantRepo {
	return &ApplicantRepo{DB: db}
}

const applicantColumns = `id, user_id, full_name, email, phone_number, address, date_of_birth, gender,
	state_of_origin, lga, school_name, jamb_reg_number, waec_reg_number, profile_picture, created_at, updated_at`

// CreateProfile inserts exactly one profile per user. The user_id unique
// index is the real guard; the pre-check callers may do only shortens the
// common path.
func (r *ApplicantRepo) CreateProfile(a *model.Applicant) error {
	query := `
		INSERT INTO applicants (user_id, full_name, email, phone_number, address, date_of_birth, gender,
			state_of_origin, lga, school_name, jamb_reg_number, waec_reg_number, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	now := time.Now()
	err := r.DB.QueryRow(query,
		a.UserID, a.FullName, a.Email, a.PhoneNumber, a.Address, a.DateOfBirth, a.Gender,
		a.StateOfOrigin, a.LGA, a.SchoolName, a.JambRegNumber, a.WaecRegNumber, a.ProfilePicture,
		now, now,
	).Scan(&a.ID)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err == nil {
		a.CreatedAt, a.UpdatedAt = now, now
	}
	return err
}

func (r *ApplicantRepo) FindByUserID(userID uuid.UUID) (*model.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE user_id = $1`
	return r.scanApplicant(r.DB.QueryRow(query, userID))
}

func (r *ApplicantRepo) FindByID(id uuid.UUID) (*model.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants WHERE id = $1`
	return r.scanApplicant(r.DB.QueryRow(query, id))
}

func (r *ApplicantRepo) scanApplicant(row *sql.Row) (*model.Applicant, error) {
	var a model.Applicant
	var phone, address, gender, state, lga, school, jambReg, waecReg, picture sql.NullString
	var dob sql.NullTime

	err := row.Scan(
		&a.ID, &a.UserID, &a.FullName, &a.Email, &phone, &address, &dob, &gender,
		&state, &lga, &school, &jambReg, &waecReg, &picture, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}

	a.PhoneNumber = phone.String
	a.Address = address.String
	a.Gender = gender.String
	a.StateOfOrigin = state.String
	a.LGA = lga.String
	a.SchoolName = school.String
	a.JambRegNumber = jambReg.String
	a.WaecRegNumber = waecReg.String
	a.ProfilePicture = picture.String
	if dob.Valid {
		a.DateOfBirth = dob.Time
	}
	return &a, nil
}

func (r *ApplicantRepo) Update(a *model.Applicant) error {
	query := `
		UPDATE applicants
		SET full_name = $1, phone_number = $2, address = $3, date_of_birth = $4, gender = $5,
			state_of_origin = $6, lga = $7, school_name = $8, jamb_reg_number = $9,
			waec_reg_number = $10, profile_picture = $11, updated_at = $12
		WHERE id = $13`

	result, err := r.DB.Exec(query,
		a.FullName, a.PhoneNumber, a.Address, a.DateOfBirth, a.Gender,
		a.StateOfOrigin, a.LGA, a.SchoolName, a.JambRegNumber,
		a.WaecRegNumber, a.ProfilePicture, time.Now(), a.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete blocks when applications reference the applicant rather than
// cascading; both statements run in one transaction so the check cannot go
// stale against a concurrent submit.
func (r *ApplicantRepo) Delete(id uuid.UUID) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int64
	if err := tx.QueryRow(`SELECT COUNT(*) FROM applications WHERE applicant_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	if _, err := tx.Exec(`DELETE FROM applicant_documents WHERE applicant_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.Exec(`DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *ApplicantRepo) FindAll(f model.ApplicantFilter) ([]model.Applicant, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.Search != "" {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}
	if f.State != "" {
		where += fmt.Sprintf(" AND state_of_origin = $%d", argIndex)
		args = append(args, f.State)
		argIndex++
	}
	if f.LGA != "" {
		where += fmt.Sprintf(" AND lga = $%d", argIndex)
		args = append(args, f.LGA)
		argIndex++
	}

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM applicants`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicantColumns + ` FROM applicants` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applicants []model.Applicant
	for rows.Next() {
		var a model.Applicant
		var phone, address, gender, state, lga, school, jambReg, waecReg, picture sql.NullString
		var dob sql.NullTime

		if err := rows.Scan(
			&a.ID, &a.UserID, &a.FullName, &a.Email, &phone, &address, &dob, &gender,
			&state, &lga, &school, &jambReg, &waecReg, &picture, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		a.PhoneNumber = phone.String
		a.Address = address.String
		a.Gender = gender.String
		a.StateOfOrigin = state.String
		a.LGA = lga.String
		a.SchoolName = school.String
		a.JambRegNumber = jambReg.String
		a.WaecRegNumber = waecReg.String
		a.ProfilePicture = picture.String
		if dob.Valid {
			a.DateOfBirth = dob.Time
		}
		applicants = append(applicants, a)
	}

	return applicants, total, rows.Err()
}

func (r *ApplicantRepo) CountAll() (int64, error) {
	var total int64
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM applicants`).Scan(&total)
	return total, err
}

// UpsertDocument keeps at most one document per (applicant, type); a new
// upload replaces the previous file path and score.
func (r *ApplicantRepo) UpsertDocument(doc *model.ApplicantDocument) error {
	query := `
		INSERT INTO applicant_documents (applicant_id, type, file_path, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (applicant_id, type)
		DO UPDATE SET file_path = EXCLUDED.file_path, score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
		RETURNING id`

	now := time.Now()
	return r.DB.QueryRow(query, doc.ApplicantID, doc.Type, doc.FilePath, doc.Score, now, now).Scan(&doc.ID)
}

func (r *ApplicantRepo) FindDocument(applicantID uuid.UUID, docType model.DocumentType) (*model.ApplicantDocument, error) {
	query := `
		SELECT id, applicant_id, type, file_path, score, created_at, updated_at
		FROM applicant_documents
		WHERE applicant_id = $1 AND type = $2`

	var doc model.ApplicantDocument
	var score sql.NullInt64
	err := r.DB.QueryRow(query, applicantID, docType).Scan(
		&doc.ID, &doc.ApplicantID, &doc.Type, &doc.FilePath, &score, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if score.Valid {
		s := int(score.Int64)
		doc.Score = &s
	}
	return &doc, nil
}

func (r *ApplicantRepo) FindDocuments(applicantID uuid.UUID) ([]model.ApplicantDocument, error) {
	query := `
		SELECT id, applicant_id, type, file_path, score, created_at, updated_at
		FROM applicant_documents
		WHERE applicant_id = $1
		ORDER BY type`

	rows, err := r.DB.Query(query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.ApplicantDocument
	for rows.Next() {
		var doc model.ApplicantDocument
		var score sql.NullInt64
		if err := rows.Scan(&doc.ID, &doc.ApplicantID, &doc.Type, &doc.FilePath, &score, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			s := int(score.Int64)
			doc.Score = &s
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
