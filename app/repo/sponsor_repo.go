package repo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
)

type SponsorRepository interface {
	Create(s *model.Sponsor) error
	FindByUserID(userID uuid.UUID) (*model.Sponsor, error)
	FindByID(id uuid.UUID) (*model.Sponsor, error)
	Update(s *model.Sponsor) error
	UpdateStatus(id uuid.UUID, status model.VerificationStatus, notes string, verifiedAt *time.Time) error
	FindAll(f model.SponsorFilter) ([]model.Sponsor, int64, error)
	CountByStatus() (map[model.VerificationStatus]int64, error)
}

type SponsorRepo struct {
	DB *sql.DB
}

func NewSponsorRepo(db *sql.DB) *SponsorRepo {
	return &SponsorRepo{DB: db}
}

const sponsorColumns = `s.id, s.user_id, s.organization_name, s.sponsor_type, s.registration_number,
	s.description, s.website, s.address, s.verification_status, s.verification_notes, s.verified_at,
	s.created_at, s.updated_at`

func (r *SponsorRepo) Create(s *model.Sponsor) error {
	query := `
		INSERT INTO sponsors (user_id, organization_name, sponsor_type, registration_number, description,
			website, address, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	now := time.Now()
	err := r.DB.QueryRow(query,
		s.UserID, s.OrganizationName, s.SponsorType, s.RegistrationNumber, s.Description,
		s.Website, s.Address, model.SponsorPending, now, now,
	).Scan(&s.ID)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err == nil {
		s.VerificationStatus = model.SponsorPending
	}
	return err
}

func (r *SponsorRepo) FindByUserID(userID uuid.UUID) (*model.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors s WHERE s.user_id = $1`
	return r.scanSponsor(r.DB.QueryRow(query, userID))
}

func (r *SponsorRepo) FindByID(id uuid.UUID) (*model.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + `, u.email, u.full_name
		FROM sponsors s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`

	var s model.Sponsor
	var regNumber, description, website, address, notes sql.NullString
	var verifiedAt sql.NullTime

	err := r.DB.QueryRow(query, id).Scan(
		&s.ID, &s.UserID, &s.OrganizationName, &s.SponsorType, &regNumber,
		&description, &website, &address, &s.VerificationStatus, &notes, &verifiedAt,
		&s.CreatedAt, &s.UpdatedAt, &s.User.Email, &s.User.FullName,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	r.fillNullable(&s, regNumber, description, website, address, notes, verifiedAt)
	s.User.ID = s.UserID
	return &s, nil
}

func (r *SponsorRepo) scanSponsor(row *sql.Row) (*model.Sponsor, error) {
	var s model.Sponsor
	var regNumber, description, website, address, notes sql.NullString
	var verifiedAt sql.NullTime

	err := row.Scan(
		&s.ID, &s.UserID, &s.OrganizationName, &s.SponsorType, &regNumber,
		&description, &website, &address, &s.VerificationStatus, &notes, &verifiedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	r.fillNullable(&s, regNumber, description, website, address, notes, verifiedAt)
	return &s, nil
}

func (r *SponsorRepo) fillNullable(s *model.Sponsor, regNumber, description, website, address, notes sql.NullString, verifiedAt sql.NullTime) {
	s.RegistrationNumber = regNumber.String
	s.Description = description.String
	s.Website = website.String
	s.Address = address.String
	s.VerificationNotes = notes.String
	if verifiedAt.Valid {
		t := verifiedAt.Time
		s.VerifiedAt = &t
	}
}

func (r *SponsorRepo) Update(s *model.Sponsor) error {
	query := `
		UPDATE sponsors
		SET organization_name = $1, sponsor_type = $2, registration_number = $3, description = $4,
			website = $5, address = $6, updated_at = $7
		WHERE id = $8`

	result, err := r.DB.Exec(query,
		s.OrganizationName, s.SponsorType, s.RegistrationNumber, s.Description,
		s.Website, s.Address, time.Now(), s.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SponsorRepo) UpdateStatus(id uuid.UUID, status model.VerificationStatus, notes string, verifiedAt *time.Time) error {
	query := `
		UPDATE sponsors
		SET verification_status = $1, verification_notes = $2, verified_at = $3, updated_at = $4
		WHERE id = $5`

	result, err := r.DB.Exec(query, status, notes, verifiedAt, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SponsorRepo) FindAll(f model.SponsorFilter) ([]model.Sponsor, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.Status != "" {
		where += fmt.Sprintf(" AND s.verification_status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	if f.Search != "" {
		where += fmt.Sprintf(" AND (s.organization_name ILIKE $%d OR u.email ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}

	base := ` FROM sponsors s JOIN users u ON u.id = s.user_id` + where

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + sponsorColumns + `, u.email, u.full_name` + base +
		fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sponsors []model.Sponsor
	for rows.Next() {
		var s model.Sponsor
		var regNumber, description, website, address, notes sql.NullString
		var verifiedAt sql.NullTime

		if err := rows.Scan(
			&s.ID, &s.UserID, &s.OrganizationName, &s.SponsorType, &regNumber,
			&description, &website, &address, &s.VerificationStatus, &notes, &verifiedAt,
			&s.CreatedAt, &s.UpdatedAt, &s.User.Email, &s.User.FullName,
		); err != nil {
			return nil, 0, err
		}
		r.fillNullable(&s, regNumber, description, website, address, notes, verifiedAt)
		s.User.ID = s.UserID
		sponsors = append(sponsors, s)
	}

	return sponsors, total, rows.Err()
}

func (r *SponsorRepo) CountByStatus() (map[model.VerificationStatus]int64, error) {
	rows, err := r.DB.Query(`SELECT verification_status, COUNT(*) FROM sponsors GROUP BY verification_status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.VerificationStatus]int64)
	for rows.Next() {
		var status model.VerificationStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
