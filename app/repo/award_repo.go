package repo

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
)

type AwardRepository interface {
	Create(a *model.Award) error
	FindByID(id uuid.UUID) (*model.Award, error)
	FindBySlug(slug string) (*model.Award, error)
	Update(a *model.Award) error
	Delete(id uuid.UUID) error
	FindAll(f model.AwardFilter) ([]model.Award, int64, error)
	CountByStatus() (map[model.AwardStatus]int64, error)
	CountOpen(now time.Time) (int64, error)
}

type AwardRepo struct {
	DB *sql.DB
}

func NewAwardRepo(db *sql.DB) *AwardRepo {
	return &AwardRepo{DB: db}
}

var awardSortWhitelist = map[string]string{
	"created_at": "a.created_at",
	"amount":     "a.amount",
	"end_date":   "a.application_end_date",
	"title":      "a.title",
}

const awardColumns = `a.id, a.sponsor_id, a.title, a.slug, a.description, a.category, a.amount,
	a.number_of_awards, a.status, a.eligibility_criteria, a.required_documents, a.award_image,
	a.application_start_date, a.application_end_date, a.announcement_date, a.created_at, a.updated_at`

func (r *AwardRepo) Create(a *model.Award) error {
	query := `
		INSERT INTO awards (sponsor_id, title, slug, description, category, amount, number_of_awards,
			status, eligibility_criteria, required_documents, award_image,
			application_start_date, application_end_date, announcement_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	now := time.Now()
	err := r.DB.QueryRow(query,
		a.SponsorID, a.Title, a.Slug, a.Description, a.Category, a.Amount, a.NumberOfAwards,
		a.Status, a.EligibilityCriteria, a.RequiredDocuments, a.AwardImage,
		a.ApplicationStartDate, a.ApplicationEndDate, a.AnnouncementDate, now, now,
	).Scan(&a.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *AwardRepo) FindByID(id uuid.UUID) (*model.Award, error) {
	query := `SELECT ` + awardColumns + `, s.organization_name, s.verification_status,
		(SELECT COUNT(*) FROM applications ap WHERE ap.award_id = a.id) AS applications_count
		FROM awards a
		LEFT JOIN sponsors s ON s.id = a.sponsor_id
		WHERE a.id = $1`
	return r.scanAwardRow(r.DB.QueryRow(query, id))
}

func (r *AwardRepo) FindBySlug(slug string) (*model.Award, error) {
	query := `SELECT ` + awardColumns + `, s.organization_name, s.verification_status,
		(SELECT COUNT(*) FROM applications ap WHERE ap.award_id = a.id) AS applications_count
		FROM awards a
		LEFT JOIN sponsors s ON s.id = a.sponsor_id
		WHERE a.slug = $1`
	return r.scanAwardRow(r.DB.QueryRow(query, slug))
}

func (r *AwardRepo) scanAwardRow(row *sql.Row) (*model.Award, error) {
	var a model.Award
	var description, criteria, docs, image sql.NullString
	var announcement sql.NullTime
	var orgName, orgStatus sql.NullString

	err := row.Scan(
		&a.ID, &a.SponsorID, &a.Title, &a.Slug, &description, &a.Category, &a.Amount,
		&a.NumberOfAwards, &a.Status, &criteria, &docs, &image,
		&a.ApplicationStartDate, &a.ApplicationEndDate, &announcement, &a.CreatedAt, &a.UpdatedAt,
		&orgName, &orgStatus, &a.ApplicationsCount,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}

	a.Description = description.String
	a.EligibilityCriteria = criteria.String
	a.RequiredDocuments = docs.String
	a.AwardImage = image.String
	if announcement.Valid {
		t := announcement.Time
		a.AnnouncementDate = &t
	}
	if a.SponsorID != nil && orgName.Valid {
		a.Sponsor = &model.Sponsor{
			ID:                 *a.SponsorID,
			OrganizationName:   orgName.String,
			VerificationStatus: model.VerificationStatus(orgStatus.String),
		}
	}
	return &a, nil
}

func (r *AwardRepo) Update(a *model.Award) error {
	query := `
		UPDATE awards
		SET sponsor_id = $1, title = $2, slug = $3, description = $4, category = $5, amount = $6,
			number_of_awards = $7, status = $8, eligibility_criteria = $9, required_documents = $10,
			award_image = $11, application_start_date = $12, application_end_date = $13,
			announcement_date = $14, updated_at = $15
		WHERE id = $16`

	result, err := r.DB.Exec(query,
		a.SponsorID, a.Title, a.Slug, a.Description, a.Category, a.Amount,
		a.NumberOfAwards, a.Status, a.EligibilityCriteria, a.RequiredDocuments,
		a.AwardImage, a.ApplicationStartDate, a.ApplicationEndDate,
		a.AnnouncementDate, time.Now(), a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete blocks when applications reference the award; the check and the
// delete share one transaction.
func (r *AwardRepo) Delete(id uuid.UUID) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int64
	if err := tx.QueryRow(`SELECT COUNT(*) FROM applications WHERE award_id = $1`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	result, err := tx.Exec(`DELETE FROM awards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *AwardRepo) FindAll(f model.AwardFilter) ([]model.Award, int64, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if f.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	if f.Category != "" {
		where += fmt.Sprintf(" AND a.category = $%d", argIndex)
		args = append(args, f.Category)
		argIndex++
	}
	if f.Search != "" {
		where += fmt.Sprintf(" AND a.title ILIKE $%d", argIndex)
		args = append(args, "%"+f.Search+"%")
		argIndex++
	}
	if f.SponsorID != nil {
		where += fmt.Sprintf(" AND a.sponsor_id = $%d", argIndex)
		args = append(args, *f.SponsorID)
		argIndex++
	}
	if f.OpenOnly {
		// Same three conditions as Award.IsOpenForApplications; kept in
		// SQL so the listing and the predicate cannot diverge in meaning.
		where += fmt.Sprintf(" AND a.status = 'active' AND a.application_start_date <= $%d AND a.application_end_date >= $%d", argIndex, argIndex)
		args = append(args, time.Now())
		argIndex++
	}

	base := ` FROM awards a LEFT JOIN sponsors s ON s.id = a.sponsor_id` + where

	var total int64
	if err := r.DB.QueryRow(`SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := f.Order
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	orderBy := " ORDER BY a.created_at DESC"
	if col, ok := awardSortWhitelist[f.SortBy]; ok {
		orderBy = fmt.Sprintf(" ORDER BY %s %s", col, order)
	}

	query := `SELECT ` + awardColumns + `, s.organization_name, s.verification_status,
		(SELECT COUNT(*) FROM applications ap WHERE ap.award_id = a.id) AS applications_count` +
		base + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var awards []model.Award
	for rows.Next() {
		var a model.Award
		var description, criteria, docs, image sql.NullString
		var announcement sql.NullTime
		var orgName, orgStatus sql.NullString

		if err := rows.Scan(
			&a.ID, &a.SponsorID, &a.Title, &a.Slug, &description, &a.Category, &a.Amount,
			&a.NumberOfAwards, &a.Status, &criteria, &docs, &image,
			&a.ApplicationStartDate, &a.ApplicationEndDate, &announcement, &a.CreatedAt, &a.UpdatedAt,
			&orgName, &orgStatus, &a.ApplicationsCount,
		); err != nil {
			return nil, 0, err
		}

		a.Description = description.String
		a.EligibilityCriteria = criteria.String
		a.RequiredDocuments = docs.String
		a.AwardImage = image.String
		if announcement.Valid {
			t := announcement.Time
			a.AnnouncementDate = &t
		}
		if a.SponsorID != nil && orgName.Valid {
			a.Sponsor = &model.Sponsor{
				ID:                 *a.SponsorID,
				OrganizationName:   orgName.String,
				VerificationStatus: model.VerificationStatus(orgStatus.String),
			}
		}
		awards = append(awards, a)
	}

	return awards, total, rows.Err()
}

func (r *AwardRepo) CountByStatus() (map[model.AwardStatus]int64, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM awards GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.AwardStatus]int64)
	for rows.Next() {
		var status model.AwardStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *AwardRepo) CountOpen(now time.Time) (int64, error) {
	var total int64
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM awards WHERE status = 'active' AND application_start_date <= $1 AND application_end_date >= $1`,
		now,
	).Scan(&total)
	return total, err
}
