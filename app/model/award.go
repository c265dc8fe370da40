package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type AwardStatus string

const (
	AwardDraft     AwardStatus = "draft"
	AwardActive    AwardStatus = "active"
	AwardClosed    AwardStatus = "closed"
	AwardSuspended AwardStatus = "suspended"
)

const (
	CategoryJamb    = "jamb"
	CategoryWaec    = "waec"
	CategoryGeneral = "general"
	CategoryStem    = "stem"
	CategoryArts    = "arts"
	CategorySports  = "sports"
)

type Award struct {
	ID                   uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SponsorID            *uuid.UUID  `gorm:"type:uuid" json:"sponsor_id"`
	Title                string      `gorm:"size:255;not null" json:"title"`
	Slug                 string      `gorm:"size:255;unique;not null" json:"slug"`
	Description          string      `gorm:"type:text" json:"description"`
	Category             string      `gorm:"size:50;not null" json:"category"`
	Amount               float64     `gorm:"type:numeric(14,2)" json:"amount"`
	NumberOfAwards       int         `gorm:"default:1" json:"number_of_awards"`
	Status               AwardStatus `gorm:"size:20;default:'draft'" json:"status"`
	EligibilityCriteria  string      `gorm:"type:text" json:"eligibility_criteria"`
	RequiredDocuments    string      `gorm:"type:text" json:"required_documents"`
	AwardImage           string      `gorm:"size:500" json:"award_image"`
	ApplicationStartDate time.Time   `gorm:"not null" json:"application_start_date"`
	ApplicationEndDate   time.Time   `gorm:"not null" json:"application_end_date"`
	AnnouncementDate     *time.Time  `json:"announcement_date"`
	CreatedAt            time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Sponsor *Sponsor `gorm:"foreignKey:SponsorID" json:"sponsor,omitempty"`

	// Populated by list queries, not a column.
	ApplicationsCount int64 `gorm:"-" json:"applications_count"`
}

// IsOpenForApplications is the single "can I apply" predicate. Every
// applicant-facing open/closed decision must go through it; both window
// boundaries are inclusive.
func (a *Award) IsOpenForApplications(now time.Time) bool {
	return a.Status == AwardActive &&
		!now.Before(a.ApplicationStartDate) &&
		!now.After(a.ApplicationEndDate)
}

// ValidateWindow checks the date ordering invariants: the window must be
// non-empty and the announcement, when set, must come after it closes.
func (a *Award) ValidateWindow() error {
	if !a.ApplicationEndDate.After(a.ApplicationStartDate) {
		return errors.New("application_end_date must be after application_start_date")
	}
	if a.AnnouncementDate != nil && !a.AnnouncementDate.After(a.ApplicationEndDate) {
		return errors.New("announcement_date must be after application_end_date")
	}
	return nil
}

type CreateAwardRequest struct {
	Title                string  `json:"title" validate:"required,max=255"`
	Description          string  `json:"description" validate:"required"`
	Amount               float64 `json:"amount" validate:"required,gte=0"`
	SponsorID            string  `json:"sponsor_id" validate:"omitempty,uuid"`
	Category             string  `json:"category" validate:"required,oneof=jamb waec general stem arts sports"`
	ApplicationStartDate string  `json:"application_start_date" validate:"required"`
	ApplicationEndDate   string  `json:"application_end_date" validate:"required"`
	AnnouncementDate     string  `json:"announcement_date"`
	NumberOfAwards       int     `json:"number_of_awards" validate:"required,min=1"`
	Status               string  `json:"status" validate:"omitempty,oneof=draft active closed suspended"`
	EligibilityCriteria  string  `json:"eligibility_criteria"`
	RequiredDocuments    string  `json:"required_documents"`
}

type AwardResponse struct {
	Award
	IsOpen bool `json:"is_open"`
}

type AwardFilter struct {
	Status    string
	Category  string
	Search    string
	SponsorID *uuid.UUID
	OpenOnly  bool
	Page      int
	Limit     int
	SortBy    string
	Order     string
}
