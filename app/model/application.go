package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationAccepted    ApplicationStatus = "accepted"
	ApplicationRejected    ApplicationStatus = "rejected"
)

type ReviewAction string

const (
	ActionReview  ReviewAction = "review"
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// NextStatus maps an admin action onto the status it writes. The machine is
// deliberately permissive: an action is applied regardless of the current
// status, including re-deciding an accepted or rejected application. Callers
// that want a guard can compare against the current status before writing.
func (a ReviewAction) NextStatus() (ApplicationStatus, bool) {
	switch a {
	case ActionReview:
		return ApplicationUnderReview, true
	case ActionApprove:
		return ApplicationAccepted, true
	case ActionReject:
		return ApplicationRejected, true
	}
	return "", false
}

type Application struct {
	ID                uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicantID       uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_applications_applicant_award;not null" json:"applicant_id"`
	AwardID           uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_applications_applicant_award;not null" json:"award_id"`
	ApplicationNumber string            `gorm:"size:20;uniqueIndex:idx_applications_number;not null" json:"application_number"`
	ApplicationDate   time.Time         `gorm:"not null" json:"application_date"`
	Status            ApplicationStatus `gorm:"column:application_status;size:20;default:'pending'" json:"application_status"`
	AdminNotes        string            `gorm:"type:text" json:"admin_notes"`
	JambScore         *int              `json:"jamb_score"`
	CreatedAt         time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Applicant *Applicant `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Award     *Award     `gorm:"foreignKey:AwardID" json:"award,omitempty"`
}

type ReviewRequest struct {
	AdminNotes string `json:"admin_notes"`
}

type RejectApplicationRequest struct {
	AdminNotes string `json:"admin_notes" validate:"required"`
}

type ApplicationFilter struct {
	Status  string
	Search  string
	AwardID *uuid.UUID
	Page    int
	Limit   int
}
