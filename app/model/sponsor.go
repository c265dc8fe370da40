package model

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	SponsorPending   VerificationStatus = "pending"
	SponsorVerified  VerificationStatus = "verified"
	SponsorRejected  VerificationStatus = "rejected"
	SponsorSuspended VerificationStatus = "suspended"
)

type SponsorAction string

const (
	SponsorApprove SponsorAction = "approve"
	SponsorReject  SponsorAction = "reject"
	SponsorSuspend SponsorAction = "suspend"
)

// Transition enforces the sponsor verification machine:
// pending -> verified|rejected, verified -> suspended. rejected and
// suspended are terminal; there is no reactivation path.
func (a SponsorAction) Transition(from VerificationStatus) (VerificationStatus, error) {
	switch a {
	case SponsorApprove:
		if from == SponsorPending {
			return SponsorVerified, nil
		}
	case SponsorReject:
		if from == SponsorPending {
			return SponsorRejected, nil
		}
	case SponsorSuspend:
		if from == SponsorVerified {
			return SponsorSuspended, nil
		}
	}
	return "", ErrInvalidTransition
}

type Sponsor struct {
	ID                 uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID          `gorm:"type:uuid;uniqueIndex:idx_sponsors_user;not null" json:"user_id"`
	OrganizationName   string             `gorm:"size:255;not null" json:"organization_name"`
	SponsorType        string             `gorm:"size:50" json:"sponsor_type"`
	RegistrationNumber string             `gorm:"size:100" json:"registration_number"`
	Description        string             `gorm:"type:text" json:"description"`
	Website            string             `gorm:"size:255" json:"website"`
	Address            string             `gorm:"type:text" json:"address"`
	VerificationStatus VerificationStatus `gorm:"size:20;default:'pending'" json:"verification_status"`
	VerificationNotes  string             `gorm:"type:text" json:"verification_notes"`
	VerifiedAt         *time.Time         `json:"verified_at"`
	CreatedAt          time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	User   User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Awards []Award `gorm:"foreignKey:SponsorID" json:"awards,omitempty"`
}

type RegisterSponsorRequest struct {
	OrganizationName   string `json:"organization_name" validate:"required,max=255"`
	SponsorType        string `json:"sponsor_type" validate:"required,oneof=individual corporate ngo government"`
	RegistrationNumber string `json:"registration_number"`
	Description        string `json:"description"`
	Website            string `json:"website" validate:"omitempty,url"`
	Address            string `json:"address"`
}

type SponsorNotesRequest struct {
	Notes string `json:"notes"`
}

type SponsorRejectRequest struct {
	Notes string `json:"notes" validate:"required"`
}

type SponsorFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type SponsorDashboard struct {
	TotalAwards         int64              `json:"total_awards"`
	ActiveAwards        int64              `json:"active_awards"`
	TotalApplications   int64              `json:"total_applications"`
	PendingApplications int64              `json:"pending_applications"`
	VerificationStatus  VerificationStatus `json:"verification_status"`
	RecentAwards        []Award            `json:"recent_awards"`
}
