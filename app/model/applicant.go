package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentJamb DocumentType = "jamb"
	DocumentWaec DocumentType = "waec"
)

type Applicant struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_applicants_user;not null" json:"user_id"`
	FullName       string     `gorm:"size:255;not null" json:"full_name"`
	Email          string     `gorm:"size:255;not null" json:"email"`
	PhoneNumber    string     `gorm:"size:20" json:"phone_number"`
	Address        string     `gorm:"type:text" json:"address"`
	DateOfBirth    time.Time  `json:"date_of_birth"`
	Gender         string     `gorm:"size:10" json:"gender"`
	StateOfOrigin  string     `gorm:"size:100" json:"state_of_origin"`
	LGA            string     `gorm:"column:lga;size:100" json:"lga"`
	SchoolName     string     `gorm:"size:255" json:"school_name"`
	JambRegNumber  string     `gorm:"size:50" json:"jamb_reg_number"`
	WaecRegNumber  string     `gorm:"size:50" json:"waec_reg_number"`
	ProfilePicture string     `gorm:"size:500" json:"profile_picture"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	User         User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Documents    []ApplicantDocument `gorm:"foreignKey:ApplicantID" json:"documents,omitempty"`
	Applications []Application       `gorm:"foreignKey:ApplicantID" json:"applications,omitempty"`
}

// ApplicantDocument holds one credential per (applicant, type); uploads
// replace the previous document of that type.
type ApplicantDocument struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicantID uuid.UUID    `gorm:"type:uuid;uniqueIndex:idx_applicant_documents_type;not null" json:"applicant_id"`
	Type        DocumentType `gorm:"size:10;uniqueIndex:idx_applicant_documents_type;not null" json:"type"`
	FilePath    string       `gorm:"size:500;not null" json:"file_path"`
	Score       *int         `json:"score"`
	CreatedAt   time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateProfileRequest struct {
	FullName      string `json:"full_name" validate:"required,max=255"`
	PhoneNumber   string `json:"phone_number" validate:"required,max=20"`
	Address       string `json:"address" validate:"required"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"`
	Gender        string `json:"gender" validate:"required,oneof=male female other"`
	StateOfOrigin string `json:"state_of_origin" validate:"required"`
	LGA           string `json:"lga" validate:"required"`
	SchoolName    string `json:"school_name" validate:"required"`
	JambRegNumber string `json:"jamb_reg_number"`
	WaecRegNumber string `json:"waec_reg_number"`
}

type ApplicantFilter struct {
	Search string
	State  string
	LGA    string
	Page   int
	Limit  int
}

type ApplicantDashboard struct {
	TotalApplications  int64         `json:"total_applications"`
	Pending            int64         `json:"pending"`
	Accepted           int64         `json:"accepted"`
	Rejected           int64         `json:"rejected"`
	AvailableAwards    int64         `json:"available_awards"`
	RecentApplications []Application `json:"recent_applications"`
}
