package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HeroSlide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Subtitle  string             `bson:"subtitle" json:"subtitle"`
	Image     string             `bson:"image" json:"image"`
	CTAText   string             `bson:"ctaText,omitempty" json:"cta_text,omitempty"`
	CTALink   string             `bson:"ctaLink,omitempty" json:"cta_link,omitempty"`
	Order     int                `bson:"order" json:"order"`
	IsActive  bool               `bson:"isActive" json:"is_active"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

type CreateHeroSlideRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Subtitle string `json:"subtitle" validate:"required"`
	CTAText  string `json:"cta_text" validate:"omitempty,max=50"`
	CTALink  string `json:"cta_link" validate:"omitempty,max=255"`
	Order    int    `json:"order" validate:"gte=0"`
	IsActive bool   `json:"is_active"`
}

type UpdateHeroSlideRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Subtitle *string `json:"subtitle,omitempty"`
	CTAText  *string `json:"cta_text,omitempty" validate:"omitempty,max=50"`
	CTALink  *string `json:"cta_link,omitempty" validate:"omitempty,max=255"`
	Order    *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// HomePayload is the aggregate the public landing endpoint serves; it is
// cached in redis for a short TTL.
type HomePayload struct {
	Slides         []HeroSlide     `json:"slides"`
	FeaturedAwards []AwardResponse `json:"featured_awards"`
	LatestNews     []News          `json:"latest_news"`
	Stats          HomeStats       `json:"stats"`
}

type HomeStats struct {
	ActiveAwards    int64 `json:"active_awards"`
	OpenAwards      int64 `json:"open_awards"`
	TotalApplicants int64 `json:"total_applicants"`
}

type AdminDashboard struct {
	TotalAwards          int64                       `json:"total_awards"`
	AwardsByStatus       map[AwardStatus]int64       `json:"awards_by_status"`
	TotalApplications    int64                       `json:"total_applications"`
	ApplicationsByStatus map[ApplicationStatus]int64 `json:"applications_by_status"`
	TotalApplicants      int64                       `json:"total_applicants"`
	TotalSponsors        int64                       `json:"total_sponsors"`
	SponsorsByStatus     map[VerificationStatus]int64 `json:"sponsors_by_status"`
	MonthlyApplications  []int64                     `json:"monthly_applications"`
}
