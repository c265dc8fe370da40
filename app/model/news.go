package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// News lives in MongoDB; Postgres holds no reference row because nothing in
// the workflow joins against it.
type News struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID       string             `bson:"authorId" json:"author_id"`
	Title          string             `bson:"title" json:"title"`
	Slug           string             `bson:"slug" json:"slug"`
	Description    string             `bson:"description" json:"description"`
	Content        string             `bson:"content" json:"content"`
	FeaturedImage  string             `bson:"featuredImage,omitempty" json:"featured_image,omitempty"`
	Category       string             `bson:"category" json:"category"`
	RelatedAwardID string             `bson:"relatedAwardId,omitempty" json:"related_award_id,omitempty"`
	IsPublished    bool               `bson:"isPublished" json:"is_published"`
	PublishedAt    *time.Time         `bson:"publishedAt,omitempty" json:"published_at,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}

type CreateNewsRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	Slug           string `json:"slug" validate:"required,max=255"`
	Description    string `json:"description"`
	Content        string `json:"content" validate:"required"`
	Category       string `json:"category" validate:"required,max=100"`
	RelatedAwardID string `json:"related_award_id" validate:"omitempty,uuid"`
	IsPublished    bool   `json:"is_published"`
}

type UpdateNewsRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Slug           *string `json:"slug,omitempty" validate:"omitempty,max=255"`
	Description    *string `json:"description,omitempty"`
	Content        *string `json:"content,omitempty"`
	Category       *string `json:"category,omitempty" validate:"omitempty,max=100"`
	RelatedAwardID *string `json:"related_award_id,omitempty" validate:"omitempty,uuid"`
	IsPublished    *bool   `json:"is_published,omitempty"`
}
