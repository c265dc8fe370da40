package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baffa-m/gamjifoundation/app/model"
)

type ContentRepository interface {
	CreateNews(ctx context.Context, n *model.News) error
	FindNewsByID(ctx context.Context, id primitive.ObjectID) (*model.News, error)
	FindNewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.News, error)
	FindAllNews(ctx context.Context, publishedOnly bool, page, limit int) ([]model.News, int64, error)
	UpdateNews(ctx context.Context, id primitive.ObjectID, set bson.M) error
	DeleteNews(ctx context.Context, id primitive.ObjectID) error

	CreateSlide(ctx context.Context, s *model.HeroSlide) error
	FindSlideByID(ctx context.Context, id primitive.ObjectID) (*model.HeroSlide, error)
	FindSlides(ctx context.Context, activeOnly bool) ([]model.HeroSlide, error)
	UpdateSlide(ctx context.Context, id primitive.ObjectID, set bson.M) error
	DeleteSlide(ctx context.Context, id primitive.ObjectID) error
}

type ContentRepo struct {
	mongoDB *mongo.Database
}

func NewContentRepo(mongoDB *mongo.Database) *ContentRepo {
	return &ContentRepo{mongoDB: mongoDB}
}

func (r *ContentRepo) news() *mongo.Collection {
	return r.mongoDB.Collection("news")
}

func (r *ContentRepo) slides() *mongo.Collection {
	return r.mongoDB.Collection("hero_slides")
}

func (r *ContentRepo) CreateNews(ctx context.Context, n *model.News) error {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now

	res, err := r.news().InsertOne(ctx, n)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ContentRepo) FindNewsByID(ctx context.Context, id primitive.ObjectID) (*model.News, error) {
	var n model.News
	err := r.news().FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *ContentRepo) FindNewsBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.News, error) {
	filter := bson.M{"slug": slug}
	if publishedOnly {
		filter["isPublished"] = true
	}

	var n model.News
	err := r.news().FindOne(ctx, filter).Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *ContentRepo) FindAllNews(ctx context.Context, publishedOnly bool, page, limit int) ([]model.News, int64, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["isPublished"] = true
	}

	total, err := r.news().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.news().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []model.News{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ContentRepo) UpdateNews(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := r.news().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepo) DeleteNews(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.news().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepo) CreateSlide(ctx context.Context, s *model.HeroSlide) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	res, err := r.slides().InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ContentRepo) FindSlideByID(ctx context.Context, id primitive.ObjectID) (*model.HeroSlide, error) {
	var s model.HeroSlide
	err := r.slides().FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ContentRepo) FindSlides(ctx context.Context, activeOnly bool) ([]model.HeroSlide, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.slides().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []model.HeroSlide{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContentRepo) UpdateSlide(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := r.slides().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContentRepo) DeleteSlide(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.slides().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
