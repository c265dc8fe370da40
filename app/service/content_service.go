package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/helper"
	"github.com/baffa-m/gamjifoundation/storage"
)

const (
	homeCacheKey = "home:payload"
	homeCacheTTL = 5 * time.Minute
)

type ContentService struct {
	content    repo.ContentRepository
	awards     repo.AwardRepository
	applicants repo.ApplicantRepository
	cache      *redis.Client
	files      FileStore
}

func NewContentService(
	content repo.ContentRepository,
	awards repo.AwardRepository,
	applicants repo.ApplicantRepository,
	cache *redis.Client,
	files FileStore,
) *ContentService {
	return &ContentService{content: content, awards: awards, applicants: applicants, cache: cache, files: files}
}

// GET /api/v1/home
func (s *ContentService) Home(c *fiber.Ctx) error {
	if s.cache != nil {
		if raw, err := s.cache.Get(c.Context(), homeCacheKey).Bytes(); err == nil {
			var payload model.HomePayload
			if json.Unmarshal(raw, &payload) == nil {
				return c.JSON(model.SuccessResponse[model.HomePayload]{
					Success: true,
					Data:    payload,
				})
			}
		}
	}

	now := time.Now()

	slides, err := s.content.FindSlides(c.Context(), true)
	if err != nil {
		return serverError(c, "Failed to load home page")
	}

	featured, _, err := s.awards.FindAll(model.AwardFilter{OpenOnly: true, Page: 1, Limit: 6})
	if err != nil {
		return serverError(c, "Failed to load home page")
	}

	news, _, err := s.content.FindAllNews(c.Context(), true, 1, 3)
	if err != nil {
		return serverError(c, "Failed to load home page")
	}

	awardCounts, err := s.awards.CountByStatus()
	if err != nil {
		return serverError(c, "Failed to load home page")
	}
	open, err := s.awards.CountOpen(now)
	if err != nil {
		return serverError(c, "Failed to load home page")
	}
	applicants, err := s.applicants.CountAll()
	if err != nil {
		return serverError(c, "Failed to load home page")
	}

	payload := model.HomePayload{
		Slides:         slides,
		FeaturedAwards: annotate(featured, now),
		LatestNews:     news,
		Stats: model.HomeStats{
			ActiveAwards:    awardCounts[model.AwardActive],
			OpenAwards:      open,
			TotalApplicants: applicants,
		},
	}

	if s.cache != nil {
		if raw, err := json.Marshal(payload); err == nil {
			s.cache.Set(c.Context(), homeCacheKey, raw, homeCacheTTL)
		}
	}

	return c.JSON(model.SuccessResponse[model.HomePayload]{
		Success: true,
		Data:    payload,
	})
}

func (s *ContentService) invalidateHome(c *fiber.Ctx) {
	if s.cache != nil {
		s.cache.Del(c.Context(), homeCacheKey)
	}
}

// GET /api/v1/news
func (s *ContentService) PublicNewsList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	news, total, err := s.content.FindAllNews(c.Context(), true, page, limit)
	if err != nil {
		return serverError(c, "Failed to load news")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.News]]{
		Success: true,
		Data: model.PaginationData[model.News]{
			Items: news,
			Meta:  buildMeta(page, limit, total, "publishedAt", "desc", ""),
		},
	})
}

// GET /api/v1/news/:slug
func (s *ContentService) PublicNewsGet(c *fiber.Ctx) error {
	item, err := s.content.FindNewsBySlug(c.Context(), c.Params("slug"), true)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Article not found")
		}
		return serverError(c, "Failed to load article")
	}

	return c.JSON(model.SuccessResponse[*model.News]{
		Success: true,
		Data:    item,
	})
}

// GET /api/v1/hero-slides
func (s *ContentService) PublicSlides(c *fiber.Ctx) error {
	slides, err := s.content.FindSlides(c.Context(), true)
	if err != nil {
		return serverError(c, "Failed to load slides")
	}

	return c.JSON(model.SuccessResponse[[]model.HeroSlide]{
		Success: true,
		Data:    slides,
	})
}

// GET /api/v1/admin/news
func (s *ContentService) AdminNewsList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	news, total, err := s.content.FindAllNews(c.Context(), false, page, limit)
	if err != nil {
		return serverError(c, "Failed to load news")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.News]]{
		Success: true,
		Data: model.PaginationData[model.News]{
			Items: news,
			Meta:  buildMeta(page, limit, total, "createdAt", "desc", ""),
		},
	})
}

// POST /api/v1/admin/news
func (s *ContentService) CreateNews(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	var req model.CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	item := model.News{
		AuthorID:       userID.String(),
		Title:          req.Title,
		Slug:           helper.Slugify(req.Slug),
		Description:    req.Description,
		Content:        req.Content,
		Category:       req.Category,
		RelatedAwardID: req.RelatedAwardID,
		IsPublished:    req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		item.PublishedAt = &now
	}

	if err := s.content.CreateNews(c.Context(), &item); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "An article with this slug already exists",
			})
		}
		return serverError(c, "Failed to create article")
	}

	s.invalidateHome(c)
	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.News]{
		Success: true,
		Message: "Article created",
		Data:    item,
	})
}

// PUT /api/v1/admin/news/:id
func (s *ContentService) UpdateNews(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid article id")
	}

	var req model.UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Slug != nil {
		set["slug"] = helper.Slugify(*req.Slug)
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.RelatedAwardID != nil {
		set["relatedAwardId"] = *req.RelatedAwardID
	}
	if req.IsPublished != nil {
		set["isPublished"] = *req.IsPublished
		if *req.IsPublished {
			set["publishedAt"] = time.Now()
		}
	}
	if len(set) == 0 {
		return badRequest(c, "Nothing to update")
	}

	if err := s.content.UpdateNews(c.Context(), id, set); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return notFound(c, "Article not found")
		case errors.Is(err, repo.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "An article with this slug already exists",
			})
		}
		return serverError(c, "Failed to update article")
	}

	s.invalidateHome(c)
	item, err := s.content.FindNewsByID(c.Context(), id)
	if err != nil {
		return serverError(c, "Failed to load article")
	}

	return c.JSON(model.SuccessResponse[*model.News]{
		Success: true,
		Message: "Article updated",
		Data:    item,
	})
}

// DELETE /api/v1/admin/news/:id
func (s *ContentService) DeleteNews(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid article id")
	}

	item, err := s.content.FindNewsByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Article not found")
		}
		return serverError(c, "Failed to load article")
	}

	if err := s.content.DeleteNews(c.Context(), id); err != nil {
		return serverError(c, "Failed to delete article")
	}
	if item.FeaturedImage != "" {
		s.files.Delete(c.Context(), item.FeaturedImage)
	}

	s.invalidateHome(c)
	return c.JSON(model.SuccessMessageResponse{
		Success: true,
		Message: "Article deleted",
	})
}

// POST /api/v1/admin/news/:id/image
func (s *ContentService) UploadNewsImage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid article id")
	}

	item, err := s.content.FindNewsByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Article not found")
		}
		return serverError(c, "Failed to load article")
	}

	key, errResp := s.uploadFormFile(c, storage.DirNews)
	if errResp != nil {
		return errResp(c)
	}

	if err := s.content.UpdateNews(c.Context(), id, bson.M{"featuredImage": key}); err != nil {
		s.files.Delete(c.Context(), key)
		return serverError(c, "Failed to update article")
	}
	if item.FeaturedImage != "" && item.FeaturedImage != key {
		s.files.Delete(c.Context(), item.FeaturedImage)
	}

	s.invalidateHome(c)
	item.FeaturedImage = key
	return c.JSON(model.SuccessResponse[*model.News]{
		Success: true,
		Message: "Image updated",
		Data:    item,
	})
}

// GET /api/v1/admin/hero-slides
func (s *ContentService) AdminSlides(c *fiber.Ctx) error {
	slides, err := s.content.FindSlides(c.Context(), false)
	if err != nil {
		return serverError(c, "Failed to load slides")
	}

	return c.JSON(model.SuccessResponse[[]model.HeroSlide]{
		Success: true,
		Data:    slides,
	})
}

// POST /api/v1/admin/hero-slides
func (s *ContentService) CreateSlide(c *fiber.Ctx) error {
	var req model.CreateHeroSlideRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	slide := model.HeroSlide{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		CTAText:  req.CTAText,
		CTALink:  req.CTALink,
		Order:    req.Order,
		IsActive: req.IsActive,
	}

	if err := s.content.CreateSlide(c.Context(), &slide); err != nil {
		return serverError(c, "Failed to create slide")
	}

	s.invalidateHome(c)
	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.HeroSlide]{
		Success: true,
		Message: "Slide created",
		Data:    slide,
	})
}

// PUT /api/v1/admin/hero-slides/:id
func (s *ContentService) UpdateSlide(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid slide id")
	}

	var req model.UpdateHeroSlideRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	set := bson.M{}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Subtitle != nil {
		set["subtitle"] = *req.Subtitle
	}
	if req.CTAText != nil {
		set["ctaText"] = *req.CTAText
	}
	if req.CTALink != nil {
		set["ctaLink"] = *req.CTALink
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		return badRequest(c, "Nothing to update")
	}

	if err := s.content.UpdateSlide(c.Context(), id, set); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Slide not found")
		}
		return serverError(c, "Failed to update slide")
	}

	s.invalidateHome(c)
	slide, err := s.content.FindSlideByID(c.Context(), id)
	if err != nil {
		return serverError(c, "Failed to load slide")
	}

	return c.JSON(model.SuccessResponse[*model.HeroSlide]{
		Success: true,
		Message: "Slide updated",
		Data:    slide,
	})
}

// DELETE /api/v1/admin/hero-slides/:id
func (s *ContentService) DeleteSlide(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid slide id")
	}

	slide, err := s.content.FindSlideByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Slide not found")
		}
		return serverError(c, "Failed to load slide")
	}

	if err := s.content.DeleteSlide(c.Context(), id); err != nil {
		return serverError(c, "Failed to delete slide")
	}
	if slide.Image != "" {
		s.files.Delete(c.Context(), slide.Image)
	}

	s.invalidateHome(c)
	return c.JSON(model.SuccessMessageResponse{
		Success: true,
		Message: "Slide deleted",
	})
}

// POST /api/v1/admin/hero-slides/:id/image
func (s *ContentService) UploadSlideImage(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid slide id")
	}

	slide, err := s.content.FindSlideByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Slide not found")
		}
		return serverError(c, "Failed to load slide")
	}

	key, errResp := s.uploadFormFile(c, storage.DirHeroSlides)
	if errResp != nil {
		return errResp(c)
	}

	if err := s.content.UpdateSlide(c.Context(), id, bson.M{"image": key}); err != nil {
		s.files.Delete(c.Context(), key)
		return serverError(c, "Failed to update slide")
	}
	if slide.Image != "" && slide.Image != key {
		s.files.Delete(c.Context(), slide.Image)
	}

	s.invalidateHome(c)
	slide.Image = key
	return c.JSON(model.SuccessResponse[*model.HeroSlide]{
		Success: true,
		Message: "Image updated",
		Data:    slide,
	})
}

func (s *ContentService) uploadFormFile(c *fiber.Ctx, dir string) (string, errFunc) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", func(c *fiber.Ctx) error { return badRequest(c, "file is required") }
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", func(c *fiber.Ctx) error { return serverError(c, "Failed to read file") }
	}
	defer file.Close()

	key, err := s.files.Upload(c.Context(), dir, fileHeader.Filename, file)
	if err != nil {
		return "", func(c *fiber.Ctx) error { return serverError(c, "Failed to store file") }
	}
	return key, nil
}
