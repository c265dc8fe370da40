package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/helper"
	"github.com/baffa-m/gamjifoundation/storage"
)

type AwardService struct {
	awards   repo.AwardRepository
	sponsors repo.SponsorRepository
	files    FileStore
}

func NewAwardService(awards repo.AwardRepository, sponsors repo.SponsorRepository, files FileStore) *AwardService {
	return &AwardService{awards: awards, sponsors: sponsors, files: files}
}

func annotate(awards []model.Award, now time.Time) []model.AwardResponse {
	out := make([]model.AwardResponse, 0, len(awards))
	for _, a := range awards {
		out = append(out, model.AwardResponse{Award: a, IsOpen: a.IsOpenForApplications(now)})
	}
	return out
}

// GET /api/v1/awards
// The public listing only ever shows active awards; ?open=true narrows it
// to those inside their application window.
func (s *AwardService) PublicList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	f := model.AwardFilter{
		Status:   string(model.AwardActive),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		OpenOnly: c.QueryBool("open", false),
		Page:     page,
		Limit:    limit,
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
	}

	awards, total, err := s.awards.FindAll(f)
	if err != nil {
		return serverError(c, "Failed to load awards")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.AwardResponse]]{
		Success: true,
		Data: model.PaginationData[model.AwardResponse]{
			Items: annotate(awards, time.Now()),
			Meta:  buildMeta(page, limit, total, f.SortBy, f.Order, f.Search),
		},
	})
}

// GET /api/v1/awards/:slug
// Accepts either the slug or the award id.
func (s *AwardService) PublicGet(c *fiber.Ctx) error {
	param := c.Params("slug")

	var award *model.Award
	var err error
	if id, parseErr := uuid.Parse(param); parseErr == nil {
		award, err = s.awards.FindByID(id)
	} else {
		award, err = s.awards.FindBySlug(param)
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	// Drafts are not public.
	if award.Status == model.AwardDraft {
		return notFound(c, "Award not found")
	}

	return c.JSON(model.SuccessResponse[model.AwardResponse]{
		Success: true,
		Data:    model.AwardResponse{Award: *award, IsOpen: award.IsOpenForApplications(time.Now())},
	})
}

// GET /api/v1/admin/awards
func (s *AwardService) AdminList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	f := model.AwardFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
	}

	awards, total, err := s.awards.FindAll(f)
	if err != nil {
		return serverError(c, "Failed to load awards")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.AwardResponse]]{
		Success: true,
		Data: model.PaginationData[model.AwardResponse]{
			Items: annotate(awards, time.Now()),
			Meta:  buildMeta(page, limit, total, f.SortBy, f.Order, f.Search),
		},
	})
}

// GET /api/v1/admin/awards/:id
func (s *AwardService) AdminGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}

	award, err := s.awards.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	return c.JSON(model.SuccessResponse[model.AwardResponse]{
		Success: true,
		Data:    model.AwardResponse{Award: *award, IsOpen: award.IsOpenForApplications(time.Now())},
	})
}

// POST /api/v1/admin/awards
func (s *AwardService) AdminCreate(c *fiber.Ctx) error {
	award, errResp := s.buildAward(c, nil)
	if errResp != nil {
		return errResp(c)
	}
	return s.create(c, award)
}

// PUT /api/v1/admin/awards/:id
func (s *AwardService) AdminUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}

	existing, err := s.awards.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	return s.update(c, existing, nil)
}

// DELETE /api/v1/admin/awards/:id
func (s *AwardService) AdminDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}
	return s.delete(c, id, nil)
}

// POST /api/v1/admin/awards/:id/image
func (s *AwardService) UploadImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}

	award, err := s.awards.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return serverError(c, "Failed to read file")
	}
	defer file.Close()

	key, err := s.files.Upload(c.Context(), storage.DirAwards, fileHeader.Filename, file)
	if err != nil {
		return serverError(c, "Failed to store file")
	}

	oldKey := award.AwardImage
	award.AwardImage = key
	if err := s.awards.Update(award); err != nil {
		s.files.Delete(c.Context(), key)
		return serverError(c, "Failed to update award")
	}
	if oldKey != "" && oldKey != key {
		s.files.Delete(c.Context(), oldKey)
	}

	return c.JSON(model.SuccessResponse[*model.Award]{
		Success: true,
		Message: "Image updated",
		Data:    award,
	})
}

// GET /api/v1/sponsor/awards
func (s *AwardService) SponsorList(c *fiber.Ctx) error {
	sponsor, errResp := s.currentSponsor(c)
	if errResp != nil {
		return errResp(c)
	}

	page, limit := pageParams(c)
	f := model.AwardFilter{
		Status:    c.Query("status"),
		SponsorID: &sponsor.ID,
		Page:      page,
		Limit:     limit,
	}

	awards, total, err := s.awards.FindAll(f)
	if err != nil {
		return serverError(c, "Failed to load awards")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.AwardResponse]]{
		Success: true,
		Data: model.PaginationData[model.AwardResponse]{
			Items: annotate(awards, time.Now()),
			Meta:  buildMeta(page, limit, total, "created_at", "desc", ""),
		},
	})
}

// POST /api/v1/sponsor/awards
// Sponsor-created awards always start as drafts; only an admin can
// activate them.
func (s *AwardService) SponsorCreate(c *fiber.Ctx) error {
	sponsor, errResp := s.currentSponsor(c)
	if errResp != nil {
		return errResp(c)
	}
	if sponsor.VerificationStatus != model.SponsorVerified {
		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Success: false,
			Message: "Sponsor account is not verified",
		})
	}

	award, errResp2 := s.buildAward(c, &sponsor.ID)
	if errResp2 != nil {
		return errResp2(c)
	}
	award.Status = model.AwardDraft
	return s.create(c, award)
}

// PUT /api/v1/sponsor/awards/:id
func (s *AwardService) SponsorUpdate(c *fiber.Ctx) error {
	sponsor, errResp := s.currentSponsor(c)
	if errResp != nil {
		return errResp(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}

	existing, err := s.awards.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	if existing.SponsorID == nil || *existing.SponsorID != sponsor.ID {
		return notFound(c, "Award not found")
	}
	if existing.Status != model.AwardDraft {
		return c.Status(fiber.StatusForbidden).JSON(model.ErrorResponse{
			Success: false,
			Message: "Only draft awards can be edited",
		})
	}

	return s.update(c, existing, &sponsor.ID)
}

// DELETE /api/v1/sponsor/awards/:id
func (s *AwardService) SponsorDelete(c *fiber.Ctx) error {
	sponsor, errResp := s.currentSponsor(c)
	if errResp != nil {
		return errResp(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}
	return s.delete(c, id, sponsor)
}

type errFunc func(*fiber.Ctx) error

func (s *AwardService) currentSponsor(c *fiber.Ctx) (*model.Sponsor, errFunc) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, invalidSession
	}
	sponsor, err := s.sponsors.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, func(c *fiber.Ctx) error {
				return notFound(c, "Sponsor profile not found")
			}
		}
		return nil, func(c *fiber.Ctx) error {
			return serverError(c, "Failed to load sponsor")
		}
	}
	return sponsor, nil
}

func (s *AwardService) buildAward(c *fiber.Ctx, sponsorID *uuid.UUID) (*model.Award, errFunc) {
	var req model.CreateAwardRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, func(c *fiber.Ctx) error { return badRequest(c, "Invalid input") }
	}
	if err := helper.ValidateStruct(req); err != nil {
		msg := helper.FormatValidationErrors(err)
		return nil, func(c *fiber.Ctx) error { return badRequest(c, msg) }
	}

	start, err := helper.ParseDate(req.ApplicationStartDate)
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return badRequest(c, "application_start_date must be a valid date (YYYY-MM-DD)")
		}
	}
	end, err := helper.ParseDate(req.ApplicationEndDate)
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return badRequest(c, "application_end_date must be a valid date (YYYY-MM-DD)")
		}
	}
	announcement, err := helper.ParseOptionalDate(req.AnnouncementDate)
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return badRequest(c, "announcement_date must be a valid date (YYYY-MM-DD)")
		}
	}

	if sponsorID == nil && req.SponsorID != "" {
		id, err := uuid.Parse(req.SponsorID)
		if err != nil {
			return nil, func(c *fiber.Ctx) error { return badRequest(c, "Invalid sponsor id") }
		}
		if _, err := s.sponsors.FindByID(id); err != nil {
			return nil, func(c *fiber.Ctx) error { return badRequest(c, "Sponsor not found") }
		}
		sponsorID = &id
	}

	status := model.AwardStatus(req.Status)
	if status == "" {
		status = model.AwardDraft
	}

	award := &model.Award{
		SponsorID:            sponsorID,
		Title:                req.Title,
		Slug:                 helper.Slugify(req.Title),
		Description:          req.Description,
		Category:             req.Category,
		Amount:               req.Amount,
		NumberOfAwards:       req.NumberOfAwards,
		Status:               status,
		EligibilityCriteria:  req.EligibilityCriteria,
		RequiredDocuments:    req.RequiredDocuments,
		ApplicationStartDate: start,
		ApplicationEndDate:   end,
		AnnouncementDate:     announcement,
	}

	if err := award.ValidateWindow(); err != nil {
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error { return badRequest(c, msg) }
	}
	return award, nil
}

func (s *AwardService) create(c *fiber.Ctx, award *model.Award) error {
	err := s.awards.Create(award)
	if errors.Is(err, repo.ErrDuplicate) {
		// Same title, new slug; the ULID tail keeps it unique.
		award.Slug = award.Slug + "-" + strings.ToLower(ulid.Make().String()[20:])
		err = s.awards.Create(award)
	}
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "An award with this title already exists",
			})
		}
		return serverError(c, "Failed to create award")
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[*model.Award]{
		Success: true,
		Message: "Award created",
		Data:    award,
	})
}

func (s *AwardService) update(c *fiber.Ctx, existing *model.Award, sponsorID *uuid.UUID) error {
	updated, errResp := s.buildAward(c, sponsorID)
	if errResp != nil {
		return errResp(c)
	}

	updated.ID = existing.ID
	updated.AwardImage = existing.AwardImage
	if updated.Title == existing.Title {
		updated.Slug = existing.Slug
	}
	if sponsorID != nil {
		// Sponsors cannot change an award's status or owner.
		updated.Status = existing.Status
		updated.SponsorID = existing.SponsorID
	} else if updated.SponsorID == nil {
		updated.SponsorID = existing.SponsorID
	}

	if err := s.awards.Update(updated); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return notFound(c, "Award not found")
		case errors.Is(err, repo.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "An award with this title already exists",
			})
		}
		return serverError(c, "Failed to update award")
	}

	return c.JSON(model.SuccessResponse[*model.Award]{
		Success: true,
		Message: "Award updated",
		Data:    updated,
	})
}

func (s *AwardService) delete(c *fiber.Ctx, id uuid.UUID, sponsor *model.Sponsor) error {
	existing, err := s.awards.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	// Sponsors may delete any of their own awards, whatever the status; the
	// repository still refuses when applications exist.
	if sponsor != nil {
		if existing.SponsorID == nil || *existing.SponsorID != sponsor.ID {
			return notFound(c, "Award not found")
		}
	}

	if err := s.awards.Delete(id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return notFound(c, "Award not found")
		case errors.Is(err, repo.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "Award has applications and cannot be deleted",
			})
		}
		return serverError(c, "Failed to delete award")
	}

	if existing.AwardImage != "" {
		s.files.Delete(c.Context(), existing.AwardImage)
	}

	return c.JSON(model.SuccessMessageResponse{
		Success: true,
		Message: "Award deleted",
	})
}
