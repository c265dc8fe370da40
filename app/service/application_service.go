package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/config"
	"github.com/baffa-m/gamjifoundation/helper"
)

type ApplicationService struct {
	apps       repo.ApplicationRepository
	applicants repo.ApplicantRepository
	awards     repo.AwardRepository
}

func NewApplicationService(
	apps repo.ApplicationRepository,
	applicants repo.ApplicantRepository,
	awards repo.AwardRepository,
) *ApplicationService {
	return &ApplicationService{apps: apps, applicants: applicants, awards: awards}
}

// requiredDocument maps an award category to the credential it demands.
// Only the exam-specific categories gate on a document.
func requiredDocument(category string) (model.DocumentType, bool) {
	switch category {
	case model.CategoryJamb:
		return model.DocumentJamb, true
	case model.CategoryWaec:
		return model.DocumentWaec, true
	}
	return "", false
}

// POST /api/v1/awards/:id/apply
func (s *ApplicationService) Submit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	awardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid award id")
	}

	applicant, err := s.applicants.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return badRequest(c, "Create a profile before applying")
		}
		return serverError(c, "Failed to load profile")
	}

	award, err := s.awards.FindByID(awardID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Award not found")
		}
		return serverError(c, "Failed to load award")
	}

	if !award.IsOpenForApplications(time.Now()) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(model.ErrorResponse{
			Success: false,
			Message: "Award is not open for applications",
			Error:   model.ErrNotEligible.Error(),
		})
	}

	if docType, needed := requiredDocument(award.Category); needed {
		if _, err := s.applicants.FindDocument(applicant.ID, docType); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(model.ErrorResponse{
					Success: false,
					Message: "Upload your " + string(docType) + " result before applying",
					Error:   model.ErrMissingDocument.Error(),
				})
			}
			return serverError(c, "Failed to check documents")
		}
	}

	// Snapshot the jamb score at submit time, whatever the award category,
	// so later document uploads do not rewrite history.
	var jambScore *int
	if doc, err := s.applicants.FindDocument(applicant.ID, model.DocumentJamb); err == nil && doc.Score != nil {
		score := *doc.Score
		jambScore = &score
	}

	if exists, err := s.apps.ExistsFor(applicant.ID, award.ID); err == nil && exists {
		return duplicateApplication(c)
	}

	app := model.Application{
		ApplicantID:     applicant.ID,
		AwardID:         award.ID,
		ApplicationDate: time.Now(),
		JambScore:       jambScore,
	}

	// The unique index on application_number is the real guard; one retry
	// with a fresh number covers the unlucky collision.
	for attempt := 0; attempt < 2; attempt++ {
		app.ApplicationNumber, err = helper.NewApplicationNumber()
		if err != nil {
			return serverError(c, "Failed to generate application number")
		}
		err = s.apps.Create(&app)
		if !errors.Is(err, repo.ErrNumberConflict) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return duplicateApplication(c)
		}
		return serverError(c, "Failed to submit application")
	}

	config.ApplicationsSubmitted.Inc()

	app.Award = award
	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.Application]{
		Success: true,
		Message: "Application submitted",
		Data:    app,
	})
}

func duplicateApplication(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
		Success: false,
		Message: "You have already applied for this award",
	})
}

// GET /api/v1/applicant/applications
func (s *ApplicationService) MyList(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	applicant, err := s.applicants.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Profile not found")
		}
		return serverError(c, "Failed to load profile")
	}

	page, limit := pageParams(c)
	apps, total, err := s.apps.FindAllForApplicant(applicant.ID, c.Query("status"), page, limit)
	if err != nil {
		return serverError(c, "Failed to load applications")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.Application]]{
		Success: true,
		Data: model.PaginationData[model.Application]{
			Items: apps,
			Meta:  buildMeta(page, limit, total, "created_at", "desc", ""),
		},
	})
}

// GET /api/v1/applicant/applications/:id
func (s *ApplicationService) MyGet(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application id")
	}

	applicant, err := s.applicants.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Profile not found")
		}
		return serverError(c, "Failed to load profile")
	}

	app, err := s.apps.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Application not found")
		}
		return serverError(c, "Failed to load application")
	}

	// Not-found rather than forbidden so the route does not leak which ids
	// exist.
	if app.ApplicantID != applicant.ID {
		return notFound(c, "Application not found")
	}

	return c.JSON(model.SuccessResponse[*model.Application]{
		Success: true,
		Data:    app,
	})
}

// GET /api/v1/admin/applications
func (s *ApplicationService) AdminList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	f := model.ApplicationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("award_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid award id")
		}
		f.AwardID = &id
	}

	apps, total, err := s.apps.FindAll(f)
	if err != nil {
		return serverError(c, "Failed to load applications")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.Application]]{
		Success: true,
		Data: model.PaginationData[model.Application]{
			Items: apps,
			Meta:  buildMeta(page, limit, total, "created_at", "desc", f.Search),
		},
	})
}

// GET /api/v1/admin/applications/:id
func (s *ApplicationService) AdminGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application id")
	}

	app, err := s.apps.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Application not found")
		}
		return serverError(c, "Failed to load application")
	}

	return c.JSON(model.SuccessResponse[*model.Application]{
		Success: true,
		Data:    app,
	})
}

// PATCH /api/v1/admin/applications/:id/review
// Notes are optional; an empty body is fine.
func (s *ApplicationService) Review(c *fiber.Ctx) error {
	var req model.ReviewRequest
	_ = c.BodyParser(&req)
	return s.applyAction(c, model.ActionReview, req.AdminNotes)
}

// PATCH /api/v1/admin/applications/:id/approve
func (s *ApplicationService) Approve(c *fiber.Ctx) error {
	var req model.ReviewRequest
	_ = c.BodyParser(&req)
	return s.applyAction(c, model.ActionApprove, req.AdminNotes)
}

// PATCH /api/v1/admin/applications/:id/reject
func (s *ApplicationService) Reject(c *fiber.Ctx) error {
	var req model.RejectApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, "admin_notes is required when rejecting")
	}
	return s.applyAction(c, model.ActionReject, req.AdminNotes)
}

func (s *ApplicationService) applyAction(c *fiber.Ctx, action model.ReviewAction, notes string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid application id")
	}

	status, ok := action.NextStatus()
	if !ok {
		return badRequest(c, "Unknown action")
	}

	if err := s.apps.UpdateStatus(id, status, notes); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Application not found")
		}
		return serverError(c, "Failed to update application")
	}

	app, err := s.apps.FindByID(id)
	if err != nil {
		return serverError(c, "Failed to load application")
	}

	return c.JSON(model.SuccessResponse[*model.Application]{
		Success: true,
		Message: "Application " + string(status),
		Data:    app,
	})
}
