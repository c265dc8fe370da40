package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/helper"
)

type SponsorService struct {
	sponsors repo.SponsorRepository
	awards   repo.AwardRepository
	apps     repo.ApplicationRepository
}

func NewSponsorService(sponsors repo.SponsorRepository, awards repo.AwardRepository, apps repo.ApplicationRepository) *SponsorService {
	return &SponsorService{sponsors: sponsors, awards: awards, apps: apps}
}

// POST /api/v1/sponsor/register
// New sponsors start pending; an admin has to verify them before they can
// publish anything.
func (s *SponsorService) Register(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	var req model.RegisterSponsorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	sponsor := model.Sponsor{
		UserID:             userID,
		OrganizationName:   req.OrganizationName,
		SponsorType:        req.SponsorType,
		RegistrationNumber: req.RegistrationNumber,
		Description:        req.Description,
		Website:            req.Website,
		Address:            req.Address,
	}

	if err := s.sponsors.Create(&sponsor); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "Sponsor profile already exists",
			})
		}
		return serverError(c, "Failed to create sponsor profile")
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.Sponsor]{
		Success: true,
		Message: "Sponsor profile created, pending verification",
		Data:    sponsor,
	})
}

// GET /api/v1/sponsor/profile
func (s *SponsorService) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	sponsor, err := s.sponsors.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Sponsor profile not found")
		}
		return serverError(c, "Failed to load sponsor profile")
	}

	return c.JSON(model.SuccessResponse[*model.Sponsor]{
		Success: true,
		Data:    sponsor,
	})
}

// PATCH /api/v1/sponsor/profile
func (s *SponsorService) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	sponsor, err := s.sponsors.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Sponsor profile not found")
		}
		return serverError(c, "Failed to load sponsor profile")
	}

	var req model.RegisterSponsorRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	sponsor.OrganizationName = req.OrganizationName
	sponsor.SponsorType = req.SponsorType
	sponsor.RegistrationNumber = req.RegistrationNumber
	sponsor.Description = req.Description
	sponsor.Website = req.Website
	sponsor.Address = req.Address

	if err := s.sponsors.Update(sponsor); err != nil {
		return serverError(c, "Failed to update sponsor profile")
	}

	return c.JSON(model.SuccessResponse[*model.Sponsor]{
		Success: true,
		Message: "Sponsor profile updated",
		Data:    sponsor,
	})
}

// GET /api/v1/sponsor/dashboard
func (s *SponsorService) Dashboard(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	sponsor, err := s.sponsors.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Sponsor profile not found")
		}
		return serverError(c, "Failed to load sponsor profile")
	}

	recent, totalAwards, err := s.awards.FindAll(model.AwardFilter{
		SponsorID: &sponsor.ID,
		Page:      1,
		Limit:     5,
	})
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	_, activeAwards, err := s.awards.FindAll(model.AwardFilter{
		SponsorID: &sponsor.ID,
		Status:    string(model.AwardActive),
		Page:      1,
		Limit:     1,
	})
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	totalApps, pendingApps, err := s.apps.CountForSponsor(sponsor.ID)
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	return c.JSON(model.SuccessResponse[model.SponsorDashboard]{
		Success: true,
		Data: model.SponsorDashboard{
			TotalAwards:         totalAwards,
			ActiveAwards:        activeAwards,
			TotalApplications:   totalApps,
			PendingApplications: pendingApps,
			VerificationStatus:  sponsor.VerificationStatus,
			RecentAwards:        recent,
		},
	})
}

// GET /api/v1/admin/sponsors
func (s *SponsorService) AdminList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	f := model.SponsorFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	sponsors, total, err := s.sponsors.FindAll(f)
	if err != nil {
		return serverError(c, "Failed to load sponsors")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.Sponsor]]{
		Success: true,
		Data: model.PaginationData[model.Sponsor]{
			Items: sponsors,
			Meta:  buildMeta(page, limit, total, "created_at", "desc", f.Search),
		},
	})
}

// GET /api/v1/admin/sponsors/:id
func (s *SponsorService) AdminGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sponsor id")
	}

	sponsor, err := s.sponsors.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Sponsor not found")
		}
		return serverError(c, "Failed to load sponsor")
	}

	return c.JSON(model.SuccessResponse[*model.Sponsor]{
		Success: true,
		Data:    sponsor,
	})
}

// PATCH /api/v1/admin/sponsors/:id/approve
func (s *SponsorService) Approve(c *fiber.Ctx) error {
	var req model.SponsorNotesRequest
	_ = c.BodyParser(&req)
	return s.applyAction(c, model.SponsorApprove, req.Notes)
}

// PATCH /api/v1/admin/sponsors/:id/reject
func (s *SponsorService) Reject(c *fiber.Ctx) error {
	var req model.SponsorRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, "notes is required when rejecting")
	}
	return s.applyAction(c, model.SponsorReject, req.Notes)
}

// PATCH /api/v1/admin/sponsors/:id/suspend
func (s *SponsorService) Suspend(c *fiber.Ctx) error {
	var req model.SponsorNotesRequest
	_ = c.BodyParser(&req)
	return s.applyAction(c, model.SponsorSuspend, req.Notes)
}

func (s *SponsorService) applyAction(c *fiber.Ctx, action model.SponsorAction, notes string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sponsor id")
	}

	sponsor, err := s.sponsors.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Sponsor not found")
		}
		return serverError(c, "Failed to load sponsor")
	}

	next, err := action.Transition(sponsor.VerificationStatus)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
			Success: false,
			Message: "Cannot " + string(action) + " a sponsor in " + string(sponsor.VerificationStatus) + " state",
			Error:   err.Error(),
		})
	}

	verifiedAt := sponsor.VerifiedAt
	if next == model.SponsorVerified {
		now := time.Now()
		verifiedAt = &now
	}

	if err := s.sponsors.UpdateStatus(id, next, notes, verifiedAt); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Sponsor not found")
		}
		return serverError(c, "Failed to update sponsor")
	}

	sponsor.VerificationStatus = next
	sponsor.VerificationNotes = notes
	sponsor.VerifiedAt = verifiedAt

	return c.JSON(model.SuccessResponse[*model.Sponsor]{
		Success: true,
		Message: "Sponsor " + string(next),
		Data:    sponsor,
	})
}
