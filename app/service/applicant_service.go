package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/helper"
	"github.com/baffa-m/gamjifoundation/storage"
)

type ApplicantService struct {
	applicants repo.ApplicantRepository
	awards     repo.AwardRepository
	apps       repo.ApplicationRepository
	users      repo.UserRepository
	files      FileStore
}

func NewApplicantService(
	applicants repo.ApplicantRepository,
	awards repo.AwardRepository,
	apps repo.ApplicationRepository,
	users repo.UserRepository,
	files FileStore,
) *ApplicantService {
	return &ApplicantService{applicants: applicants, awards: awards, apps: apps, users: users, files: files}
}

// POST /api/v1/applicant/profile
func (s *ApplicantService) CreateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	var req model.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	dob, err := helper.ParseDate(req.DateOfBirth)
	if err != nil {
		return badRequest(c, "date_of_birth must be a valid date (YYYY-MM-DD)")
	}

	user, err := s.users.FindByUserID(userID)
	if err != nil {
		return invalidSession(c)
	}

	applicant := model.Applicant{
		UserID:        userID,
		FullName:      req.FullName,
		Email:         user.Email,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		StateOfOrigin: req.StateOfOrigin,
		LGA:           req.LGA,
		SchoolName:    req.SchoolName,
		JambRegNumber: req.JambRegNumber,
		WaecRegNumber: req.WaecRegNumber,
	}

	if err := s.applicants.CreateProfile(&applicant); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "Profile already exists",
			})
		}
		return serverError(c, "Failed to create profile")
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.Applicant]{
		Success: true,
		Message: "Profile created",
		Data:    applicant,
	})
}

// GET /api/v1/applicant/profile
func (s *ApplicantService) GetProfile(c *fiber.Ctx) error {
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

	if docs, err := s.applicants.FindDocuments(applicant.ID); err == nil {
		applicant.Documents = docs
	}

	return c.JSON(model.SuccessResponse[*model.Applicant]{
		Success: true,
		Data:    applicant,
	})
}

// PATCH /api/v1/applicant/profile
func (s *ApplicantService) UpdateProfile(c *fiber.Ctx) error {
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

	var req model.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid input")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return badRequest(c, helper.FormatValidationErrors(err))
	}

	dob, err := helper.ParseDate(req.DateOfBirth)
	if err != nil {
		return badRequest(c, "date_of_birth must be a valid date (YYYY-MM-DD)")
	}

	applicant.FullName = req.FullName
	applicant.PhoneNumber = req.PhoneNumber
	applicant.Address = req.Address
	applicant.DateOfBirth = dob
	applicant.Gender = req.Gender
	applicant.StateOfOrigin = req.StateOfOrigin
	applicant.LGA = req.LGA
	applicant.SchoolName = req.SchoolName
	applicant.JambRegNumber = req.JambRegNumber
	applicant.WaecRegNumber = req.WaecRegNumber

	if err := s.applicants.Update(applicant); err != nil {
		return serverError(c, "Failed to update profile")
	}

	return c.JSON(model.SuccessResponse[*model.Applicant]{
		Success: true,
		Message: "Profile updated",
		Data:    applicant,
	})
}

// POST /api/v1/applicant/documents
// Multipart form: type (jamb|waec), file, optional score.
func (s *ApplicantService) UploadDocument(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidSession(c)
	}

	applicant, err := s.applicants.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Create a profile before uploading documents")
		}
		return serverError(c, "Failed to load profile")
	}

	docType := model.DocumentType(c.FormValue("type"))
	if docType != model.DocumentJamb && docType != model.DocumentWaec {
		return badRequest(c, "type must be jamb or waec")
	}

	var score *int
	if raw := c.FormValue("score"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 400 {
			return badRequest(c, "score must be a number between 0 and 400")
		}
		score = &n
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

	key, err := s.files.Upload(c.Context(), storage.DirDocuments, fileHeader.Filename, file)
	if err != nil {
		return serverError(c, "Failed to store file")
	}

	old, _ := s.applicants.FindDocument(applicant.ID, docType)

	doc := model.ApplicantDocument{
		ApplicantID: applicant.ID,
		Type:        docType,
		FilePath:    key,
		Score:       score,
	}
	if err := s.applicants.UpsertDocument(&doc); err != nil {
		s.files.Delete(c.Context(), key)
		return serverError(c, "Failed to save document")
	}

	// Replaced document; the old blob is orphaned otherwise.
	if old != nil && old.FilePath != key {
		s.files.Delete(c.Context(), old.FilePath)
	}

	return c.Status(fiber.StatusCreated).JSON(model.SuccessResponse[model.ApplicantDocument]{
		Success: true,
		Message: "Document uploaded",
		Data:    doc,
	})
}

// POST /api/v1/applicant/photo
func (s *ApplicantService) UploadPhoto(c *fiber.Ctx) error {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return serverError(c, "Failed to read file")
	}
	defer file.Close()

	key, err := s.files.Upload(c.Context(), storage.DirPhotos, fileHeader.Filename, file)
	if err != nil {
		return serverError(c, "Failed to store file")
	}

	oldKey := applicant.ProfilePicture
	applicant.ProfilePicture = key
	if err := s.applicants.Update(applicant); err != nil {
		s.files.Delete(c.Context(), key)
		return serverError(c, "Failed to update profile")
	}
	if oldKey != "" && oldKey != key {
		s.files.Delete(c.Context(), oldKey)
	}

	return c.JSON(model.SuccessResponse[*model.Applicant]{
		Success: true,
		Message: "Photo updated",
		Data:    applicant,
	})
}

// GET /api/v1/applicant/dashboard
func (s *ApplicantService) Dashboard(c *fiber.Ctx) error {
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

	counts, err := s.apps.CountByStatusForApplicant(applicant.ID)
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	open, err := s.awards.CountOpen(time.Now())
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	recent, _, err := s.apps.FindAllForApplicant(applicant.ID, "", 1, 5)
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return c.JSON(model.SuccessResponse[model.ApplicantDashboard]{
		Success: true,
		Data: model.ApplicantDashboard{
			TotalApplications:  total,
			Pending:            counts[model.ApplicationPending],
			Accepted:           counts[model.ApplicationAccepted],
			Rejected:           counts[model.ApplicationRejected],
			AvailableAwards:    open,
			RecentApplications: recent,
		},
	})
}

// GET /api/v1/admin/applicants
func (s *ApplicantService) AdminList(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	f := model.ApplicantFilter{
		Search: c.Query("search"),
		State:  c.Query("state"),
		LGA:    c.Query("lga"),
		Page:   page,
		Limit:  limit,
	}

	applicants, total, err := s.applicants.FindAll(f)
	if err != nil {
		return serverError(c, "Failed to load applicants")
	}

	return c.JSON(model.SuccessResponse[model.PaginationData[model.Applicant]]{
		Success: true,
		Data: model.PaginationData[model.Applicant]{
			Items: applicants,
			Meta:  buildMeta(page, limit, total, "created_at", "desc", f.Search),
		},
	})
}

// GET /api/v1/admin/applicants/:id
func (s *ApplicantService) AdminGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant id")
	}

	applicant, err := s.applicants.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, "Failed to load applicant")
	}

	if docs, err := s.applicants.FindDocuments(applicant.ID); err == nil {
		applicant.Documents = docs
	}

	return c.JSON(model.SuccessResponse[*model.Applicant]{
		Success: true,
		Data:    applicant,
	})
}

// DELETE /api/v1/admin/applicants/:id
func (s *ApplicantService) AdminDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid applicant id")
	}

	applicant, err := s.applicants.FindByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(c, "Applicant not found")
		}
		return serverError(c, "Failed to load applicant")
	}
	docs, _ := s.applicants.FindDocuments(id)

	if err := s.applicants.Delete(id); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return notFound(c, "Applicant not found")
		case errors.Is(err, repo.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(model.ErrorResponse{
				Success: false,
				Message: "Applicant has submitted applications and cannot be deleted",
			})
		}
		return serverError(c, "Failed to delete applicant")
	}

	for _, doc := range docs {
		s.files.Delete(c.Context(), doc.FilePath)
	}
	if applicant.ProfilePicture != "" {
		s.files.Delete(c.Context(), applicant.ProfilePicture)
	}

	return c.JSON(model.SuccessMessageResponse{
		Success: true,
		Message: "Applicant deleted",
	})
}
