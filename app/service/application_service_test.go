package service

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
)

type fakeApplicantRepo struct {
	repo.ApplicantRepository

	applicant *model.Applicant
	docs      []*model.ApplicantDocument
}

func (f *fakeApplicantRepo) FindByUserID(userID uuid.UUID) (*model.Applicant, error) {
	if f.applicant == nil || f.applicant.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return f.applicant, nil
}

func (f *fakeApplicantRepo) FindDocument(applicantID uuid.UUID, docType model.DocumentType) (*model.ApplicantDocument, error) {
	for _, doc := range f.docs {
		if doc.Type == docType {
			return doc, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeAwardRepo struct {
	repo.AwardRepository

	award *model.Award
}

func (f *fakeAwardRepo) FindByID(id uuid.UUID) (*model.Award, error) {
	if f.award == nil || f.award.ID != id {
		return nil, repo.ErrNotFound
	}
	return f.award, nil
}

type fakeApplicationRepo struct {
	repo.ApplicationRepository

	exists     bool
	createErrs []error
	created    []*model.Application
	updated    *model.Application
}

func (f *fakeApplicationRepo) ExistsFor(applicantID, awardID uuid.UUID) (bool, error) {
	return f.exists, nil
}

func (f *fakeApplicationRepo) Create(app *model.Application) error {
	cp := *app
	f.created = append(f.created, &cp)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	app.ID = uuid.New()
	app.Status = model.ApplicationPending
	return nil
}

func (f *fakeApplicationRepo) UpdateStatus(id uuid.UUID, status model.ApplicationStatus, notes string) error {
	if f.updated == nil || f.updated.ID != id {
		return repo.ErrNotFound
	}
	f.updated.Status = status
	f.updated.AdminNotes = notes
	return nil
}

func (f *fakeApplicationRepo) FindByID(id uuid.UUID) (*model.Application, error) {
	if f.updated == nil || f.updated.ID != id {
		return nil, repo.ErrNotFound
	}
	return f.updated, nil
}

func openAward() *model.Award {
	return &model.Award{
		ID:                   uuid.New(),
		Title:                "JAMB Excellence Award",
		Category:             model.CategoryJamb,
		Status:               model.AwardActive,
		ApplicationStartDate: time.Now().Add(-24 * time.Hour),
		ApplicationEndDate:   time.Now().Add(24 * time.Hour),
	}
}

func newTestApp(svc *ApplicationService, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Post("/awards/:id/apply", svc.Submit)
	app.Patch("/applications/:id/approve", svc.Approve)
	app.Patch("/applications/:id/reject", svc.Reject)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func patchJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("PATCH", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestSubmitApplication(t *testing.T) {
	userID := uuid.New()
	applicantID := uuid.New()
	score := 274

	applicants := &fakeApplicantRepo{
		applicant: &model.Applicant{ID: applicantID, UserID: userID},
		docs:      []*model.ApplicantDocument{{ApplicantID: applicantID, Type: model.DocumentJamb, Score: &score}},
	}
	awards := &fakeAwardRepo{award: openAward()}
	apps := &fakeApplicationRepo{}

	svc := NewApplicationService(apps, applicants, awards)
	app := newTestApp(svc, userID)

	status, body := postJSON(t, app, "/awards/"+awards.award.ID.String()+"/apply", nil)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d (body %v)", status, fiber.StatusCreated, body)
	}

	data, _ := body["data"].(map[string]interface{})
	if data == nil {
		t.Fatal("response has no data")
	}
	number, _ := data["application_number"].(string)
	if !strings.HasPrefix(number, "APP-") || len(number) != 14 {
		t.Errorf("application_number = %q, want APP- plus 10 characters", number)
	}
	if got := data["application_status"]; got != string(model.ApplicationPending) {
		t.Errorf("application_status = %v, want pending", got)
	}
	if got := data["jamb_score"]; got != float64(score) {
		t.Errorf("jamb_score = %v, want %d", got, score)
	}
}

func TestSubmitApplicationSnapshotsJambScoreForWaecAward(t *testing.T) {
	userID := uuid.New()
	applicantID := uuid.New()
	score := 251

	applicants := &fakeApplicantRepo{
		applicant: &model.Applicant{ID: applicantID, UserID: userID},
		docs: []*model.ApplicantDocument{
			{ApplicantID: applicantID, Type: model.DocumentJamb, Score: &score},
			{ApplicantID: applicantID, Type: model.DocumentWaec},
		},
	}
	award := openAward()
	award.Category = model.CategoryWaec
	awards := &fakeAwardRepo{award: award}
	apps := &fakeApplicationRepo{}

	svc := NewApplicationService(apps, applicants, awards)
	app := newTestApp(svc, userID)

	status, body := postJSON(t, app, "/awards/"+award.ID.String()+"/apply", nil)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d (body %v)", status, fiber.StatusCreated, body)
	}

	data, _ := body["data"].(map[string]interface{})
	if data == nil {
		t.Fatal("response has no data")
	}
	if got := data["jamb_score"]; got != float64(score) {
		t.Errorf("jamb_score = %v, want %d", got, score)
	}
}

func TestSubmitApplicationRetriesNumberCollision(t *testing.T) {
	userID := uuid.New()
	applicantID := uuid.New()

	applicants := &fakeApplicantRepo{
		applicant: &model.Applicant{ID: applicantID, UserID: userID},
		docs:      []*model.ApplicantDocument{{ApplicantID: applicantID, Type: model.DocumentJamb}},
	}
	awards := &fakeAwardRepo{award: openAward()}
	apps := &fakeApplicationRepo{createErrs: []error{repo.ErrNumberConflict}}

	svc := NewApplicationService(apps, applicants, awards)
	app := newTestApp(svc, userID)

	status, body := postJSON(t, app, "/awards/"+awards.award.ID.String()+"/apply", nil)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want %d (body %v)", status, fiber.StatusCreated, body)
	}
	if len(apps.created) != 2 {
		t.Fatalf("create attempts = %d, want 2", len(apps.created))
	}
	if apps.created[0].ApplicationNumber == apps.created[1].ApplicationNumber {
		t.Error("retry reused the colliding application number")
	}
}

func TestSubmitApplicationClosedAward(t *testing.T) {
	userID := uuid.New()
	applicantID := uuid.New()

	award := openAward()
	award.ApplicationEndDate = time.Now().Add(-time.Hour)

	applicants := &fakeApplicantRepo{applicant: &model.Applicant{ID: applicantID, UserID: userID}}
	awards := &fakeAwardRepo{award: award}
	apps := &fakeApplicationRepo{}

	svc := NewApplicationService(apps, applicants, awards)
	app := newTestApp(svc, userID)

	status, _ := postJSON(t, app, "/awards/"+award.ID.String()+"/apply", nil)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", status, fiber.StatusUnprocessableEntity)
	}
	if len(apps.created) != 0 {
		t.Error("closed award still produced an application")
	}
}

func TestSubmitApplicationMissingDocument(t *testing.T) {
	userID := uuid.New()
	applicantID := uuid.New()

	applicants := &fakeApplicantRepo{applicant: &model.Applicant{ID: applicantID, UserID: userID}}
	awards := &fakeAwardRepo{award: openAward()}
	apps := &fakeApplicationRepo{}

	svc := NewApplicationService(apps, applicants, awards)
	app := newTestApp(svc, userID)

	status, body := postJSON(t, app, "/awards/"+awards.award.ID.String()+"/apply", nil)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", status, fiber.StatusUnprocessableEntity)
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "jamb") {
		t.Errorf("message = %q, want mention of the missing jamb document", msg)
	}
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	userID := uuid.New()
	applicantID := uuid.New()

	applicants := &fakeApplicantRepo{
		applicant: &model.Applicant{ID: applicantID, UserID: userID},
		docs:      []*model.ApplicantDocument{{ApplicantID: applicantID, Type: model.DocumentJamb}},
	}
	awards := &fakeAwardRepo{award: openAward()}
	apps := &fakeApplicationRepo{exists: true}

	svc := NewApplicationService(apps, applicants, awards)
	app := newTestApp(svc, userID)

	status, _ := postJSON(t, app, "/awards/"+awards.award.ID.String()+"/apply", nil)
	if status != fiber.StatusConflict {
		t.Fatalf("status = %d, want %d", status, fiber.StatusConflict)
	}
}

func TestRejectRequiresNotes(t *testing.T) {
	userID := uuid.New()
	existing := &model.Application{ID: uuid.New(), Status: model.ApplicationPending}
	apps := &fakeApplicationRepo{updated: existing}

	svc := NewApplicationService(apps, &fakeApplicantRepo{}, &fakeAwardRepo{})
	app := newTestApp(svc, userID)

	status, _ := patchJSON(t, app, "/applications/"+existing.ID.String()+"/reject", model.RejectApplicationRequest{})
	if status != fiber.StatusBadRequest {
		t.Fatalf("reject without notes: status = %d, want %d", status, fiber.StatusBadRequest)
	}
	if existing.Status != model.ApplicationPending {
		t.Error("reject without notes still changed the status")
	}

	status, _ = patchJSON(t, app, "/applications/"+existing.ID.String()+"/reject", model.RejectApplicationRequest{AdminNotes: "incomplete records"})
	if status != fiber.StatusOK {
		t.Fatalf("reject with notes: status = %d, want %d", status, fiber.StatusOK)
	}
	if existing.Status != model.ApplicationRejected {
		t.Errorf("status = %s, want rejected", existing.Status)
	}
}

func TestApproveAllowsEmptyNotes(t *testing.T) {
	userID := uuid.New()
	existing := &model.Application{ID: uuid.New(), Status: model.ApplicationUnderReview}
	apps := &fakeApplicationRepo{updated: existing}

	svc := NewApplicationService(apps, &fakeApplicantRepo{}, &fakeAwardRepo{})
	app := newTestApp(svc, userID)

	status, _ := patchJSON(t, app, "/applications/"+existing.ID.String()+"/approve", model.ReviewRequest{})
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", status, fiber.StatusOK)
	}
	if existing.Status != model.ApplicationAccepted {
		t.Errorf("status = %s, want accepted", existing.Status)
	}
}
