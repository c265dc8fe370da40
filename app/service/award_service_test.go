package service

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/storage"
)

type fakeSponsorRepo struct {
	repo.SponsorRepository

	sponsor *model.Sponsor
}

func (f *fakeSponsorRepo) FindByUserID(userID uuid.UUID) (*model.Sponsor, error) {
	if f.sponsor == nil || f.sponsor.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return f.sponsor, nil
}

type fakeDeletableAwardRepo struct {
	repo.AwardRepository

	award     *model.Award
	deleteErr error
	deleted   []uuid.UUID
}

func (f *fakeDeletableAwardRepo) FindByID(id uuid.UUID) (*model.Award, error) {
	if f.award == nil || f.award.ID != id {
		return nil, repo.ErrNotFound
	}
	return f.award, nil
}

func (f *fakeDeletableAwardRepo) Delete(id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func sponsorAward(sponsorID uuid.UUID, status model.AwardStatus) *model.Award {
	return &model.Award{
		ID:                   uuid.New(),
		SponsorID:            &sponsorID,
		Title:                "STEM Future Leaders Award",
		Category:             model.CategoryStem,
		Status:               status,
		ApplicationStartDate: time.Now().Add(-24 * time.Hour),
		ApplicationEndDate:   time.Now().Add(24 * time.Hour),
	}
}

func newSponsorAwardApp(svc *AwardService, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Delete("/sponsor/awards/:id", svc.SponsorDelete)
	return app
}

func deleteReq(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("DELETE", path, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestSponsorDeletesOwnActiveAward(t *testing.T) {
	userID := uuid.New()
	sponsor := &model.Sponsor{ID: uuid.New(), UserID: userID, VerificationStatus: model.SponsorVerified}
	award := sponsorAward(sponsor.ID, model.AwardActive)

	awards := &fakeDeletableAwardRepo{award: award}
	svc := NewAwardService(awards, &fakeSponsorRepo{sponsor: sponsor}, storage.Disabled{})
	app := newSponsorAwardApp(svc, userID)

	status, body := deleteReq(t, app, "/sponsor/awards/"+award.ID.String())
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want %d (body %v)", status, fiber.StatusOK, body)
	}
	if len(awards.deleted) != 1 || awards.deleted[0] != award.ID {
		t.Fatalf("deleted = %v, want [%s]", awards.deleted, award.ID)
	}
}

func TestSponsorCannotDeleteOthersAward(t *testing.T) {
	userID := uuid.New()
	sponsor := &model.Sponsor{ID: uuid.New(), UserID: userID, VerificationStatus: model.SponsorVerified}
	award := sponsorAward(uuid.New(), model.AwardActive)

	awards := &fakeDeletableAwardRepo{award: award}
	svc := NewAwardService(awards, &fakeSponsorRepo{sponsor: sponsor}, storage.Disabled{})
	app := newSponsorAwardApp(svc, userID)

	status, _ := deleteReq(t, app, "/sponsor/awards/"+award.ID.String())
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, fiber.StatusNotFound)
	}
	if len(awards.deleted) != 0 {
		t.Fatalf("deleted = %v, want none", awards.deleted)
	}
}

func TestSponsorDeleteBlockedByApplications(t *testing.T) {
	userID := uuid.New()
	sponsor := &model.Sponsor{ID: uuid.New(), UserID: userID, VerificationStatus: model.SponsorVerified}
	award := sponsorAward(sponsor.ID, model.AwardActive)

	awards := &fakeDeletableAwardRepo{award: award, deleteErr: repo.ErrConflict}
	svc := NewAwardService(awards, &fakeSponsorRepo{sponsor: sponsor}, storage.Disabled{})
	app := newSponsorAwardApp(svc, userID)

	status, _ := deleteReq(t, app, "/sponsor/awards/"+award.ID.String())
	if status != fiber.StatusConflict {
		t.Fatalf("status = %d, want %d", status, fiber.StatusConflict)
	}
}
