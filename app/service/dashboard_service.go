package service

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/app/repo"
)

const (
	adminDashboardCacheKey = "dashboard:admin"
	adminDashboardCacheTTL = time.Minute
)

type DashboardService struct {
	awards     repo.AwardRepository
	apps       repo.ApplicationRepository
	applicants repo.ApplicantRepository
	sponsors   repo.SponsorRepository
	cache      *redis.Client
}

func NewDashboardService(
	awards repo.AwardRepository,
	apps repo.ApplicationRepository,
	applicants repo.ApplicantRepository,
	sponsors repo.SponsorRepository,
	cache *redis.Client,
) *DashboardService {
	return &DashboardService{awards: awards, apps: apps, applicants: applicants, sponsors: sponsors, cache: cache}
}

// GET /api/v1/admin/dashboard
func (s *DashboardService) Admin(c *fiber.Ctx) error {
	if s.cache != nil {
		if raw, err := s.cache.Get(c.Context(), adminDashboardCacheKey).Bytes(); err == nil {
			var dash model.AdminDashboard
			if json.Unmarshal(raw, &dash) == nil {
				return c.JSON(model.SuccessResponse[model.AdminDashboard]{
					Success: true,
					Data:    dash,
				})
			}
		}
	}

	awardCounts, err := s.awards.CountByStatus()
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}
	appCounts, err := s.apps.CountByStatus()
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}
	sponsorCounts, err := s.sponsors.CountByStatus()
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}
	applicants, err := s.applicants.CountAll()
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}
	monthly, err := s.apps.MonthlyCounts(time.Now().Year())
	if err != nil {
		return serverError(c, "Failed to load dashboard")
	}

	var totalAwards, totalApps, totalSponsors int64
	for _, n := range awardCounts {
		totalAwards += n
	}
	for _, n := range appCounts {
		totalApps += n
	}
	for _, n := range sponsorCounts {
		totalSponsors += n
	}

	dash := model.AdminDashboard{
		TotalAwards:          totalAwards,
		AwardsByStatus:       awardCounts,
		TotalApplications:    totalApps,
		ApplicationsByStatus: appCounts,
		TotalApplicants:      applicants,
		TotalSponsors:        totalSponsors,
		SponsorsByStatus:     sponsorCounts,
		MonthlyApplications:  monthly,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(dash); err == nil {
			s.cache.Set(c.Context(), adminDashboardCacheKey, raw, adminDashboardCacheTTL)
		}
	}

	return c.JSON(model.SuccessResponse[model.AdminDashboard]{
		Success: true,
		Data:    dash,
	})
}
