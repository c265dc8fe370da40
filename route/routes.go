package route

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/baffa-m/gamjifoundation/app/repo"
	"github.com/baffa-m/gamjifoundation/app/service"
	"github.com/baffa-m/gamjifoundation/config"
	"github.com/baffa-m/gamjifoundation/middleware"
)

func SetupRoutes(app *fiber.App, pgDB *sql.DB, mongoDB *mongo.Database, cache *redis.Client, files service.FileStore) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	userRepo := repo.NewUserRepo(pgDB)
	applicantRepo := repo.NewApplicantRepo(pgDB)
	sponsorRepo := repo.NewSponsorRepo(pgDB)
	awardRepo := repo.NewAwardRepo(pgDB)
	applicationRepo := repo.NewApplicationRepo(pgDB)
	contentRepo := repo.NewContentRepo(mongoDB)

	authService := service.NewAuthService(userRepo)
	applicantService := service.NewApplicantService(applicantRepo, awardRepo, applicationRepo, userRepo, files)
	applicationService := service.NewApplicationService(applicationRepo, applicantRepo, awardRepo)
	awardService := service.NewAwardService(awardRepo, sponsorRepo, files)
	sponsorService := service.NewSponsorService(sponsorRepo, awardRepo, applicationRepo)
	contentService := service.NewContentService(contentRepo, awardRepo, applicantRepo, cache, files)
	dashboardService := service.NewDashboardService(awardRepo, applicationRepo, applicantRepo, sponsorRepo, cache)

	app.Get("/metrics", config.MetricsHandler())

	// Public surfaces
	v1.Get("/home", contentService.Home)
	v1.Get("/awards", awardService.PublicList)
	v1.Get("/awards/:slug", awardService.PublicGet)
	v1.Get("/news", contentService.PublicNewsList)
	v1.Get("/news/:slug", contentService.PublicNewsGet)
	v1.Get("/hero-slides", contentService.PublicSlides)

	auth := v1.Group("/auth")
	auth.Post("/register", authService.Register)
	auth.Post("/login", authService.Login)
	auth.Post("/refresh", authService.Refresh)
	auth.Post("/logout", authService.Logout)

	protected := v1.Group("", middleware.AuthRequired(userRepo))
	protected.Get("/auth/profile", authService.Profile)

	protected.Post("/awards/:id/apply", middleware.RoleRequired("applicant"), applicationService.Submit)

	applicant := protected.Group("/applicant", middleware.RoleRequired("applicant"))
	applicant.Post("/profile", applicantService.CreateProfile)
	applicant.Get("/profile", applicantService.GetProfile)
	applicant.Patch("/profile", applicantService.UpdateProfile)
	applicant.Post("/documents", applicantService.UploadDocument)
	applicant.Post("/photo", applicantService.UploadPhoto)
	applicant.Get("/dashboard", applicantService.Dashboard)
	applicant.Get("/applications", applicationService.MyList)
	applicant.Get("/applications/:id", applicationService.MyGet)

	sponsor := protected.Group("/sponsor", middleware.RoleRequired("sponsor"))
	sponsor.Post("/register", sponsorService.Register)
	sponsor.Get("/profile", sponsorService.GetProfile)
	sponsor.Patch("/profile", sponsorService.UpdateProfile)
	sponsor.Get("/dashboard", sponsorService.Dashboard)
	sponsor.Get("/awards", awardService.SponsorList)
	sponsor.Post("/awards", awardService.SponsorCreate)
	sponsor.Put("/awards/:id", awardService.SponsorUpdate)
	sponsor.Delete("/awards/:id", awardService.SponsorDelete)

	admin := protected.Group("/admin", middleware.RoleRequired("admin"))
	admin.Get("/dashboard", dashboardService.Admin)

	admin.Get("/awards", awardService.AdminList)
	admin.Post("/awards", awardService.AdminCreate)
	admin.Get("/awards/:id", awardService.AdminGet)
	admin.Put("/awards/:id", awardService.AdminUpdate)
	admin.Delete("/awards/:id", awardService.AdminDelete)
	admin.Post("/awards/:id/image", awardService.UploadImage)

	admin.Get("/applications", applicationService.AdminList)
	admin.Get("/applications/:id", applicationService.AdminGet)
	admin.Patch("/applications/:id/review", applicationService.Review)
	admin.Patch("/applications/:id/approve", applicationService.Approve)
	admin.Patch("/applications/:id/reject", applicationService.Reject)

	admin.Get("/applicants", applicantService.AdminList)
	admin.Get("/applicants/:id", applicantService.AdminGet)
	admin.Delete("/applicants/:id", applicantService.AdminDelete)

	admin.Get("/sponsors", sponsorService.AdminList)
	admin.Get("/sponsors/:id", sponsorService.AdminGet)
	admin.Patch("/sponsors/:id/approve", sponsorService.Approve)
	admin.Patch("/sponsors/:id/reject", sponsorService.Reject)
	admin.Patch("/sponsors/:id/suspend", sponsorService.Suspend)

	content := admin.Group("", middleware.PermissionsRequired("content.manage"))
	content.Get("/news", contentService.AdminNewsList)
	content.Post("/news", contentService.CreateNews)
	content.Put("/news/:id", contentService.UpdateNews)
	content.Delete("/news/:id", contentService.DeleteNews)
	content.Post("/news/:id/image", contentService.UploadNewsImage)

	content.Get("/hero-slides", contentService.AdminSlides)
	content.Post("/hero-slides", contentService.CreateSlide)
	content.Put("/hero-slides/:id", contentService.UpdateSlide)
	content.Delete("/hero-slides/:id", contentService.DeleteSlide)
	content.Post("/hero-slides/:id/image", contentService.UploadSlideImage)
}
