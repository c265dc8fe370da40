package db

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/baffa-m/gamjifoundation/app/model"
	"github.com/baffa-m/gamjifoundation/helper"
)

var seedPermissions = []model.Permission{
	{Name: "awards.manage", Resource: "awards", Action: "manage", Description: "Create, update and delete awards"},
	{Name: "applications.review", Resource: "applications", Action: "review", Description: "Review, approve and reject applications"},
	{Name: "sponsors.verify", Resource: "sponsors", Action: "verify", Description: "Approve, reject and suspend sponsors"},
	{Name: "content.manage", Resource: "content", Action: "manage", Description: "Manage news and hero slides"},
}

// Seed provisions roles, permissions, a bootstrap admin account and a few
// demo awards. It is idempotent: existing rows are left untouched.
func Seed() error {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for i := range seedPermissions {
		p := &seedPermissions[i]
		if err := DB.Where(model.Permission{Name: p.Name}).FirstOrCreate(p).Error; err != nil {
			return err
		}
	}

	roles := []struct {
		name        string
		description string
		permissions []model.Permission
	}{
		{model.RoleAdmin, "Platform administrators", seedPermissions},
		{model.RoleSponsor, "Organizations offering awards", nil},
		{model.RoleApplicant, "Students applying to awards", nil},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Role", "Permissions", "Status"})

	for _, r := range roles {
		role := model.Role{Name: r.name, Description: r.description}
		res := DB.Where(model.Role{Name: r.name}).FirstOrCreate(&role)
		if res.Error != nil {
			return res.Error
		}
		if len(r.permissions) > 0 {
			if err := DB.Model(&role).Association("Permissions").Replace(r.permissions); err != nil {
				return err
			}
		}
		status := green("created")
		if res.RowsAffected == 0 {
			status = yellow("exists")
		}
		table.Append([]string{r.name, strconv.Itoa(len(r.permissions)), status})
	}
	table.Render()

	if err := seedAdmin(); err != nil {
		return err
	}
	return seedDemoAwards()
}

func seedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := DB.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole model.Role
	if err := DB.Where("name = ?", model.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := helper.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     "Platform Admin",
		RoleID:       &adminRole.ID,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	color.Green("Seeded admin account %s", email)
	return nil
}

func seedDemoAwards() error {
	now := time.Now()
	demos := []model.Award{
		{
			Title:               "JAMB Excellence Scholarship",
			Slug:                "jamb-excellence-scholarship",
			Description:         "Merit scholarship for outstanding JAMB candidates.",
			Category:            model.CategoryJamb,
			Amount:              250000,
			NumberOfAwards:      10,
			Status:              model.AwardActive,
			EligibilityCriteria: "JAMB score of 250 or above.",
			RequiredDocuments:   "JAMB result slip",
		},
		{
			Title:               "WAEC Achievers Grant",
			Slug:                "waec-achievers-grant",
			Description:         "Support for students with strong WAEC results.",
			Category:            model.CategoryWaec,
			Amount:              150000,
			NumberOfAwards:      20,
			Status:              model.AwardActive,
			EligibilityCriteria: "Five credits including English and Mathematics.",
			RequiredDocuments:   "WAEC result",
		},
		{
			Title:          "STEM Future Leaders Award",
			Slug:           "stem-future-leaders-award",
			Description:    "For students pursuing science, technology, engineering or mathematics.",
			Category:       model.CategoryStem,
			Amount:         500000,
			NumberOfAwards: 5,
			Status:         model.AwardDraft,
		},
	}

	for i := range demos {
		a := &demos[i]
		a.ApplicationStartDate = now.AddDate(0, 0, -7)
		a.ApplicationEndDate = now.AddDate(0, 2, 0)
		res := DB.Where(model.Award{Slug: a.Slug}).FirstOrCreate(a)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			color.Green("Seeded demo award %s", a.Slug)
		}
	}
	return nil
}
