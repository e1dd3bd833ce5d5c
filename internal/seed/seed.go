package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/placement/internal/app/models"
	appRepos "github.com/yigit/placement/internal/app/repositories"
)

// systemUserID marks rows created by the seeder rather than an officer
const systemUserID int64 = 0

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// DefaultTemplates are the starter company templates offered to officers
func DefaultTemplates() []appModels.CompanyTemplate {
	return []appModels.CompanyTemplate{
		{
			Name:        "Core engineering drive",
			CompanyName: "Generic",
			Requirements: appModels.Requirements{
				EligibilityCriteria: appModels.EligibilityCriteria{
					MinCGPA:     floatPtr(7),
					MaxBacklogs: intPtr(0),
				},
				RequiredSections: []string{"academic_extended", "personal", "document_verification"},
				FieldRequirements: map[string]appModels.FieldConstraint{
					"tenth_percentage":   {Min: floatPtr(60)},
					"twelfth_percentage": {Min: floatPtr(60)},
				},
			},
		},
		{
			Name:        "Defence and field services",
			CompanyName: "Generic",
			Requirements: appModels.Requirements{
				EligibilityCriteria: appModels.EligibilityCriteria{
					MinCGPA:                 floatPtr(6),
					AllowedBacklogSemesters: []int{1, 2},
					MaxBacklogs:             intPtr(2),
				},
				RequiredSections: []string{"physical", "personal", "family"},
				FieldRequirements: map[string]appModels.FieldConstraint{
					"height_cm": {Min: floatPtr(157), Required: true},
					"weight_kg": {Min: floatPtr(50), Required: true},
				},
				CustomFields: []appModels.CustomField{
					{
						Key:      "willing_to_relocate",
						Label:    "Willing to relocate anywhere in the country",
						Type:     appModels.CustomFieldBoolean,
						Required: true,
					},
				},
			},
		},
		{
			Name:        "Mass recruitment",
			CompanyName: "Generic",
			Requirements: appModels.Requirements{
				EligibilityCriteria: appModels.EligibilityCriteria{
					MinCGPA:                 floatPtr(6),
					BacklogSemesterBoundary: intPtr(4),
				},
				RequiredSections: []string{"personal"},
				CustomFields: []appModels.CustomField{
					{
						Key:      "preferred_location",
						Label:    "Preferred job location",
						Type:     appModels.CustomFieldSelect,
						Required: true,
						Options:  []string{"Bengaluru", "Hyderabad", "Pune", "Chennai", "Any"},
					},
				},
			},
		},
	}
}

// TemplateSeeder is the part of the requirement store used by the seeder
type TemplateSeeder interface {
	TemplateExists(ctx context.Context, name, companyName string) (bool, error)
	CreateTemplate(ctx context.Context, tmpl *appModels.CompanyTemplate) error
}

// CreateDefaultData inserts the default templates that do not exist yet.
// Failures are collected so one bad template does not stop the rest.
func CreateDefaultData(ctx context.Context, repo TemplateSeeder, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default company templates...")
	var finalErr error

	created := 0
	for _, tmpl := range DefaultTemplates() {
		exists, err := repo.TemplateExists(ctx, tmpl.Name, tmpl.CompanyName)
		if err != nil {
			lgr.Error().Err(err).Str("template", tmpl.Name).Msg("Error checking default template")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		tmpl := tmpl
		tmpl.CreatedBy = systemUserID
		if err := repo.CreateTemplate(ctx, &tmpl); err != nil {
			lgr.Error().Err(err).Str("template", tmpl.Name).Msg("Error creating default template")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	lgr.Info().Int("created", created).Msg("Default company templates ready")
	return finalErr
}

var _ TemplateSeeder = (*appRepos.RequirementRepository)(nil)
