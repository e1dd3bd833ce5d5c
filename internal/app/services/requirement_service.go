package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/eligibility"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
	"github.com/yigit/placement/internal/pkg/validation"
)

// RequirementService defines requirement spec and template authoring operations
type RequirementService interface {
	GetRequirementSpec(ctx context.Context, jobID int64) (*models.RequirementSpec, error)
	SaveRequirementSpec(ctx context.Context, jobID int64, reqs *models.Requirements) (*models.RequirementSpec, error)
	ApplyTemplate(ctx context.Context, jobID, templateID int64) (*models.RequirementSpec, error)
	CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, createdBy int64) (*models.CompanyTemplate, error)
	ListTemplates(ctx context.Context, page, size int) (*dto.TemplateListResponse, error)
}

// requirementServiceImpl implements RequirementService
type requirementServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewRequirementService creates a new RequirementService
func NewRequirementService(store repositories.Store, logger zerolog.Logger) RequirementService {
	return &requirementServiceImpl{
		store:  store,
		logger: logger,
	}
}

// GetRequirementSpec returns the spec bound to a job
func (s *requirementServiceImpl) GetRequirementSpec(ctx context.Context, jobID int64) (*models.RequirementSpec, error) {
	if _, err := s.store.GetJobPosting(ctx, jobID); err != nil {
		return nil, err
	}
	spec, err := s.store.GetRequirementSpec(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, apperrors.ErrSpecNotFound
	}
	return spec, nil
}

// SaveRequirementSpec validates reqs and creates or replaces the spec of a job
func (s *requirementServiceImpl) SaveRequirementSpec(ctx context.Context, jobID int64, reqs *models.Requirements) (*models.RequirementSpec, error) {
	return s.save(ctx, jobID, reqs, nil)
}

// ApplyTemplate copies a template's requirements into the spec of a job
func (s *requirementServiceImpl) ApplyTemplate(ctx context.Context, jobID, templateID int64) (*models.RequirementSpec, error) {
	tmpl, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	reqs := tmpl.Requirements
	return s.save(ctx, jobID, &reqs, &templateID)
}

func (s *requirementServiceImpl) save(ctx context.Context, jobID int64, reqs *models.Requirements, templateID *int64) (*models.RequirementSpec, error) {
	if reqs == nil {
		return nil, apperrors.NewBadRequestError("requirements are required")
	}
	if err := ValidateRequirements(reqs); err != nil {
		return nil, err
	}
	if _, err := s.store.GetJobPosting(ctx, jobID); err != nil {
		return nil, err
	}

	spec := &models.RequirementSpec{
		JobID:        jobID,
		Requirements: *reqs,
		TemplateID:   templateID,
	}
	if err := s.store.SaveRequirementSpec(ctx, spec); err != nil {
		return nil, fmt.Errorf("error saving requirement spec: %w", err)
	}

	event := logger.Ctx(ctx, s.logger).Info().Int64("jobID", jobID).Int64("specID", spec.ID)
	if templateID != nil {
		event = event.Int64("templateID", *templateID)
	}
	event.Msg("Requirement spec saved")
	return spec, nil
}

// CreateTemplate validates and stores a reusable company template
func (s *requirementServiceImpl) CreateTemplate(ctx context.Context, req *dto.CreateTemplateRequest, createdBy int64) (*models.CompanyTemplate, error) {
	name := strings.TrimSpace(req.Name)
	company := strings.TrimSpace(req.CompanyName)
	if name == "" || company == "" {
		return nil, apperrors.NewBadRequestError("template name and company name are required")
	}
	if err := ValidateRequirements(&req.Requirements); err != nil {
		return nil, err
	}

	exists, err := s.store.TemplateExists(ctx, name, company)
	if err != nil {
		return nil, fmt.Errorf("error checking template existence: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(fmt.Sprintf("template %q already exists for %s", name, company))
	}

	tmpl := &models.CompanyTemplate{
		Name:         name,
		CompanyName:  company,
		Requirements: req.Requirements,
		CreatedBy:    createdBy,
	}
	if err := s.store.CreateTemplate(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("error creating template: %w", err)
	}

	logger.Ctx(ctx, s.logger).Info().Int64("templateID", tmpl.ID).Str("company", company).Msg("Company template created")
	return tmpl, nil
}

// ListTemplates returns one page of templates
func (s *requirementServiceImpl) ListTemplates(ctx context.Context, page, size int) (*dto.TemplateListResponse, error) {
	templates, pagination, err := s.store.ListTemplates(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	out := make([]models.CompanyTemplate, 0, len(templates))
	for _, t := range templates {
		out = append(out, *t)
	}
	return &dto.TemplateListResponse{Templates: out, Pagination: pagination}, nil
}

// ValidateRequirements checks a requirements payload before it is stored. All
// problems are collected into one ValidationError.
func ValidateRequirements(reqs *models.Requirements) error {
	var messages []string
	if err := validate.Struct(reqs); err != nil {
		messages = append(messages, validatorMessages(err)...)
	}

	if c := reqs.EligibilityCriteria; len(c.AllowedBacklogSemesters) > 0 && c.BacklogSemesterBoundary != nil {
		messages = append(messages, "allowedBacklogSemesters and backlogSemesterBoundary cannot both be set")
	}

	seenSections := make(map[string]bool, len(reqs.RequiredSections))
	for _, name := range reqs.RequiredSections {
		if _, ok := sections.Lookup(name); !ok {
			messages = append(messages, fmt.Sprintf("unknown profile section %q", name))
			continue
		}
		if seenSections[name] {
			messages = append(messages, fmt.Sprintf("profile section %q listed twice", name))
		}
		seenSections[name] = true
	}

	keys := make([]string, 0, len(reqs.FieldRequirements))
	for key := range reqs.FieldRequirements {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rule := reqs.FieldRequirements[key]
		if !eligibility.KnownField(key) {
			messages = append(messages, fmt.Sprintf("unknown profile field %q", key))
			continue
		}
		if (rule.Min != nil || rule.Max != nil) && !eligibility.NumericField(key) {
			messages = append(messages, fmt.Sprintf("field %q is not numeric and cannot have min/max", key))
		}
		if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
			messages = append(messages, fmt.Sprintf("field %q has min greater than max", key))
		}
		if rule.Min == nil && rule.Max == nil && !rule.Required {
			messages = append(messages, fmt.Sprintf("field %q has no constraint", key))
		}
	}

	seenKeys := make(map[string]bool, len(reqs.CustomFields))
	for _, f := range reqs.CustomFields {
		if !validation.IsValidFieldKey(f.Key) {
			messages = append(messages, fmt.Sprintf("custom field key %q must be lower snake case", f.Key))
		}
		if seenKeys[f.Key] {
			messages = append(messages, fmt.Sprintf("custom field key %q is duplicated", f.Key))
		}
		seenKeys[f.Key] = true
		if f.Type == models.CustomFieldSelect && len(f.Options) == 0 {
			messages = append(messages, fmt.Sprintf("custom field %q needs options", f.Key))
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			messages = append(messages, fmt.Sprintf("custom field %q has min greater than max", f.Key))
		}
	}

	if len(messages) > 0 {
		return apperrors.NewValidationError(messages)
	}
	return nil
}
