package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/eligibility"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/pkg/logger"
)

// EligibilityService defines the read-only eligibility operations
type EligibilityService interface {
	CheckReadiness(ctx context.Context, jobID, studentID int64) (*dto.ReadinessResponse, error)
	GetMissingFields(ctx context.Context, jobID, studentID int64) (*dto.MissingFieldsResponse, error)
	GetEligibleCount(ctx context.Context, jobID int64) (*dto.EligibilityCountResponse, error)
}

// eligibilityServiceImpl implements EligibilityService
type eligibilityServiceImpl struct {
	store        repositories.Store
	cohortStatus string
	logger       zerolog.Logger
}

// NewEligibilityService creates a new EligibilityService. cohortStatus selects
// the registration status of the students counted by GetEligibleCount; empty
// counts every student.
func NewEligibilityService(store repositories.Store, cohortStatus string, logger zerolog.Logger) EligibilityService {
	return &eligibilityServiceImpl{
		store:        store,
		cohortStatus: cohortStatus,
		logger:       logger,
	}
}

// CheckReadiness evaluates the applicant's current data against a job without writing anything
func (s *eligibilityServiceImpl) CheckReadiness(ctx context.Context, jobID, studentID int64) (*dto.ReadinessResponse, error) {
	in, err := evaluationInput(ctx, s.store, jobID, studentID)
	if err != nil {
		return nil, err
	}

	applied, err := s.store.ApplicationExists(ctx, jobID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing application: %w", err)
	}

	verdict := eligibility.Evaluate(in, eligibility.PreCheck)
	criteria := eligibility.Merge(in.Job, in.Spec)

	logger.Ctx(ctx, s.logger).Debug().
		Int64("jobID", jobID).
		Int64("studentID", studentID).
		Int("reasons", len(verdict.Reasons)).
		Bool("blocking", verdict.HasBlocking()).
		Msg("Readiness evaluated")

	return &dto.ReadinessResponse{
		JobID:             jobID,
		ReadyToApply:      verdict.Ready(),
		HasBlockingIssues: verdict.HasBlocking(),
		AlreadyApplied:    applied,
		Deadline:          in.Job.Deadline,
		Reasons:           toReasonResponses(verdict.Reasons),
		CustomFields:      customFieldsOrEmpty(criteria.CustomFields),
	}, nil
}

// GetMissingFields lists, per required section, the fields the applicant still
// has to supply, plus required constrained fields that are absent.
func (s *eligibilityServiceImpl) GetMissingFields(ctx context.Context, jobID, studentID int64) (*dto.MissingFieldsResponse, error) {
	in, err := evaluationInput(ctx, s.store, jobID, studentID)
	if err != nil {
		return nil, err
	}
	criteria := eligibility.Merge(in.Job, in.Spec)
	applicant := in.Applicant

	resp := &dto.MissingFieldsResponse{
		JobID:        jobID,
		Sections:     []dto.MissingSection{},
		CustomFields: customFieldsOrEmpty(criteria.CustomFields),
	}

	listed := make(map[string]bool)
	bySection := make(map[sections.Section]int)
	for _, name := range criteria.RequiredSections {
		def, ok := sections.Lookup(name)
		if !ok {
			continue
		}
		missing := def.Missing(applicant)
		if len(missing) == 0 {
			continue
		}
		group := dto.MissingSection{Section: string(def.Section), Label: def.Label}
		for _, f := range missing {
			group.Fields = append(group.Fields, describeField(f.Key, applicant, criteria.FieldRequirements))
			listed[f.Key] = true
		}
		bySection[def.Section] = len(resp.Sections)
		resp.Sections = append(resp.Sections, group)
	}

	// Required constrained fields outside any required section
	keys := make([]string, 0, len(criteria.FieldRequirements))
	for key, rule := range criteria.FieldRequirements {
		if rule.Required && !listed[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		f, ok := sections.Field(key)
		if !ok || sections.Filled(f.Kind, applicant.Resolve(key)) {
			continue
		}
		idx, exists := bySection[f.Section]
		if !exists {
			def, _ := sections.Lookup(string(f.Section))
			idx = len(resp.Sections)
			bySection[f.Section] = idx
			resp.Sections = append(resp.Sections, dto.MissingSection{Section: string(def.Section), Label: def.Label})
		}
		resp.Sections[idx].Fields = append(resp.Sections[idx].Fields, describeField(key, applicant, criteria.FieldRequirements))
	}

	return resp, nil
}

// describeField builds the form descriptor of a secondary profile field
func describeField(key string, applicant eligibility.Applicant, rules map[string]models.FieldConstraint) dto.FieldDescriptor {
	f, _ := sections.Field(key)
	d := dto.FieldDescriptor{
		Key:          key,
		Label:        f.Label,
		Type:         f.Kind.String(),
		CurrentValue: applicant.Resolve(key),
	}
	if rule, ok := rules[key]; ok {
		d.Required = rule.Required
		d.Min = rule.Min
		d.Max = rule.Max
	}
	return d
}

// GetEligibleCount runs the evaluator over the whole cohort
func (s *eligibilityServiceImpl) GetEligibleCount(ctx context.Context, jobID int64) (*dto.EligibilityCountResponse, error) {
	job, err := s.store.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, err
	}
	spec, err := s.store.GetRequirementSpec(ctx, jobID)
	if err != nil {
		return nil, err
	}

	students, err := s.store.ListStudentProfiles(ctx, repositories.StudentFilter{RegistrationStatus: s.cohortStatus})
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	ids := make([]int64, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	extended, err := s.store.ListExtendedProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing extended profiles: %w", err)
	}

	resp := &dto.EligibilityCountResponse{JobID: jobID, Total: len(students)}
	for _, st := range students {
		verdict := eligibility.Evaluate(eligibility.Input{
			Job:       job,
			Spec:      spec,
			Applicant: eligibility.Applicant{Profile: st, Extended: extended[st.ID]},
		}, eligibility.PreCheck)
		if verdict.Eligible() {
			resp.Eligible++
		}
	}
	resp.Ineligible = resp.Total - resp.Eligible

	logger.Ctx(ctx, s.logger).Info().
		Int64("jobID", jobID).
		Int("total", resp.Total).
		Int("eligible", resp.Eligible).
		Msg("Cohort eligibility counted")

	return resp, nil
}
