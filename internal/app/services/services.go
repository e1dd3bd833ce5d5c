package services

// Services defined in this package:
// - EligibilityService: readiness pre-check, missing-field listing, cohort eligibility count
// - ApplicationService: transactional application submission and snapshot read-back
// - RequirementService: requirement spec and company template authoring
// - ProfileService: secondary profile edits and section completion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/placement/internal/app/eligibility"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

// Clock returns the current time; tests replace it
type Clock func() time.Time

var validate = validator.New()

// evaluationInput loads everything the evaluator needs for one (job, student)
// pair from store.
func evaluationInput(ctx context.Context, store repositories.Store, jobID, studentID int64) (eligibility.Input, error) {
	job, err := store.GetJobPosting(ctx, jobID)
	if err != nil {
		return eligibility.Input{}, err
	}

	profile, err := store.GetStudentProfile(ctx, studentID)
	if err != nil {
		return eligibility.Input{}, err
	}

	ext, err := store.GetExtendedProfile(ctx, studentID)
	if err != nil {
		return eligibility.Input{}, err
	}

	spec, err := store.GetRequirementSpec(ctx, jobID)
	if err != nil {
		return eligibility.Input{}, err
	}

	return eligibility.Input{
		Job:       job,
		Spec:      spec,
		Applicant: eligibility.Applicant{Profile: profile, Extended: ext},
	}, nil
}

// recomputeCompletion stores the completion of the touched sections, seeds a
// record for every section that has none yet and refreshes the aggregate
// completion of the student profile from the merged applicant view.
func recomputeCompletion(ctx context.Context, store repositories.StudentStore, applicant eligibility.Applicant, touched []sections.Section, now time.Time) ([]models.SectionCompletion, error) {
	studentID := applicant.Profile.ID

	stored, err := store.ListSectionCompletions(ctx, studentID)
	if err != nil {
		return nil, err
	}
	write := make(map[sections.Section]bool, len(touched))
	for _, name := range touched {
		write[name] = true
	}
	seeded := make(map[string]bool, len(stored))
	for _, rec := range stored {
		seeded[rec.Section] = true
	}

	computed := sections.ComputeAll(applicant)
	records := make([]models.SectionCompletion, 0, len(computed))
	for _, c := range computed {
		rec := c.Record(studentID, now)
		if write[c.Section] || !seeded[string(c.Section)] {
			if err := store.UpsertSectionCompletion(ctx, rec); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}

	overall := sections.Overall(records)
	if err := store.UpdateProfileCompletion(ctx, studentID, overall); err != nil {
		return nil, err
	}
	applicant.Profile.ProfileCompletion = overall
	return records, nil
}

// validateProfilePatch checks the value ranges of a secondary profile update
func validateProfilePatch(patch *models.ExtendedProfile) error {
	if patch == nil {
		return nil
	}
	if err := validate.Struct(patch); err != nil {
		return apperrors.NewValidationError(validatorMessages(err))
	}
	return nil
}

// validatorMessages flattens validator errors into readable messages
func validatorMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		messages = append(messages, path+" failed '"+fe.Tag()+"' validation")
	}
	return messages
}

func toReasonResponses(reasons []eligibility.Reason) []dto.ReasonResponse {
	out := make([]dto.ReasonResponse, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, dto.ReasonResponse{
			Field:    r.Field,
			Message:  r.Message,
			Blocking: r.Blocking,
			Category: string(r.Category),
		})
	}
	return out
}

func customFieldsOrEmpty(fields []models.CustomField) []models.CustomField {
	if fields == nil {
		return []models.CustomField{}
	}
	return fields
}
