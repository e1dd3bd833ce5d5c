package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/eligibility"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/helpers"
	"github.com/yigit/placement/internal/pkg/logger"
	"github.com/yigit/placement/internal/pkg/validation"
)

// ApplicationService defines application submission operations
type ApplicationService interface {
	SubmitApplication(ctx context.Context, jobID, studentID int64, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error)
	GetSnapshot(ctx context.Context, applicationID int64) (*models.ApplicationSnapshot, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	store  repositories.Store
	tx     repositories.Transactor
	now    Clock
	logger zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(store repositories.Store, tx repositories.Transactor, now Clock, logger zerolog.Logger) ApplicationService {
	if now == nil {
		now = time.Now
	}
	return &applicationServiceImpl{
		store:  store,
		tx:     tx,
		now:    now,
		logger: logger,
	}
}

// SubmitApplication applies the optional profile updates, re-evaluates the
// applicant and records the application with its snapshot, all in one
// transaction. Missing required data, violated field constraints and invalid
// custom answers abort with a ValidationError and nothing is written. Any
// other blocking reason still commits the application as rejected.
func (s *applicationServiceImpl) SubmitApplication(ctx context.Context, jobID, studentID int64, req *dto.SubmitApplicationRequest) (*dto.SubmitApplicationResponse, error) {
	if req == nil {
		req = &dto.SubmitApplicationRequest{}
	}
	if err := validateProfilePatch(req.ProfileUpdates); err != nil {
		return nil, err
	}

	var resp *dto.SubmitApplicationResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context, store repositories.Store) error {
		now := s.now()

		job, err := store.GetJobPosting(ctx, jobID)
		if err != nil {
			return err
		}
		if !job.IsActive {
			return apperrors.ErrJobInactive
		}
		if helpers.DeadlinePassed(job.Deadline, now) {
			return apperrors.ErrDeadlinePassed
		}

		profile, err := store.GetStudentProfileForUpdate(ctx, studentID)
		if err != nil {
			return err
		}

		applied, err := store.ApplicationExists(ctx, jobID, studentID)
		if err != nil {
			return fmt.Errorf("error checking existing application: %w", err)
		}
		if applied {
			return apperrors.ErrAlreadyApplied
		}

		ext, err := store.GetExtendedProfile(ctx, studentID)
		if err != nil {
			return err
		}
		applicant := eligibility.Applicant{Profile: profile, Extended: ext}

		if req.ProfileUpdates != nil {
			if applicant.Extended == nil {
				applicant.Extended = &models.ExtendedProfile{StudentID: studentID}
			}
			touched := sections.ApplyPatch(applicant.Extended, req.ProfileUpdates)
			if len(touched) > 0 {
				if err := store.SaveExtendedProfileSections(ctx, applicant.Extended, touched); err != nil {
					return fmt.Errorf("error saving profile updates: %w", err)
				}
				if _, err := recomputeCompletion(ctx, store, applicant, touched, now); err != nil {
					return fmt.Errorf("error recomputing section completion: %w", err)
				}
			}
		}

		spec, err := store.GetRequirementSpec(ctx, jobID)
		if err != nil {
			return err
		}

		verdict := eligibility.Evaluate(eligibility.Input{Job: job, Spec: spec, Applicant: applicant}, eligibility.Submission)
		answerProblems := validation.CustomAnswers(eligibility.Merge(job, spec).CustomFields, req.CustomAnswers)

		if verdict.AbortsSubmission() || len(answerProblems) > 0 {
			messages := append(verdict.Messages(true), answerProblems...)
			logger.Ctx(ctx, s.logger).Info().
				Int64("jobID", jobID).
				Int64("studentID", studentID).
				Strs("errors", messages).
				Msg("Application submission aborted")
			return apperrors.NewValidationError(messages)
		}

		status := models.ApplicationSubmitted
		if verdict.HasBlocking() {
			status = models.ApplicationRejected
		}

		app := &models.Application{JobID: jobID, StudentID: studentID, Status: status}
		if err := store.CreateApplication(ctx, app); err != nil {
			return err
		}

		snap := &models.ApplicationSnapshot{
			ApplicationID:     app.ID,
			ProfileData:       applicant.Snapshot(),
			CustomAnswers:     copyAnswers(req.CustomAnswers),
			MeetsRequirements: verdict.Eligible(),
			ValidationErrors:  verdict.Messages(true),
		}
		if err := store.CreateSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("error recording application snapshot: %w", err)
		}

		resp = &dto.SubmitApplicationResponse{
			ApplicationID:     app.ID,
			Status:            string(app.Status),
			MeetsRequirements: snap.MeetsRequirements,
			ValidationErrors:  snap.ValidationErrors,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx, s.logger).Info().
		Int64("jobID", jobID).
		Int64("studentID", studentID).
		Int64("applicationID", resp.ApplicationID).
		Str("status", resp.Status).
		Msg("Application submitted")

	return resp, nil
}

// GetSnapshot returns the snapshot recorded for an application
func (s *applicationServiceImpl) GetSnapshot(ctx context.Context, applicationID int64) (*models.ApplicationSnapshot, error) {
	return s.store.GetSnapshot(ctx, applicationID)
}

func copyAnswers(answers map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(answers))
	for k, v := range answers {
		out[k] = v
	}
	return out
}
