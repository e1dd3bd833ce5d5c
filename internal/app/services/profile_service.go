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
	"github.com/yigit/placement/internal/pkg/logger"
)

// ProfileService defines secondary profile operations
type ProfileService interface {
	ResolveStudent(ctx context.Context, userID int64) (*models.StudentProfile, error)
	GetCompletion(ctx context.Context, studentID int64) (*dto.ProfileCompletionResponse, error)
	UpdateExtendedProfile(ctx context.Context, studentID int64, patch *models.ExtendedProfile) (*dto.ProfileCompletionResponse, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	store  repositories.Store
	tx     repositories.Transactor
	now    Clock
	logger zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(store repositories.Store, tx repositories.Transactor, now Clock, logger zerolog.Logger) ProfileService {
	if now == nil {
		now = time.Now
	}
	return &profileServiceImpl{
		store:  store,
		tx:     tx,
		now:    now,
		logger: logger,
	}
}

// ResolveStudent maps an authenticated user to their student profile
func (s *profileServiceImpl) ResolveStudent(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.store.GetStudentProfileByUserID(ctx, userID)
}

// GetCompletion derives the completion of every section from the current profile
func (s *profileServiceImpl) GetCompletion(ctx context.Context, studentID int64) (*dto.ProfileCompletionResponse, error) {
	profile, err := s.store.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ext, err := s.store.GetExtendedProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}

	applicant := eligibility.Applicant{Profile: profile, Extended: ext}
	now := s.now()
	records := make([]models.SectionCompletion, 0, len(sections.All()))
	for _, c := range sections.ComputeAll(applicant) {
		records = append(records, c.Record(studentID, now))
	}
	return completionResponse(studentID, records), nil
}

// UpdateExtendedProfile applies a partial update of secondary sections and
// recomputes the completion of the touched sections and the aggregate.
func (s *profileServiceImpl) UpdateExtendedProfile(ctx context.Context, studentID int64, patch *models.ExtendedProfile) (*dto.ProfileCompletionResponse, error) {
	if patch == nil {
		return s.GetCompletion(ctx, studentID)
	}
	if err := validateProfilePatch(patch); err != nil {
		return nil, err
	}

	var records []models.SectionCompletion
	var touched []sections.Section
	err := s.tx.WithinTx(ctx, func(ctx context.Context, store repositories.Store) error {
		profile, err := store.GetStudentProfileForUpdate(ctx, studentID)
		if err != nil {
			return err
		}
		ext, err := store.GetExtendedProfile(ctx, studentID)
		if err != nil {
			return err
		}
		if ext == nil {
			ext = &models.ExtendedProfile{StudentID: studentID}
		}

		touched = sections.ApplyPatch(ext, patch)
		if err := store.SaveExtendedProfileSections(ctx, ext, touched); err != nil {
			return fmt.Errorf("error saving extended profile: %w", err)
		}

		applicant := eligibility.Applicant{Profile: profile, Extended: ext}
		records, err = recomputeCompletion(ctx, store, applicant, touched, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx, s.logger).Info().
		Int64("studentID", studentID).
		Int("sections", len(touched)).
		Msg("Extended profile updated")

	return completionResponse(studentID, records), nil
}

// completionResponse renders records in section display order; sections
// without a record are reported as 0%.
func completionResponse(studentID int64, records []models.SectionCompletion) *dto.ProfileCompletionResponse {
	byName := make(map[string]models.SectionCompletion, len(records))
	for _, rec := range records {
		byName[rec.Section] = rec
	}

	resp := &dto.ProfileCompletionResponse{
		StudentID: studentID,
		Overall:   sections.Overall(records),
		Sections:  make([]dto.SectionCompletionResponse, 0, len(sections.All())),
	}
	for _, def := range sections.All() {
		rec := byName[string(def.Section)]
		resp.Sections = append(resp.Sections, dto.SectionCompletionResponse{
			Section:     string(def.Section),
			Label:       def.Label,
			IsCompleted: rec.IsCompleted,
			Percentage:  rec.Percentage,
		})
	}
	return resp
}
