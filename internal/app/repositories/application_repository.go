package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/dberrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// Unique constraints guarding the write-once rows
const (
	applicationJobStudentConstraint = "uq_applications_job_student"
	snapshotApplicationConstraint   = "uq_application_snapshots_application"
)

// ApplicationRepository handles 'applications' and 'application_snapshots'.
// Snapshots have no update path.
type ApplicationRepository struct {
	db DBTX
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// ApplicationExists reports whether the student already applied to the job
func (r *ApplicationRepository) ApplicationExists(ctx context.Context, jobID, studentID int64) (bool, error) {
	sqlStr, args, err := squirrel.Select("1").
		Prefix("SELECT EXISTS(").
		From("applications").
		Where(squirrel.Eq{"job_id": jobID, "student_id": studentID}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building application exists SQL")
		return false, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("jobID", jobID).Int64("studentID", studentID).Msg("Error executing application exists query")
		return false, err
	}
	return exists, nil
}

// CreateApplication inserts an application. A concurrent duplicate that slips
// past ApplicationExists surfaces as apperrors.ErrAlreadyApplied.
func (r *ApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	sqlStr, args, err := squirrel.Insert("applications").
		Columns("job_id", "student_id", "status").
		Values(app.JobID, app.StudentID, string(app.Status)).
		Suffix("RETURNING id, applied_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return err
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&app.ID, &app.AppliedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicationJobStudentConstraint) {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Int64("jobID", app.JobID).Int64("studentID", app.StudentID).Msg("Error creating application")
		return err
	}
	return nil
}

// CreateSnapshot inserts the write-once snapshot of an application
func (r *ApplicationRepository) CreateSnapshot(ctx context.Context, snap *models.ApplicationSnapshot) error {
	customAnswers := snap.CustomAnswers
	if customAnswers == nil {
		customAnswers = map[string]interface{}{}
	}
	validationErrors := snap.ValidationErrors
	if validationErrors == nil {
		validationErrors = []string{}
	}

	sqlStr, args, err := squirrel.Insert("application_snapshots").
		Columns("application_id", "profile_data", "custom_answers", "meets_requirements", "validation_errors").
		Values(snap.ApplicationID, snap.ProfileData, customAnswers, snap.MeetsRequirements, validationErrors).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create snapshot SQL")
		return err
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&snap.ID, &snap.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, snapshotApplicationConstraint) {
			return apperrors.ErrSnapshotWritten
		}
		logger.Error().Err(err).Int64("applicationID", snap.ApplicationID).Msg("Error creating application snapshot")
		return err
	}
	return nil
}

// GetSnapshot retrieves the snapshot recorded for an application
func (r *ApplicationRepository) GetSnapshot(ctx context.Context, applicationID int64) (*models.ApplicationSnapshot, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "application_id", "profile_data", "custom_answers", "meets_requirements", "validation_errors", "created_at",
	).From("application_snapshots").
		Where(squirrel.Eq{"application_id": applicationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get snapshot SQL")
		return nil, err
	}

	var snap models.ApplicationSnapshot
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&snap.ID, &snap.ApplicationID, &snap.ProfileData, &snap.CustomAnswers,
		&snap.MeetsRequirements, &snap.ValidationErrors, &snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppNotFound
		}
		logger.Error().Err(err).Int64("applicationID", applicationID).Msg("Error executing get snapshot query")
		return nil, err
	}
	return &snap, nil
}
