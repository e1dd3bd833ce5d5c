package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// JobPostingRepository reads 'job_postings'. Postings are authored by the
// excluded job-management tooling; this core only reads them.
type JobPostingRepository struct {
	db DBTX
}

// NewJobPostingRepository creates a new job posting repository
func NewJobPostingRepository(db DBTX) *JobPostingRepository {
	return &JobPostingRepository{db: db}
}

// GetJobPosting retrieves a job posting by ID
func (r *JobPostingRepository) GetJobPosting(ctx context.Context, id int64) (*models.JobPosting, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "company_name", "title",
		"min_cgpa", "max_backlogs", "backlog_semester_boundary", "allowed_backlog_semesters", "allowed_branches",
		"target_type", "target_region_ids", "target_college_ids",
		"is_active", "deadline", "created_at",
	).From("job_postings").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get job posting SQL")
		return nil, err
	}

	var job models.JobPosting
	var targetType string
	err = r.db.QueryRow(ctx, sqlStr, args...).Scan(
		&job.ID, &job.CompanyName, &job.Title,
		&job.MinCGPA, &job.MaxBacklogs, &job.BacklogSemesterBoundary, &job.AllowedBacklogSemesters, &job.AllowedBranches,
		&targetType, &job.TargetRegionIDs, &job.TargetCollegeIDs,
		&job.IsActive, &job.Deadline, &job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error executing get job posting query")
		return nil, err
	}
	job.TargetType = models.TargetType(targetType)
	if !job.TargetType.Valid() {
		logger.Warn().Int64("jobID", id).Str("targetType", targetType).Msg("Unknown job target type, treating as open to all")
		job.TargetType = models.TargetAll
	}
	return &job, nil
}
