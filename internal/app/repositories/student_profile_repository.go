package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/logger"
)

// StudentProfileRepository handles database operations for 'student_profiles'
type StudentProfileRepository struct {
	db DBTX
}

// NewStudentProfileRepository creates a new student profile repository
func NewStudentProfileRepository(db DBTX) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

var studentProfileColumns = func() []string {
	cols := []string{"id", "user_id", "full_name", "branch", "programme_cgpa", "cgpa"}
	for i := 1; i <= models.SemesterCount; i++ {
		cols = append(cols, fmt.Sprintf("sem%d_cgpa", i))
	}
	for i := 1; i <= models.SemesterCount; i++ {
		cols = append(cols, fmt.Sprintf("sem%d_backlogs", i))
	}
	return append(cols,
		"tenth_percentage", "twelfth_percentage", "college_id", "region_id",
		"registration_status", "profile_completion", "created_at", "updated_at",
	)
}()

func (r *StudentProfileRepository) selectProfileQuery() squirrel.SelectBuilder {
	return squirrel.Select(studentProfileColumns...).
		From("student_profiles").
		PlaceholderFormat(squirrel.Dollar)
}

// scanStudentProfile scans one row selected with studentProfileColumns
func scanStudentProfile(row pgx.Row) (*models.StudentProfile, error) {
	var p models.StudentProfile
	dest := []interface{}{&p.ID, &p.UserID, &p.FullName, &p.Branch, &p.ProgrammeCGPA, &p.CGPA}
	for i := range p.SemesterCGPA {
		dest = append(dest, &p.SemesterCGPA[i])
	}
	for i := range p.SemesterBacklogs {
		dest = append(dest, &p.SemesterBacklogs[i])
	}
	dest = append(dest,
		&p.TenthPercentage, &p.TwelfthPercentage, &p.CollegeID, &p.RegionID,
		&p.RegistrationStatus, &p.ProfileCompletion, &p.CreatedAt, &p.UpdatedAt,
	)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *StudentProfileRepository) getOne(ctx context.Context, builder squirrel.SelectBuilder) (*models.StudentProfile, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student profile SQL")
		return nil, err
	}
	p, err := scanStudentProfile(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
		logger.Error().Err(err).Msg("Error executing get student profile query")
	}
	return p, err
}

// GetStudentProfile retrieves a student profile by ID
func (r *StudentProfileRepository) GetStudentProfile(ctx context.Context, id int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, r.selectProfileQuery().Where(squirrel.Eq{"id": id}))
}

// GetStudentProfileForUpdate retrieves a student profile and locks its row
// until the surrounding transaction ends.
func (r *StudentProfileRepository) GetStudentProfileForUpdate(ctx context.Context, id int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, r.selectProfileQuery().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// GetStudentProfileByUserID retrieves the profile owned by a user account
func (r *StudentProfileRepository) GetStudentProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, r.selectProfileQuery().Where(squirrel.Eq{"user_id": userID}))
}

// ListStudentProfiles retrieves every profile matching filter, ordered by ID
func (r *StudentProfileRepository) ListStudentProfiles(ctx context.Context, filter StudentFilter) ([]*models.StudentProfile, error) {
	builder := r.selectProfileQuery().OrderBy("id ASC")
	if filter.RegistrationStatus != "" {
		builder = builder.Where(squirrel.Eq{"registration_status": filter.RegistrationStatus})
	}
	if len(filter.CollegeIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"college_id": filter.CollegeIDs})
	}
	if len(filter.RegionIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"region_id": filter.RegionIDs})
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list student profiles SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list student profiles query")
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*models.StudentProfile, 0)
	for rows.Next() {
		p, err := scanStudentProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return profiles, nil
}

// UpdateProfileCompletion stores the aggregate completion of a profile
func (r *StudentProfileRepository) UpdateProfileCompletion(ctx context.Context, studentID int64, percentage int) error {
	sqlStr, args, err := squirrel.Update("student_profiles").
		Set("profile_completion", percentage).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile completion SQL")
		return err
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error updating profile completion")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
