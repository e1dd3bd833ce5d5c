package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/pkg/logger"
)

// ExtendedProfileRepository handles 'extended_profiles' and 'section_completions'.
// Every secondary field is stored in a column named after its field key.
type ExtendedProfileRepository struct {
	db DBTX
}

// NewExtendedProfileRepository creates a new extended profile repository
func NewExtendedProfileRepository(db DBTX) *ExtendedProfileRepository {
	return &ExtendedProfileRepository{db: db}
}

func extendedProfileColumns() []string {
	cols := []string{"student_id"}
	for _, f := range sections.Fields() {
		cols = append(cols, f.Key)
	}
	return append(cols, "updated_at")
}

func scanExtendedProfile(row pgx.Row) (*models.ExtendedProfile, error) {
	e := &models.ExtendedProfile{}
	dest := []interface{}{&e.StudentID}
	for _, f := range sections.Fields() {
		dest = append(dest, f.ScanTarget(e))
	}
	dest = append(dest, &e.UpdatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return e, nil
}

// GetExtendedProfile retrieves a student's secondary profile, or nil when the
// student has none yet.
func (r *ExtendedProfileRepository) GetExtendedProfile(ctx context.Context, studentID int64) (*models.ExtendedProfile, error) {
	sqlStr, args, err := squirrel.Select(extendedProfileColumns()...).
		From("extended_profiles").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get extended profile SQL")
		return nil, err
	}

	e, err := scanExtendedProfile(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing get extended profile query")
		return nil, err
	}
	return e, nil
}

// ListExtendedProfiles retrieves the secondary profiles of many students keyed
// by student ID. Students without one are absent from the map.
func (r *ExtendedProfileRepository) ListExtendedProfiles(ctx context.Context, studentIDs []int64) (map[int64]*models.ExtendedProfile, error) {
	out := make(map[int64]*models.ExtendedProfile, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}

	sqlStr, args, err := squirrel.Select(extendedProfileColumns()...).
		From("extended_profiles").
		Where(squirrel.Eq{"student_id": studentIDs}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list extended profiles SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list extended profiles query")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanExtendedProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning extended profile: %w", err)
		}
		out[e.StudentID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return out, nil
}

// SaveExtendedProfileSections upserts the columns of the touched sections only,
// creating the row when the student has no secondary profile yet. Columns of
// other sections keep their stored values.
func (r *ExtendedProfileRepository) SaveExtendedProfileSections(ctx context.Context, profile *models.ExtendedProfile, touched []sections.Section) error {
	if len(touched) == 0 {
		return nil
	}

	now := time.Now()
	cols := []string{"student_id"}
	vals := []interface{}{profile.StudentID}
	var updates []string
	for _, name := range touched {
		def, ok := sections.Lookup(string(name))
		if !ok {
			return fmt.Errorf("unknown profile section %q", name)
		}
		for _, f := range def.Fields {
			cols = append(cols, f.Key)
			vals = append(vals, f.Column(profile))
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", f.Key, f.Key))
		}
	}
	cols = append(cols, "updated_at")
	vals = append(vals, now)
	updates = append(updates, "updated_at = EXCLUDED.updated_at")

	sqlStr, args, err := squirrel.Insert("extended_profiles").
		Columns(cols...).
		Values(vals...).
		Suffix("ON CONFLICT (student_id) DO UPDATE SET " + strings.Join(updates, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save extended profile SQL")
		return err
	}

	if _, err := r.db.Exec(ctx, sqlStr, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", profile.StudentID).Msg("Error saving extended profile sections")
		return err
	}
	profile.UpdatedAt = now
	return nil
}

// UpsertSectionCompletion stores the derived completion of one section
func (r *ExtendedProfileRepository) UpsertSectionCompletion(ctx context.Context, rec models.SectionCompletion) error {
	sqlStr, args, err := squirrel.Insert("section_completions").
		Columns("student_id", "section", "is_completed", "percentage", "updated_at").
		Values(rec.StudentID, rec.Section, rec.IsCompleted, rec.Percentage, rec.UpdatedAt).
		Suffix("ON CONFLICT (student_id, section) DO UPDATE SET is_completed = EXCLUDED.is_completed, percentage = EXCLUDED.percentage, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert section completion SQL")
		return err
	}

	if _, err := r.db.Exec(ctx, sqlStr, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", rec.StudentID).Str("section", rec.Section).Msg("Error upserting section completion")
		return err
	}
	return nil
}

// ListSectionCompletions retrieves every stored section completion of a student
func (r *ExtendedProfileRepository) ListSectionCompletions(ctx context.Context, studentID int64) ([]models.SectionCompletion, error) {
	sqlStr, args, err := squirrel.Select("student_id", "section", "is_completed", "percentage", "updated_at").
		From("section_completions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("section ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list section completions SQL")
		return nil, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list section completions query")
		return nil, err
	}
	defer rows.Close()

	records := make([]models.SectionCompletion, 0, len(sections.All()))
	for rows.Next() {
		var rec models.SectionCompletion
		if err := rows.Scan(&rec.StudentID, &rec.Section, &rec.IsCompleted, &rec.Percentage, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning section completion: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return records, nil
}
