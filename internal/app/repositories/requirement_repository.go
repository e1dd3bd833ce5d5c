package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/helpers"
	"github.com/yigit/placement/internal/pkg/logger"
)

// RequirementRepository handles 'requirement_specs' and 'company_templates'.
// Field constraints and custom fields are stored as JSONB.
type RequirementRepository struct {
	db DBTX
}

// NewRequirementRepository creates a new requirement repository
func NewRequirementRepository(db DBTX) *RequirementRepository {
	return &RequirementRepository{db: db}
}

var requirementColumns = []string{
	"min_cgpa", "max_backlogs", "backlog_semester_boundary", "allowed_backlog_semesters", "allowed_branches",
	"required_sections", "field_requirements", "custom_fields",
}

func requirementScanTargets(req *models.Requirements) []interface{} {
	return []interface{}{
		&req.MinCGPA, &req.MaxBacklogs, &req.BacklogSemesterBoundary, &req.AllowedBacklogSemesters, &req.AllowedBranches,
		&req.RequiredSections, &req.FieldRequirements, &req.CustomFields,
	}
}

func requirementValues(req *models.Requirements) []interface{} {
	fieldReqs := req.FieldRequirements
	if fieldReqs == nil {
		fieldReqs = map[string]models.FieldConstraint{}
	}
	customFields := req.CustomFields
	if customFields == nil {
		customFields = []models.CustomField{}
	}
	return []interface{}{
		req.MinCGPA, req.MaxBacklogs, req.BacklogSemesterBoundary, req.AllowedBacklogSemesters, req.AllowedBranches,
		req.RequiredSections, fieldReqs, customFields,
	}
}

// GetRequirementSpec retrieves the spec bound to a job, or nil when the job has none
func (r *RequirementRepository) GetRequirementSpec(ctx context.Context, jobID int64) (*models.RequirementSpec, error) {
	cols := append([]string{"id", "job_id"}, requirementColumns...)
	cols = append(cols, "template_id", "created_at", "updated_at")
	sqlStr, args, err := squirrel.Select(cols...).
		From("requirement_specs").
		Where(squirrel.Eq{"job_id": jobID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get requirement spec SQL")
		return nil, err
	}

	var spec models.RequirementSpec
	dest := append([]interface{}{&spec.ID, &spec.JobID}, requirementScanTargets(&spec.Requirements)...)
	dest = append(dest, &spec.TemplateID, &spec.CreatedAt, &spec.UpdatedAt)
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error executing get requirement spec query")
		return nil, err
	}
	return &spec, nil
}

// SaveRequirementSpec creates or replaces the spec of spec.JobID
func (r *RequirementRepository) SaveRequirementSpec(ctx context.Context, spec *models.RequirementSpec) error {
	now := time.Now()
	cols := append([]string{"job_id"}, requirementColumns...)
	cols = append(cols, "template_id", "created_at", "updated_at")
	vals := append([]interface{}{spec.JobID}, requirementValues(&spec.Requirements)...)
	vals = append(vals, spec.TemplateID, now, now)

	sqlStr, args, err := squirrel.Insert("requirement_specs").
		Columns(cols...).
		Values(vals...).
		Suffix(`ON CONFLICT (job_id) DO UPDATE SET
			min_cgpa = EXCLUDED.min_cgpa,
			max_backlogs = EXCLUDED.max_backlogs,
			backlog_semester_boundary = EXCLUDED.backlog_semester_boundary,
			allowed_backlog_semesters = EXCLUDED.allowed_backlog_semesters,
			allowed_branches = EXCLUDED.allowed_branches,
			required_sections = EXCLUDED.required_sections,
			field_requirements = EXCLUDED.field_requirements,
			custom_fields = EXCLUDED.custom_fields,
			template_id = EXCLUDED.template_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save requirement spec SQL")
		return err
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&spec.ID, &spec.CreatedAt, &spec.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("jobID", spec.JobID).Msg("Error saving requirement spec")
		return err
	}
	return nil
}

func (r *RequirementRepository) selectTemplateQuery() squirrel.SelectBuilder {
	cols := append([]string{"id", "name", "company_name"}, requirementColumns...)
	cols = append(cols, "created_by", "created_at")
	return squirrel.Select(cols...).
		From("company_templates").
		PlaceholderFormat(squirrel.Dollar)
}

func scanTemplate(row pgx.Row) (*models.CompanyTemplate, error) {
	var t models.CompanyTemplate
	dest := append([]interface{}{&t.ID, &t.Name, &t.CompanyName}, requirementScanTargets(&t.Requirements)...)
	dest = append(dest, &t.CreatedBy, &t.CreatedAt)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetTemplate retrieves a company template by ID
func (r *RequirementRepository) GetTemplate(ctx context.Context, id int64) (*models.CompanyTemplate, error) {
	sqlStr, args, err := r.selectTemplateQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get template SQL")
		return nil, err
	}
	t, err := scanTemplate(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil && !errors.Is(err, apperrors.ErrTemplateNotFound) {
		logger.Error().Err(err).Int64("templateID", id).Msg("Error executing get template query")
	}
	return t, err
}

// ListTemplates retrieves one page of company templates, newest first
func (r *RequirementRepository) ListTemplates(ctx context.Context, page, size int) ([]*models.CompanyTemplate, dto.PaginationInfo, error) {
	countSql, countArgs, err := squirrel.Select("count(*)").
		From("company_templates").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count templates SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing count templates query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.CompanyTemplate{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectTemplateQuery().
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list templates SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list templates query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	templates := make([]*models.CompanyTemplate, 0, limit)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, pagination, fmt.Errorf("error scanning template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}
	return templates, pagination, nil
}

// CreateTemplate inserts a company template and sets its ID and creation time
func (r *RequirementRepository) CreateTemplate(ctx context.Context, tmpl *models.CompanyTemplate) error {
	cols := append([]string{"name", "company_name"}, requirementColumns...)
	cols = append(cols, "created_by")
	vals := append([]interface{}{tmpl.Name, tmpl.CompanyName}, requirementValues(&tmpl.Requirements)...)
	vals = append(vals, tmpl.CreatedBy)

	sqlStr, args, err := squirrel.Insert("company_templates").
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create template SQL")
		return err
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&tmpl.ID, &tmpl.CreatedAt); err != nil {
		logger.Error().Err(err).Str("name", tmpl.Name).Msg("Error creating company template")
		return err
	}
	return nil
}

// TemplateExists reports whether a template with this name exists for the company
func (r *RequirementRepository) TemplateExists(ctx context.Context, name, companyName string) (bool, error) {
	sqlStr, args, err := squirrel.Select("1").
		Prefix("SELECT EXISTS(").
		From("company_templates").
		Where(squirrel.Eq{"name": name, "company_name": companyName}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building template exists SQL")
		return false, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error executing template exists query")
		return false, err
	}
	return exists, nil
}
