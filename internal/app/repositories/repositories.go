package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/db"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// runs unchanged inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// StudentFilter narrows a cohort listing
type StudentFilter struct {
	RegistrationStatus string
	CollegeIDs         []int64
	RegionIDs          []int64
}

// StudentStore reads and updates primary and secondary profile data
type StudentStore interface {
	GetStudentProfile(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetStudentProfileForUpdate(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetStudentProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	ListStudentProfiles(ctx context.Context, filter StudentFilter) ([]*models.StudentProfile, error)
	UpdateProfileCompletion(ctx context.Context, studentID int64, percentage int) error

	GetExtendedProfile(ctx context.Context, studentID int64) (*models.ExtendedProfile, error)
	ListExtendedProfiles(ctx context.Context, studentIDs []int64) (map[int64]*models.ExtendedProfile, error)
	SaveExtendedProfileSections(ctx context.Context, profile *models.ExtendedProfile, touched []sections.Section) error
	UpsertSectionCompletion(ctx context.Context, rec models.SectionCompletion) error
	ListSectionCompletions(ctx context.Context, studentID int64) ([]models.SectionCompletion, error)
}

// JobStore reads job postings and their requirement specs
type JobStore interface {
	GetJobPosting(ctx context.Context, id int64) (*models.JobPosting, error)
	GetRequirementSpec(ctx context.Context, jobID int64) (*models.RequirementSpec, error)
	SaveRequirementSpec(ctx context.Context, spec *models.RequirementSpec) error

	GetTemplate(ctx context.Context, id int64) (*models.CompanyTemplate, error)
	ListTemplates(ctx context.Context, page, size int) ([]*models.CompanyTemplate, dto.PaginationInfo, error)
	CreateTemplate(ctx context.Context, tmpl *models.CompanyTemplate) error
	TemplateExists(ctx context.Context, name, companyName string) (bool, error)
}

// ApplicationStore writes applications and their write-once snapshots
type ApplicationStore interface {
	ApplicationExists(ctx context.Context, jobID, studentID int64) (bool, error)
	CreateApplication(ctx context.Context, app *models.Application) error
	CreateSnapshot(ctx context.Context, snap *models.ApplicationSnapshot) error
	GetSnapshot(ctx context.Context, applicationID int64) (*models.ApplicationSnapshot, error)
}

// Store is the full persistence gateway used by the services
type Store interface {
	StudentStore
	JobStore
	ApplicationStore
}

// Transactor runs fn against a Store bound to one transaction. Returning an
// error from fn rolls back every write made through that Store.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// Repositories holds all the repository instances
type Repositories struct {
	*StudentProfileRepository
	*ExtendedProfileRepository
	*JobPostingRepository
	*RequirementRepository
	*ApplicationRepository
}

// NewRepositories initializes all repositories over db
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		StudentProfileRepository:  NewStudentProfileRepository(db),
		ExtendedProfileRepository: NewExtendedProfileRepository(db),
		JobPostingRepository:      NewJobPostingRepository(db),
		RequirementRepository:     NewRequirementRepository(db),
		ApplicationRepository:     NewApplicationRepository(db),
	}
}

// TxManager opens database transactions and hands out tx-bound repositories
type TxManager struct {
	db *db.PostgresDB
}

// NewTxManager creates a TxManager
func NewTxManager(database *db.PostgresDB) *TxManager {
	return &TxManager{db: database}
}

// WithinTx implements Transactor
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	return m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

var (
	_ Store      = (*Repositories)(nil)
	_ Transactor = (*TxManager)(nil)
)
