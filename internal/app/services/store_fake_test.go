package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/app/repositories"
	"github.com/yigit/placement/internal/app/sections"
	"github.com/yigit/placement/internal/pkg/apperrors"
	"github.com/yigit/placement/internal/pkg/helpers"
)

// memState is the full content of the fake database
type memState struct {
	profiles    map[int64]models.StudentProfile
	extended    map[int64]models.ExtendedProfile
	completions map[int64]map[string]models.SectionCompletion
	jobs        map[int64]models.JobPosting
	specs       map[int64]models.RequirementSpec
	templates   []models.CompanyTemplate
	apps        []models.Application
	snapshots   map[int64]models.ApplicationSnapshot
	nextID      int64
}

func newMemState() *memState {
	return &memState{
		profiles:    map[int64]models.StudentProfile{},
		extended:    map[int64]models.ExtendedProfile{},
		completions: map[int64]map[string]models.SectionCompletion{},
		jobs:        map[int64]models.JobPosting{},
		specs:       map[int64]models.RequirementSpec{},
		snapshots:   map[int64]models.ApplicationSnapshot{},
		nextID:      1000,
	}
}

// clone copies every table. Stored pointer fields are never written through,
// so copying the structs is enough.
func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.extended {
		c.extended[k] = v
	}
	for k, m := range s.completions {
		inner := make(map[string]models.SectionCompletion, len(m))
		for name, rec := range m {
			inner[name] = rec
		}
		c.completions[k] = inner
	}
	for k, v := range s.jobs {
		c.jobs[k] = v
	}
	for k, v := range s.specs {
		c.specs[k] = v
	}
	c.templates = append(c.templates, s.templates...)
	c.apps = append(c.apps, s.apps...)
	for k, v := range s.snapshots {
		c.snapshots[k] = v
	}
	c.nextID = s.nextID
	return c
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// memDB is an in-memory Store and Transactor. Transactions are serialized and
// work on a private copy that replaces the committed state only on success.
type memDB struct {
	mu    sync.Mutex
	state *memState
	// skipDuplicateCheck makes ApplicationExists always report false, leaving
	// the uniqueness guard of CreateApplication as the only protection.
	skipDuplicateCheck bool
	memStore
}

func newMemDB() *memDB {
	db := &memDB{state: newMemState()}
	db.memStore = memStore{db: db, locked: true}
	return db
}

// WithinTx implements repositories.Transactor
func (d *memDB) WithinTx(ctx context.Context, fn func(ctx context.Context, store repositories.Store) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	work := d.state.clone()
	if err := fn(ctx, &memStore{db: d, st: work}); err != nil {
		return err
	}
	*d.state = *work
	return nil
}

func (d *memDB) applications() []models.Application {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.Application(nil), d.state.apps...)
}

func (d *memDB) storedExtended(studentID int64) (models.ExtendedProfile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.state.extended[studentID]
	return e, ok
}

func (d *memDB) storedCompletions(studentID int64) map[string]models.SectionCompletion {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := map[string]models.SectionCompletion{}
	for k, v := range d.state.completions[studentID] {
		out[k] = v
	}
	return out
}

func (d *memDB) addProfile(p models.StudentProfile) {
	d.state.profiles[p.ID] = p
}

func (d *memDB) addExtended(e models.ExtendedProfile) {
	d.state.extended[e.StudentID] = e
}

func (d *memDB) addJob(j models.JobPosting) {
	d.state.jobs[j.ID] = j
}

func (d *memDB) addSpec(s models.RequirementSpec) {
	d.state.specs[s.JobID] = s
}

// memStore implements repositories.Store over either the committed state
// (locked) or a transaction's working copy.
type memStore struct {
	db     *memDB
	st     *memState
	locked bool
}

func (m *memStore) view() (*memState, func()) {
	if m.locked {
		m.db.mu.Lock()
		return m.db.state, m.db.mu.Unlock
	}
	return m.st, func() {}
}

func (m *memStore) GetStudentProfile(ctx context.Context, id int64) (*models.StudentProfile, error) {
	st, unlock := m.view()
	defer unlock()
	p, ok := st.profiles[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &p, nil
}

func (m *memStore) GetStudentProfileForUpdate(ctx context.Context, id int64) (*models.StudentProfile, error) {
	return m.GetStudentProfile(ctx, id)
}

func (m *memStore) GetStudentProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	st, unlock := m.view()
	defer unlock()
	for _, p := range st.profiles {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (m *memStore) ListStudentProfiles(ctx context.Context, filter repositories.StudentFilter) ([]*models.StudentProfile, error) {
	st, unlock := m.view()
	defer unlock()
	out := []*models.StudentProfile{}
	for _, p := range st.profiles {
		if filter.RegistrationStatus != "" && p.RegistrationStatus != filter.RegistrationStatus {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpdateProfileCompletion(ctx context.Context, studentID int64, percentage int) error {
	st, unlock := m.view()
	defer unlock()
	p, ok := st.profiles[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	p.ProfileCompletion = percentage
	st.profiles[studentID] = p
	return nil
}

func (m *memStore) GetExtendedProfile(ctx context.Context, studentID int64) (*models.ExtendedProfile, error) {
	st, unlock := m.view()
	defer unlock()
	e, ok := st.extended[studentID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memStore) ListExtendedProfiles(ctx context.Context, studentIDs []int64) (map[int64]*models.ExtendedProfile, error) {
	st, unlock := m.view()
	defer unlock()
	out := map[int64]*models.ExtendedProfile{}
	for _, id := range studentIDs {
		if e, ok := st.extended[id]; ok {
			e := e
			out[id] = &e
		}
	}
	return out, nil
}

// SaveExtendedProfileSections mirrors the column-wise upsert: only the
// touched sections are replaced.
func (m *memStore) SaveExtendedProfileSections(ctx context.Context, profile *models.ExtendedProfile, touched []sections.Section) error {
	if len(touched) == 0 {
		return nil
	}
	st, unlock := m.view()
	defer unlock()
	stored := st.extended[profile.StudentID]
	stored.StudentID = profile.StudentID
	for _, name := range touched {
		switch name {
		case sections.Academic:
			stored.Academic = profile.Academic
		case sections.Physical:
			stored.Physical = profile.Physical
		case sections.Family:
			stored.Family = profile.Family
		case sections.Personal:
			stored.Personal = profile.Personal
		case sections.Documents:
			stored.Documents = profile.Documents
		case sections.EducationPreferences:
			stored.EducationPref = profile.EducationPref
		}
	}
	stored.UpdatedAt = time.Now()
	st.extended[profile.StudentID] = stored
	return nil
}

func (m *memStore) UpsertSectionCompletion(ctx context.Context, rec models.SectionCompletion) error {
	st, unlock := m.view()
	defer unlock()
	if st.completions[rec.StudentID] == nil {
		st.completions[rec.StudentID] = map[string]models.SectionCompletion{}
	}
	st.completions[rec.StudentID][rec.Section] = rec
	return nil
}

func (m *memStore) ListSectionCompletions(ctx context.Context, studentID int64) ([]models.SectionCompletion, error) {
	st, unlock := m.view()
	defer unlock()
	out := []models.SectionCompletion{}
	for _, rec := range st.completions[studentID] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

func (m *memStore) GetJobPosting(ctx context.Context, id int64) (*models.JobPosting, error) {
	st, unlock := m.view()
	defer unlock()
	j, ok := st.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return &j, nil
}

func (m *memStore) GetRequirementSpec(ctx context.Context, jobID int64) (*models.RequirementSpec, error) {
	st, unlock := m.view()
	defer unlock()
	s, ok := st.specs[jobID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) SaveRequirementSpec(ctx context.Context, spec *models.RequirementSpec) error {
	st, unlock := m.view()
	defer unlock()
	if existing, ok := st.specs[spec.JobID]; ok {
		spec.ID = existing.ID
		spec.CreatedAt = existing.CreatedAt
	} else {
		spec.ID = st.id()
		spec.CreatedAt = time.Now()
	}
	spec.UpdatedAt = time.Now()
	st.specs[spec.JobID] = *spec
	return nil
}

func (m *memStore) GetTemplate(ctx context.Context, id int64) (*models.CompanyTemplate, error) {
	st, unlock := m.view()
	defer unlock()
	for _, t := range st.templates {
		if t.ID == id {
			t := t
			return &t, nil
		}
	}
	return nil, apperrors.ErrTemplateNotFound
}

func (m *memStore) ListTemplates(ctx context.Context, page, size int) ([]*models.CompanyTemplate, dto.PaginationInfo, error) {
	st, unlock := m.view()
	defer unlock()
	pagination := helpers.NewPaginationInfo(int64(len(st.templates)), page, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	out := []*models.CompanyTemplate{}
	for i := int(offset); i < len(st.templates) && i < int(offset+limit); i++ {
		t := st.templates[i]
		out = append(out, &t)
	}
	return out, pagination, nil
}

func (m *memStore) CreateTemplate(ctx context.Context, tmpl *models.CompanyTemplate) error {
	st, unlock := m.view()
	defer unlock()
	tmpl.ID = st.id()
	tmpl.CreatedAt = time.Now()
	st.templates = append(st.templates, *tmpl)
	return nil
}

func (m *memStore) TemplateExists(ctx context.Context, name, companyName string) (bool, error) {
	st, unlock := m.view()
	defer unlock()
	for _, t := range st.templates {
		if t.Name == name && t.CompanyName == companyName {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ApplicationExists(ctx context.Context, jobID, studentID int64) (bool, error) {
	if m.db.skipDuplicateCheck {
		return false, nil
	}
	st, unlock := m.view()
	defer unlock()
	for _, a := range st.apps {
		if a.JobID == jobID && a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// CreateApplication enforces the (job, student) uniqueness like the database constraint
func (m *memStore) CreateApplication(ctx context.Context, app *models.Application) error {
	st, unlock := m.view()
	defer unlock()
	for _, a := range st.apps {
		if a.JobID == app.JobID && a.StudentID == app.StudentID {
			return apperrors.ErrAlreadyApplied
		}
	}
	app.ID = st.id()
	app.AppliedAt = time.Now()
	st.apps = append(st.apps, *app)
	return nil
}

func (m *memStore) CreateSnapshot(ctx context.Context, snap *models.ApplicationSnapshot) error {
	st, unlock := m.view()
	defer unlock()
	if _, ok := st.snapshots[snap.ApplicationID]; ok {
		return apperrors.ErrSnapshotWritten
	}
	snap.ID = st.id()
	snap.CreatedAt = time.Now()
	st.snapshots[snap.ApplicationID] = copySnapshot(*snap)
	return nil
}

func (m *memStore) GetSnapshot(ctx context.Context, applicationID int64) (*models.ApplicationSnapshot, error) {
	st, unlock := m.view()
	defer unlock()
	snap, ok := st.snapshots[applicationID]
	if !ok {
		return nil, apperrors.ErrAppNotFound
	}
	out := copySnapshot(snap)
	return &out, nil
}

// copySnapshot detaches the maps and slices of a snapshot, as a JSONB round trip would
func copySnapshot(s models.ApplicationSnapshot) models.ApplicationSnapshot {
	profile := make(map[string]interface{}, len(s.ProfileData))
	for k, v := range s.ProfileData {
		profile[k] = v
	}
	answers := make(map[string]interface{}, len(s.CustomAnswers))
	for k, v := range s.CustomAnswers {
		answers[k] = v
	}
	s.ProfileData = profile
	s.CustomAnswers = answers
	s.ValidationErrors = append([]string{}, s.ValidationErrors...)
	return s
}
