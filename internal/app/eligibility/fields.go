package eligibility

import (
	"fmt"
	"time"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/sections"
)

// Applicant is the merged view of a student's primary and secondary profile
type Applicant struct {
	Profile  *models.StudentProfile
	Extended *models.ExtendedProfile
}

// source reads one candidate value for a field; nil means "no value here"
type source struct {
	name string
	get  func(a Applicant) interface{}
}

type fieldSpec struct {
	label   string
	kind    sections.Kind
	sources []source
}

// Field precedence, first non-nil source wins:
//
//	cgpa                  profile.programme_cgpa, profile.cgpa (legacy)
//	tenth_percentage      extended.academic, profile.tenth_percentage (legacy)
//	twelfth_percentage    extended.academic, profile.twelfth_percentage (legacy)
//	semN_cgpa             profile.semester_cgpa[N]
//	semN_backlogs         profile.semester_backlogs[N]
//	total_backlogs        sum of profile.semester_backlogs
//	any other section key extended.<section>
var registry = map[string]fieldSpec{}

func init() {
	for _, f := range sections.Fields() {
		registry[f.Key] = fieldSpec{label: f.Label, kind: f.Kind, sources: []source{fromExtended(f)}}
	}

	legacyTenth := fromProfile("profile.tenth_percentage", func(p *models.StudentProfile) interface{} { return floatValue(p.TenthPercentage) })
	legacyTwelfth := fromProfile("profile.twelfth_percentage", func(p *models.StudentProfile) interface{} { return floatValue(p.TwelfthPercentage) })
	tenth := registry["tenth_percentage"]
	tenth.sources = append(tenth.sources, legacyTenth)
	registry["tenth_percentage"] = tenth
	twelfth := registry["twelfth_percentage"]
	twelfth.sources = append(twelfth.sources, legacyTwelfth)
	registry["twelfth_percentage"] = twelfth

	registry["cgpa"] = fieldSpec{
		label: "CGPA",
		kind:  sections.KindNumber,
		sources: []source{
			fromProfile("profile.programme_cgpa", func(p *models.StudentProfile) interface{} { return floatValue(p.ProgrammeCGPA) }),
			fromProfile("profile.cgpa", func(p *models.StudentProfile) interface{} { return floatValue(p.CGPA) }),
		},
	}
	registry["total_backlogs"] = fieldSpec{
		label: "Total backlogs",
		kind:  sections.KindNumber,
		sources: []source{
			fromProfile("profile.semester_backlogs", func(p *models.StudentProfile) interface{} { return p.TotalBacklogs() }),
		},
	}
	for i := 0; i < models.SemesterCount; i++ {
		idx := i
		registry[fmt.Sprintf("sem%d_cgpa", idx+1)] = fieldSpec{
			label: fmt.Sprintf("Semester %d CGPA", idx+1),
			kind:  sections.KindNumber,
			sources: []source{
				fromProfile(fmt.Sprintf("profile.semester_cgpa[%d]", idx+1), func(p *models.StudentProfile) interface{} { return floatValue(p.SemesterCGPA[idx]) }),
			},
		}
		registry[fmt.Sprintf("sem%d_backlogs", idx+1)] = fieldSpec{
			label: fmt.Sprintf("Semester %d backlogs", idx+1),
			kind:  sections.KindNumber,
			sources: []source{
				fromProfile(fmt.Sprintf("profile.semester_backlogs[%d]", idx+1), func(p *models.StudentProfile) interface{} { return intValue(p.SemesterBacklogs[idx]) }),
			},
		}
	}
}

func fromExtended(f sections.FieldDef) source {
	return source{
		name: "extended." + string(f.Section),
		get:  func(a Applicant) interface{} { return f.Value(a.Extended) },
	}
}

func fromProfile(name string, get func(p *models.StudentProfile) interface{}) source {
	return source{
		name: name,
		get: func(a Applicant) interface{} {
			if a.Profile == nil {
				return nil
			}
			return get(a.Profile)
		},
	}
}

func floatValue(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func intValue(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// KnownField reports whether key can be resolved against an applicant
func KnownField(key string) bool {
	_, ok := registry[key]
	return ok
}

// NumericField reports whether key resolves to a number and can carry min/max constraints
func NumericField(key string) bool {
	spec, ok := registry[key]
	return ok && (spec.kind == sections.KindNumber || spec.kind == sections.KindCount)
}

// FieldLabel returns the display label of a field, falling back to the key
func FieldLabel(key string) string {
	if spec, ok := registry[key]; ok {
		return spec.label
	}
	return key
}

// Precedence returns the ordered source names consulted for key
func Precedence(key string) []string {
	spec, ok := registry[key]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(spec.sources))
	for _, s := range spec.sources {
		names = append(names, s.name)
	}
	return names
}

// Resolve returns the value of a field following the precedence table, or nil
func (a Applicant) Resolve(key string) interface{} {
	spec, ok := registry[key]
	if !ok {
		return nil
	}
	for _, s := range spec.sources {
		if v := s.get(a); v != nil {
			return v
		}
	}
	return nil
}

// ResolveNumber resolves a field and converts it to float64
func (a Applicant) ResolveNumber(key string) (float64, bool) {
	switch v := a.Resolve(key).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Snapshot copies every resolvable field into a plain map. Dates are rendered
// as YYYY-MM-DD so the copy holds only immutable scalar values.
func (a Applicant) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(registry)+1)
	for key := range registry {
		v := a.Resolve(key)
		if t, ok := v.(time.Time); ok {
			v = t.Format("2006-01-02")
		}
		out[key] = v
	}
	if a.Profile != nil {
		out["branch"] = a.Profile.Branch
	}
	return out
}
