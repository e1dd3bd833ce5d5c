package sections

import (
	"math"
	"time"

	"github.com/yigit/placement/internal/app/models"
)

// Resolver resolves a field key against a merged profile view. It returns nil
// when the field has no value.
type Resolver interface {
	Resolve(key string) interface{}
}

// Completion is the derived state of one section
type Completion struct {
	Section     Section
	IsCompleted bool
	Percentage  int
}

// Compute derives the completion of a section from the merged profile view r.
// It is a pure function of the field values, so recomputing it is idempotent.
func (d Definition) Compute(r Resolver) Completion {
	total := len(d.Fields)
	if total == 0 {
		return Completion{Section: d.Section}
	}

	filled := 0
	for _, f := range d.Fields {
		v := r.Resolve(f.Key)
		switch d.Rule {
		case RuleVerifiedOnly, RuleAnySelected:
			if b, ok := v.(bool); ok && b {
				filled++
			}
		default:
			if Present(f.Kind, v) {
				filled++
			}
		}
	}

	if d.Rule == RuleAnySelected {
		if filled > 0 {
			return Completion{Section: d.Section, IsCompleted: true, Percentage: 100}
		}
		return Completion{Section: d.Section}
	}

	return Completion{
		Section:     d.Section,
		IsCompleted: filled > 0,
		Percentage:  int(math.Round(float64(filled) * 100 / float64(total))),
	}
}

// Missing returns the defining fields of the section that an applicant still
// has to supply. A zero count is an answer here. For choice sections every
// option is reported until one is picked.
func (d Definition) Missing(r Resolver) []FieldDef {
	if d.Rule == RuleAnySelected {
		if d.Compute(r).IsCompleted {
			return nil
		}
		out := make([]FieldDef, len(d.Fields))
		copy(out, d.Fields)
		return out
	}

	var missing []FieldDef
	for _, f := range d.Fields {
		if !Filled(f.Kind, r.Resolve(f.Key)) {
			missing = append(missing, f)
		}
	}
	return missing
}

// ComputeAll derives the completion of every section in display order
func ComputeAll(r Resolver) []Completion {
	out := make([]Completion, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.Compute(r))
	}
	return out
}

// Overall is the aggregate profile completion: the rounded mean of every
// section's percentage. Sections without a record count as 0%.
func Overall(records []models.SectionCompletion) int {
	if len(definitions) == 0 {
		return 0
	}
	byName := make(map[string]int, len(records))
	for _, rec := range records {
		byName[rec.Section] = rec.Percentage
	}
	sum := 0
	for _, def := range definitions {
		sum += byName[string(def.Section)]
	}
	return int(math.Round(float64(sum) / float64(len(definitions))))
}

// Record converts a computed completion into its persisted form
func (c Completion) Record(studentID int64, now time.Time) models.SectionCompletion {
	return models.SectionCompletion{
		StudentID:   studentID,
		Section:     string(c.Section),
		IsCompleted: c.IsCompleted,
		Percentage:  c.Percentage,
		UpdatedAt:   now,
	}
}
