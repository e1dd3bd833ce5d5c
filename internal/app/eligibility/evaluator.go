// Package eligibility decides whether an applicant may apply to a job. The
// same pure Evaluate function serves the readiness pre-check, the submission
// re-check and the cohort count.
package eligibility

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/sections"
)

// Mode selects when the evaluation runs. Fixable gaps (missing section data,
// absent required fields) are advisory in PreCheck and blocking in Submission.
type Mode int

const (
	PreCheck Mode = iota
	Submission
)

// Category groups reasons by the rule that produced them
type Category string

const (
	CategoryTargeting  Category = "targeting"
	CategoryCGPA       Category = "cgpa"
	CategoryBacklog    Category = "backlog"
	CategoryBranch     Category = "branch"
	CategorySection    Category = "section"
	CategoryConstraint Category = "constraint"
)

// Reason is one itemized finding of an evaluation
type Reason struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Blocking bool     `json:"blocking"`
	Category Category `json:"category"`
}

// Verdict is the outcome of an evaluation
type Verdict struct {
	Reasons []Reason `json:"reasons"`
}

// Eligible reports whether no reason is blocking
func (v Verdict) Eligible() bool { return !v.HasBlocking() }

// Ready reports whether there are no reasons at all
func (v Verdict) Ready() bool { return len(v.Reasons) == 0 }

// HasBlocking reports whether any reason is blocking
func (v Verdict) HasBlocking() bool {
	for _, r := range v.Reasons {
		if r.Blocking {
			return true
		}
	}
	return false
}

// AbortsSubmission reports whether a blocking reason came from a section or
// per-field constraint. Such a submission is refused without any write.
func (v Verdict) AbortsSubmission() bool {
	for _, r := range v.Reasons {
		if r.Blocking && (r.Category == CategorySection || r.Category == CategoryConstraint) {
			return true
		}
	}
	return false
}

// Messages returns the messages of every reason, or of blocking reasons only
func (v Verdict) Messages(blockingOnly bool) []string {
	out := make([]string, 0, len(v.Reasons))
	for _, r := range v.Reasons {
		if blockingOnly && !r.Blocking {
			continue
		}
		out = append(out, r.Message)
	}
	return out
}

// Input is everything Evaluate needs; Spec may be nil
type Input struct {
	Job       *models.JobPosting
	Spec      *models.RequirementSpec
	Applicant Applicant
}

// Evaluate runs every applicable check and collects all reasons; no check
// short-circuits another.
func Evaluate(in Input, mode Mode) Verdict {
	c := Merge(in.Job, in.Spec)
	profile := in.Applicant.Profile
	if profile == nil {
		profile = &models.StudentProfile{}
	}

	var reasons []Reason
	if in.Job != nil {
		reasons = append(reasons, checkTargeting(in.Job, profile)...)
	}
	reasons = append(reasons, checkCGPA(c, in.Applicant)...)
	reasons = append(reasons, checkBacklogs(c, profile)...)
	reasons = append(reasons, checkBranch(c, profile)...)
	reasons = append(reasons, checkSections(c, in.Applicant, mode)...)
	reasons = append(reasons, checkConstraints(c, in.Applicant, mode)...)
	return Verdict{Reasons: reasons}
}

func checkTargeting(job *models.JobPosting, p *models.StudentProfile) []Reason {
	regionSet := len(job.TargetRegionIDs) > 0
	collegeSet := len(job.TargetCollegeIDs) > 0
	regionOK := containsID(job.TargetRegionIDs, p.RegionID)
	collegeOK := containsID(job.TargetCollegeIDs, p.CollegeID)

	fail := func(field, msg string) []Reason {
		return []Reason{{Field: field, Message: msg, Blocking: true, Category: CategoryTargeting}}
	}

	switch job.TargetType {
	case models.TargetRegion:
		if regionSet && !regionOK {
			return fail("region", "This job is not open to students of your region")
		}
	case models.TargetCollege:
		if collegeSet && !collegeOK {
			return fail("college", "This job is not open to students of your college")
		}
	case models.TargetSpecific:
		switch {
		case regionSet && collegeSet:
			if !regionOK && !collegeOK {
				return fail("targeting", "This job is not open to your region or college")
			}
		case regionSet && !regionOK:
			return fail("region", "This job is not open to students of your region")
		case collegeSet && !collegeOK:
			return fail("college", "This job is not open to students of your college")
		}
	}
	return nil
}

func checkCGPA(c Criteria, a Applicant) []Reason {
	if c.MinCGPA == nil {
		return nil
	}
	minimum := *c.MinCGPA
	cgpa, ok := a.ResolveNumber("cgpa")
	if !ok {
		return []Reason{{
			Field:    "cgpa",
			Message:  fmt.Sprintf("CGPA below minimum: %s (current: not recorded)", formatNumber(minimum)),
			Blocking: true,
			Category: CategoryCGPA,
		}}
	}
	if cgpa < minimum {
		return []Reason{{
			Field:    "cgpa",
			Message:  fmt.Sprintf("CGPA below minimum: %s (current: %s)", formatNumber(minimum), formatNumber(cgpa)),
			Blocking: true,
			Category: CategoryCGPA,
		}}
	}
	return nil
}

// checkBacklogs applies exactly one policy: semester whitelist, then semester
// boundary, then plain total. Without a cap nothing is checked.
func checkBacklogs(c Criteria, p *models.StudentProfile) []Reason {
	if c.MaxBacklogs == nil {
		return nil
	}
	limit := *c.MaxBacklogs
	block := func(msg string) Reason {
		return Reason{Field: "backlogs", Message: msg, Blocking: true, Category: CategoryBacklog}
	}

	var reasons []Reason
	switch {
	case len(c.AllowedBacklogSemesters) > 0:
		allowed := make(map[int]bool, len(c.AllowedBacklogSemesters))
		for _, s := range c.AllowedBacklogSemesters {
			allowed[s] = true
		}
		inside := 0
		var outside []string
		for sem := 1; sem <= models.SemesterCount; sem++ {
			n := p.BacklogsIn(sem)
			if n == 0 {
				continue
			}
			if allowed[sem] {
				inside += n
			} else {
				outside = append(outside, strconv.Itoa(sem))
			}
		}
		if len(outside) > 0 {
			reasons = append(reasons, block("Backlogs not allowed in semester(s): "+strings.Join(outside, ", ")))
		}
		if inside > limit {
			reasons = append(reasons, block(fmt.Sprintf("Backlogs in allowed semesters exceed maximum: %d (current: %d)", limit, inside)))
		}

	case c.BacklogSemesterBoundary != nil:
		boundary := *c.BacklogSemesterBoundary
		upTo, after := 0, 0
		for sem := 1; sem <= models.SemesterCount; sem++ {
			if sem <= boundary {
				upTo += p.BacklogsIn(sem)
			} else {
				after += p.BacklogsIn(sem)
			}
		}
		if after > 0 {
			reasons = append(reasons, block(fmt.Sprintf("Backlogs not allowed after semester %d (current: %d)", boundary, after)))
		}
		if upTo > limit {
			reasons = append(reasons, block(fmt.Sprintf("Backlogs up to semester %d exceed maximum: %d (current: %d)", boundary, limit, upTo)))
		}

	default:
		if total := p.TotalBacklogs(); total > limit {
			reasons = append(reasons, block(fmt.Sprintf("Backlogs exceed maximum: %d (current: %d)", limit, total)))
		}
	}
	return reasons
}

func checkBranch(c Criteria, p *models.StudentProfile) []Reason {
	if BranchAllowed(p.Branch, c.AllowedBranches) {
		return nil
	}
	return []Reason{{
		Field:    "branch",
		Message:  fmt.Sprintf("Branch %q is not eligible (allowed: %s)", strings.TrimSpace(p.Branch), strings.Join(c.AllowedBranches, ", ")),
		Blocking: true,
		Category: CategoryBranch,
	}}
}

func checkSections(c Criteria, a Applicant, mode Mode) []Reason {
	var reasons []Reason
	for _, name := range c.RequiredSections {
		def, ok := sections.Lookup(name)
		if !ok {
			continue
		}
		missing := def.Missing(a)
		if len(missing) == 0 {
			continue
		}
		labels := make([]string, 0, len(missing))
		for _, f := range missing {
			labels = append(labels, f.Label)
		}
		msg := fmt.Sprintf("%s incomplete: missing %s", def.Label, strings.Join(labels, ", "))
		if def.Rule == sections.RuleAnySelected {
			msg = fmt.Sprintf("%s incomplete: select at least one of %s", def.Label, strings.Join(labels, ", "))
		}
		reasons = append(reasons, Reason{
			Field:    name,
			Message:  msg,
			Blocking: mode == Submission,
			Category: CategorySection,
		})
	}
	return reasons
}

func checkConstraints(c Criteria, a Applicant, mode Mode) []Reason {
	keys := make([]string, 0, len(c.FieldRequirements))
	for k := range c.FieldRequirements {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var reasons []Reason
	for _, key := range keys {
		rule := c.FieldRequirements[key]
		label := FieldLabel(key)
		spec, known := registry[key]

		v := a.Resolve(key)
		if !known || !sections.Filled(spec.kind, v) {
			if rule.Required {
				reasons = append(reasons, Reason{
					Field:    key,
					Message:  fmt.Sprintf("%s is required", label),
					Blocking: mode == Submission,
					Category: CategoryConstraint,
				})
			}
			continue
		}

		n, ok := a.ResolveNumber(key)
		if !ok {
			continue
		}
		if rule.Min != nil && n < *rule.Min {
			reasons = append(reasons, Reason{
				Field:    key,
				Message:  fmt.Sprintf("%s below minimum: %s (current: %s)", label, formatNumber(*rule.Min), formatNumber(n)),
				Blocking: true,
				Category: CategoryConstraint,
			})
		}
		if rule.Max != nil && n > *rule.Max {
			reasons = append(reasons, Reason{
				Field:    key,
				Message:  fmt.Sprintf("%s above maximum: %s (current: %s)", label, formatNumber(*rule.Max), formatNumber(n)),
				Blocking: true,
				Category: CategoryConstraint,
			})
		}
	}
	return reasons
}

// containsID reports whether id is in ids; a nil id matches nothing
func containsID(ids []int64, id *int64) bool {
	if id == nil {
		return false
	}
	for _, v := range ids {
		if v == *id {
			return true
		}
	}
	return false
}

// formatNumber renders 7 as "7" and 6.5 as "6.5"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
