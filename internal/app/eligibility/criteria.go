package eligibility

import (
	"regexp"
	"strings"

	"github.com/yigit/placement/internal/app/models"
)

// Criteria is the effective rule set for one job: the job's primary criteria
// overridden by its requirement spec where the spec configures a value.
type Criteria struct {
	models.EligibilityCriteria
	RequiredSections  []string
	FieldRequirements map[string]models.FieldConstraint
	CustomFields      []models.CustomField
}

// Merge builds the effective criteria of job, overridden by spec when non-nil
func Merge(job *models.JobPosting, spec *models.RequirementSpec) Criteria {
	var c Criteria
	if job != nil {
		c.EligibilityCriteria = job.EligibilityCriteria
	}
	if spec == nil {
		return c
	}

	s := spec.EligibilityCriteria
	if s.MinCGPA != nil {
		c.MinCGPA = s.MinCGPA
	}
	if s.MaxBacklogs != nil {
		c.MaxBacklogs = s.MaxBacklogs
	}
	// A semester backlog policy is replaced as a whole: a spec boundary drops an
	// inherited whitelist and the reverse.
	if s.BacklogSemesterBoundary != nil || len(s.AllowedBacklogSemesters) > 0 {
		c.BacklogSemesterBoundary = s.BacklogSemesterBoundary
		c.AllowedBacklogSemesters = s.AllowedBacklogSemesters
	}
	if len(s.AllowedBranches) > 0 {
		c.AllowedBranches = s.AllowedBranches
	}
	c.RequiredSections = spec.RequiredSections
	c.FieldRequirements = spec.FieldRequirements
	c.CustomFields = spec.CustomFields
	return c
}

// branchReplacements is applied in order before case folding
var branchReplacements = []struct{ from, to string }{
	{"&", " and "},
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeBranch lower-cases a branch name, spells out "&" and collapses whitespace
func NormalizeBranch(name string) string {
	for _, r := range branchReplacements {
		name = strings.ReplaceAll(name, r.from, r.to)
	}
	name = strings.ToLower(name)
	return strings.TrimSpace(whitespace.ReplaceAllString(name, " "))
}

// BranchAllowed reports whether branch matches one of allowed after normalization.
// An empty list allows every branch.
func BranchAllowed(branch string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	want := NormalizeBranch(branch)
	for _, a := range allowed {
		if NormalizeBranch(a) == want {
			return true
		}
	}
	return false
}
