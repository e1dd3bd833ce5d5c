package models

import "time"

// TargetType restricts which students a job posting is offered to
type TargetType string

const (
	TargetAll      TargetType = "all"
	TargetRegion   TargetType = "region"
	TargetCollege  TargetType = "college"
	TargetSpecific TargetType = "specific"
)

// Valid reports whether t is a known target type
func (t TargetType) Valid() bool {
	switch t {
	case TargetAll, TargetRegion, TargetCollege, TargetSpecific:
		return true
	}
	return false
}

// EligibilityCriteria holds the primary (Tier 1) thresholds. Nil pointers and
// empty slices mean "not configured".
type EligibilityCriteria struct {
	MinCGPA     *float64 `json:"minCgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	MaxBacklogs *int     `json:"maxBacklogs,omitempty" validate:"omitempty,gte=0"`
	// BacklogSemesterBoundary is the legacy range mode: backlogs after this semester are disallowed
	BacklogSemesterBoundary *int     `json:"backlogSemesterBoundary,omitempty" validate:"omitempty,min=1,max=6"`
	AllowedBacklogSemesters []int    `json:"allowedBacklogSemesters,omitempty" validate:"omitempty,dive,min=1,max=6"`
	AllowedBranches         []string `json:"allowedBranches,omitempty" validate:"omitempty,dive,required"`
}

// JobPosting defines the job model based on the 'job_postings' table
type JobPosting struct {
	ID          int64  `json:"id" db:"id"`
	CompanyName string `json:"companyName" db:"company_name"`
	Title       string `json:"title" db:"title"`

	EligibilityCriteria

	TargetType       TargetType `json:"targetType" db:"target_type"`
	TargetRegionIDs  []int64    `json:"targetRegionIds,omitempty" db:"target_region_ids"`
	TargetCollegeIDs []int64    `json:"targetCollegeIds,omitempty" db:"target_college_ids"`

	IsActive  bool       `json:"isActive" db:"is_active"`
	Deadline  *time.Time `json:"deadline,omitempty" db:"deadline"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}
