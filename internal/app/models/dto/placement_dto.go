package dto

import (
	"time"

	"github.com/yigit/placement/internal/app/models"
)

// ReasonResponse is one itemized eligibility finding
type ReasonResponse struct {
	Field    string `json:"field" example:"cgpa"`
	Message  string `json:"message" example:"CGPA below minimum: 7 (current: 6.5)"`
	Blocking bool   `json:"blocking" example:"true"`
	Category string `json:"category" example:"cgpa" enums:"targeting,cgpa,backlog,branch,section,constraint"`
}

// ReadinessResponse is the advisory pre-check of an applicant against a job
type ReadinessResponse struct {
	JobID             int64                `json:"jobId" example:"12"`
	ReadyToApply      bool                 `json:"readyToApply" example:"false"`
	HasBlockingIssues bool                 `json:"hasBlockingIssues" example:"false"`
	AlreadyApplied    bool                 `json:"alreadyApplied" example:"false"`
	Deadline          *time.Time           `json:"deadline,omitempty"`
	Reasons           []ReasonResponse     `json:"reasons"`
	CustomFields      []models.CustomField `json:"customFields"`
}

// FieldDescriptor describes one form field together with its current value
type FieldDescriptor struct {
	Key          string      `json:"key" example:"height_cm"`
	Label        string      `json:"label" example:"Height (cm)"`
	Type         string      `json:"type" example:"number" enums:"number,text,boolean,date"`
	CurrentValue interface{} `json:"currentValue"`
	Required     bool        `json:"required" example:"true"`
	Min          *float64    `json:"min,omitempty" example:"155"`
	Max          *float64    `json:"max,omitempty"`
}

// MissingSection groups the missing fields of one profile section
type MissingSection struct {
	Section string            `json:"section" example:"physical"`
	Label   string            `json:"label" example:"Physical details"`
	Fields  []FieldDescriptor `json:"fields"`
}

// MissingFieldsResponse lists what an applicant still has to supply for a job
type MissingFieldsResponse struct {
	JobID        int64                `json:"jobId" example:"12"`
	Sections     []MissingSection     `json:"sections"`
	CustomFields []models.CustomField `json:"customFields"`
}

// SubmitApplicationRequest carries optional profile updates and custom answers
type SubmitApplicationRequest struct {
	ProfileUpdates *models.ExtendedProfile `json:"profileUpdates,omitempty"`
	CustomAnswers  map[string]interface{}  `json:"customAnswers,omitempty"`
}

// SubmitApplicationResponse is the outcome of a committed submission
type SubmitApplicationResponse struct {
	ApplicationID     int64    `json:"applicationId" example:"345"`
	Status            string   `json:"status" example:"submitted" enums:"submitted,rejected"`
	MeetsRequirements bool     `json:"meetsRequirements" example:"true"`
	ValidationErrors  []string `json:"validationErrors"`
}

// EligibilityCountResponse summarizes the cohort evaluation of a job
type EligibilityCountResponse struct {
	JobID      int64 `json:"jobId" example:"12"`
	Total      int   `json:"total" example:"120"`
	Eligible   int   `json:"eligible" example:"85"`
	Ineligible int   `json:"ineligible" example:"35"`
}

// CreateTemplateRequest creates a reusable company requirement template
type CreateTemplateRequest struct {
	Name         string              `json:"name" binding:"required,max=200" example:"Core engineering drive"`
	CompanyName  string              `json:"companyName" binding:"required,max=200" example:"Acme Ltd"`
	Requirements models.Requirements `json:"requirements"`
}

// TemplateListResponse is one page of company templates
type TemplateListResponse struct {
	Templates  []models.CompanyTemplate `json:"templates"`
	Pagination PaginationInfo           `json:"pagination"`
}

// SectionCompletionResponse is the completion state of one section
type SectionCompletionResponse struct {
	Section     string `json:"section" example:"physical"`
	Label       string `json:"label" example:"Physical details"`
	IsCompleted bool   `json:"isCompleted" example:"true"`
	Percentage  int    `json:"percentage" example:"60"`
}

// ProfileCompletionResponse is the per-section and overall completion of a profile
type ProfileCompletionResponse struct {
	StudentID int64                       `json:"studentId" example:"7"`
	Overall   int                         `json:"overall" example:"45"`
	Sections  []SectionCompletionResponse `json:"sections"`
}
