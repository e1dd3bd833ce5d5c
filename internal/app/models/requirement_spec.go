package models

import "time"

// FieldConstraint is a per-field numeric constraint of a requirement spec
type FieldConstraint struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Required bool     `json:"required"`
}

// CustomFieldType enumerates the answer types of job-specific (Tier 3) fields
type CustomFieldType string

const (
	CustomFieldText    CustomFieldType = "text"
	CustomFieldNumber  CustomFieldType = "number"
	CustomFieldSelect  CustomFieldType = "select"
	CustomFieldBoolean CustomFieldType = "boolean"
)

// CustomField is a job-specific question answered per application
type CustomField struct {
	Key       string          `json:"key" validate:"required,max=64"`
	Label     string          `json:"label" validate:"required,max=200"`
	Type      CustomFieldType `json:"type" validate:"required,oneof=text number select boolean"`
	Required  bool            `json:"required"`
	Options   []string        `json:"options,omitempty" validate:"required_if=Type select"`
	Min       *float64        `json:"min,omitempty"`
	Max       *float64        `json:"max,omitempty"`
	MaxLength int             `json:"maxLength,omitempty" validate:"omitempty,min=1"`
}

// Requirements is the criteria payload shared by a job's RequirementSpec and a
// reusable CompanyTemplate.
type Requirements struct {
	EligibilityCriteria

	// RequiredSections lists the secondary (Tier 2) sections an applicant must fill
	RequiredSections []string `json:"requiredSections,omitempty"`
	// FieldRequirements maps a profile field key to its numeric constraint
	FieldRequirements map[string]FieldConstraint `json:"specificFieldRequirements,omitempty"`
	// CustomFields is the ordered list of job-specific questions
	CustomFields []CustomField `json:"customFields,omitempty" validate:"omitempty,dive"`
}

// RequirementSpec is the optional per-job override based on the 'requirement_specs' table
type RequirementSpec struct {
	ID    int64 `json:"id"`
	JobID int64 `json:"jobId"`
	Requirements
	TemplateID *int64    `json:"templateId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CompanyTemplate is a reusable, unbound set of requirements ('company_templates' table)
type CompanyTemplate struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Requirements
	CreatedBy int64     `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
