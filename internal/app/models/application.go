package models

import "time"

// ApplicationStatus is the lifecycle status of an application
type ApplicationStatus string

const (
	// ApplicationSubmitted is the initial status of an application meeting every requirement
	ApplicationSubmitted ApplicationStatus = "submitted"
	// ApplicationRejected is the initial status of an application recorded despite blocking reasons
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application defines the 'applications' table; unique per (job, student)
type Application struct {
	ID        int64             `json:"id" db:"id"`
	JobID     int64             `json:"jobId" db:"job_id"`
	StudentID int64             `json:"studentId" db:"student_id"`
	Status    ApplicationStatus `json:"status" db:"status"`
	AppliedAt time.Time         `json:"appliedAt" db:"applied_at"`
}

// ApplicationSnapshot is the write-once audit copy of the applicant's profile at
// submission time ('application_snapshots' table).
type ApplicationSnapshot struct {
	ID                int64                  `json:"id" db:"id"`
	ApplicationID     int64                  `json:"applicationId" db:"application_id"`
	ProfileData       map[string]interface{} `json:"profileData" db:"profile_data"`
	CustomAnswers     map[string]interface{} `json:"customAnswers" db:"custom_answers"`
	MeetsRequirements bool                   `json:"meetsRequirements" db:"meets_requirements"`
	ValidationErrors  []string               `json:"validationErrors" db:"validation_errors"`
	CreatedAt         time.Time              `json:"createdAt" db:"created_at"`
}
