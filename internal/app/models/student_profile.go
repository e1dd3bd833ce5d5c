package models

import "time"

// SemesterCount is the number of semesters tracked on a student profile
const SemesterCount = 6

// StudentProfile defines the core applicant record based on the 'student_profiles' table
type StudentProfile struct {
	ID       int64  `json:"id" db:"id"`
	UserID   int64  `json:"userId" db:"user_id"`
	FullName string `json:"fullName" db:"full_name"`
	Branch   string `json:"branch" db:"branch"`

	// ProgrammeCGPA is the authoritative CGPA; CGPA is the legacy column kept for older records
	ProgrammeCGPA *float64 `json:"programmeCgpa,omitempty" db:"programme_cgpa"`
	CGPA          *float64 `json:"cgpa,omitempty" db:"cgpa"`

	SemesterCGPA     [SemesterCount]*float64 `json:"semesterCgpa"`
	SemesterBacklogs [SemesterCount]*int     `json:"semesterBacklogs"`

	// Legacy school marks, duplicated by the academic-extended section
	TenthPercentage   *float64 `json:"tenthPercentage,omitempty" db:"tenth_percentage"`
	TwelfthPercentage *float64 `json:"twelfthPercentage,omitempty" db:"twelfth_percentage"`

	// Nil until the student is placed in a college or region
	CollegeID *int64 `json:"collegeId" db:"college_id"`
	RegionID  *int64 `json:"regionId" db:"region_id"`

	RegistrationStatus string    `json:"registrationStatus" db:"registration_status"`
	ProfileCompletion  int       `json:"profileCompletion" db:"profile_completion"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// TotalBacklogs sums the backlog count of every semester; unset semesters count as zero
func (p *StudentProfile) TotalBacklogs() int {
	total := 0
	for _, b := range p.SemesterBacklogs {
		if b != nil {
			total += *b
		}
	}
	return total
}

// BacklogsIn returns the backlog count of a 1-based semester
func (p *StudentProfile) BacklogsIn(semester int) int {
	if semester < 1 || semester > SemesterCount {
		return 0
	}
	if b := p.SemesterBacklogs[semester-1]; b != nil {
		return *b
	}
	return 0
}
