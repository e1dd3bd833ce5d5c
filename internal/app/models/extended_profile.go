package models

import "time"

// ExtendedProfile holds the six independently completable secondary sections of
// a student profile ('extended_profiles' table, one row per student).
// Every field is nullable; booleans are tri-state and nil means "unset".
type ExtendedProfile struct {
	StudentID     int64                      `json:"studentId"`
	Academic      AcademicSection            `json:"academic"`
	Physical      PhysicalSection            `json:"physical"`
	Family        FamilySection              `json:"family"`
	Personal      PersonalSection            `json:"personal"`
	Documents     DocumentSection            `json:"documents"`
	EducationPref EducationPreferenceSection `json:"educationPreferences"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// AcademicSection is the academic-extended section
type AcademicSection struct {
	TenthPercentage   *float64 `json:"tenth_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	TwelfthPercentage *float64 `json:"twelfth_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	DiplomaPercentage *float64 `json:"diploma_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	EntranceExamRank  *int     `json:"entrance_exam_rank,omitempty" validate:"omitempty,gte=0"`
	EducationGapYears *int     `json:"education_gap_years,omitempty" validate:"omitempty,gte=0,lte=20"`
}

// PhysicalSection is the physical-details section
type PhysicalSection struct {
	HeightCM      *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0,lte=300"`
	WeightKG      *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0,lte=500"`
	BloodGroup    *string  `json:"blood_group,omitempty"`
	Eyesight      *string  `json:"eyesight,omitempty"`
	HasDisability *bool    `json:"has_disability,omitempty"`
}

// FamilySection is the family-details section
type FamilySection struct {
	FatherName         *string  `json:"father_name,omitempty"`
	FatherOccupation   *string  `json:"father_occupation,omitempty"`
	MotherName         *string  `json:"mother_name,omitempty"`
	MotherOccupation   *string  `json:"mother_occupation,omitempty"`
	AnnualFamilyIncome *float64 `json:"annual_family_income,omitempty" validate:"omitempty,gte=0"`
	SiblingCount       *int     `json:"sibling_count,omitempty" validate:"omitempty,gte=0,lte=30"`
}

// PersonalSection is the personal-details section
type PersonalSection struct {
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	Nationality      *string    `json:"nationality,omitempty"`
	PermanentAddress *string    `json:"permanent_address,omitempty"`
	AlternatePhone   *string    `json:"alternate_phone,omitempty" validate:"omitempty,max=20"`
}

// DocumentSection is the document-verification section
type DocumentSection struct {
	AadhaarVerified    *bool `json:"aadhaar_verified,omitempty"`
	PanVerified        *bool `json:"pan_verified,omitempty"`
	PassportVerified   *bool `json:"passport_verified,omitempty"`
	MarksheetsVerified *bool `json:"marksheets_verified,omitempty"`
}

// EducationPreferenceSection is the education-preferences section
type EducationPreferenceSection struct {
	PrefersPlacement        *bool `json:"prefers_placement,omitempty"`
	PrefersHigherStudies    *bool `json:"prefers_higher_studies,omitempty"`
	PrefersEntrepreneurship *bool `json:"prefers_entrepreneurship,omitempty"`
}

// SectionCompletion is the derived completion record keyed by (student, section)
type SectionCompletion struct {
	StudentID   int64     `json:"studentId" db:"student_id"`
	Section     string    `json:"section" db:"section"`
	IsCompleted bool      `json:"isCompleted" db:"is_completed"`
	Percentage  int       `json:"percentage" db:"percentage"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
