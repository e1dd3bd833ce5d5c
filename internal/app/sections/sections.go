// Package sections defines the secondary (Tier 2) profile sections once: their
// names, their defining fields and how each one is considered complete.
package sections

import (
	"github.com/yigit/placement/internal/app/models"
)

// Section identifies a secondary profile section
type Section string

const (
	Academic             Section = "academic_extended"
	Physical             Section = "physical"
	Family               Section = "family"
	Personal             Section = "personal"
	Documents            Section = "document_verification"
	EducationPreferences Section = "education_preferences"
)

// Kind is the value kind of a section field
type Kind int

const (
	KindNumber Kind = iota
	// KindCount is an integer whose stored default 0 does not count as filled
	KindCount
	KindText
	KindBool
	KindDate
)

// String returns the kind name used in form descriptors
func (k Kind) String() string {
	switch k {
	case KindNumber, KindCount:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	}
	return "unknown"
}

// Rule is how a section's completion is derived from its fields
type Rule int

const (
	// RuleAnyPresent: percentage = filled/N, completed when at least one field is filled
	RuleAnyPresent Rule = iota
	// RuleVerifiedOnly: like RuleAnyPresent but only fields explicitly true count
	RuleVerifiedOnly
	// RuleAnySelected: 100% as soon as one choice is true, 0% otherwise
	RuleAnySelected
)

// FieldDef describes one defining field of a section
type FieldDef struct {
	Key     string
	Label   string
	Section Section
	Kind    Kind
	// ref returns the address of the field inside an ExtendedProfile
	ref func(e *models.ExtendedProfile) interface{}
}

// Definition describes a section and its defining fields
type Definition struct {
	Section Section
	Label   string
	Rule    Rule
	Fields  []FieldDef
}

var definitions = []Definition{
	{
		Section: Academic,
		Label:   "Academic details",
		Rule:    RuleAnyPresent,
		Fields: []FieldDef{
			{Key: "tenth_percentage", Label: "10th percentage", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Academic.TenthPercentage }},
			{Key: "twelfth_percentage", Label: "12th percentage", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Academic.TwelfthPercentage }},
			{Key: "diploma_percentage", Label: "Diploma percentage", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Academic.DiplomaPercentage }},
			{Key: "entrance_exam_rank", Label: "Entrance exam rank", Kind: KindCount, ref: func(e *models.ExtendedProfile) interface{} { return &e.Academic.EntranceExamRank }},
			{Key: "education_gap_years", Label: "Education gap (years)", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Academic.EducationGapYears }},
		},
	},
	{
		Section: Physical,
		Label:   "Physical details",
		Rule:    RuleAnyPresent,
		Fields: []FieldDef{
			{Key: "height_cm", Label: "Height (cm)", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Physical.HeightCM }},
			{Key: "weight_kg", Label: "Weight (kg)", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Physical.WeightKG }},
			{Key: "blood_group", Label: "Blood group", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Physical.BloodGroup }},
			{Key: "eyesight", Label: "Eyesight", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Physical.Eyesight }},
			{Key: "has_disability", Label: "Disability", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.Physical.HasDisability }},
		},
	},
	{
		Section: Family,
		Label:   "Family details",
		Rule:    RuleAnyPresent,
		Fields: []FieldDef{
			{Key: "father_name", Label: "Father's name", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Family.FatherName }},
			{Key: "father_occupation", Label: "Father's occupation", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Family.FatherOccupation }},
			{Key: "mother_name", Label: "Mother's name", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Family.MotherName }},
			{Key: "mother_occupation", Label: "Mother's occupation", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Family.MotherOccupation }},
			{Key: "annual_family_income", Label: "Annual family income", Kind: KindNumber, ref: func(e *models.ExtendedProfile) interface{} { return &e.Family.AnnualFamilyIncome }},
			{Key: "sibling_count", Label: "Number of siblings", Kind: KindCount, ref: func(e *models.ExtendedProfile) interface{} { return &e.Family.SiblingCount }},
		},
	},
	{
		Section: Personal,
		Label:   "Personal details",
		Rule:    RuleAnyPresent,
		Fields: []FieldDef{
			{Key: "date_of_birth", Label: "Date of birth", Kind: KindDate, ref: func(e *models.ExtendedProfile) interface{} { return &e.Personal.DateOfBirth }},
			{Key: "gender", Label: "Gender", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Personal.Gender }},
			{Key: "nationality", Label: "Nationality", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Personal.Nationality }},
			{Key: "permanent_address", Label: "Permanent address", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Personal.PermanentAddress }},
			{Key: "alternate_phone", Label: "Alternate phone", Kind: KindText, ref: func(e *models.ExtendedProfile) interface{} { return &e.Personal.AlternatePhone }},
		},
	},
	{
		Section: Documents,
		Label:   "Document verification",
		Rule:    RuleVerifiedOnly,
		Fields: []FieldDef{
			{Key: "aadhaar_verified", Label: "Aadhaar verified", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.Documents.AadhaarVerified }},
			{Key: "pan_verified", Label: "PAN verified", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.Documents.PanVerified }},
			{Key: "passport_verified", Label: "Passport verified", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.Documents.PassportVerified }},
			{Key: "marksheets_verified", Label: "Marksheets verified", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.Documents.MarksheetsVerified }},
		},
	},
	{
		Section: EducationPreferences,
		Label:   "Education preferences",
		Rule:    RuleAnySelected,
		Fields: []FieldDef{
			{Key: "prefers_placement", Label: "Campus placement", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.EducationPref.PrefersPlacement }},
			{Key: "prefers_higher_studies", Label: "Higher studies", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.EducationPref.PrefersHigherStudies }},
			{Key: "prefers_entrepreneurship", Label: "Entrepreneurship", Kind: KindBool, ref: func(e *models.ExtendedProfile) interface{} { return &e.EducationPref.PrefersEntrepreneurship }},
		},
	},
}

var (
	bySection = make(map[Section]*Definition, len(definitions))
	byKey     = make(map[string]FieldDef)
	allFields []FieldDef
)

func init() {
	for i := range definitions {
		def := &definitions[i]
		for j := range def.Fields {
			def.Fields[j].Section = def.Section
			f := def.Fields[j]
			byKey[f.Key] = f
			allFields = append(allFields, f)
		}
		bySection[def.Section] = def
	}
}

// All returns every section definition in display order
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition of a section by name
func Lookup(name string) (Definition, bool) {
	def, ok := bySection[Section(name)]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

// Field returns the field definition for a secondary field key
func Field(key string) (FieldDef, bool) {
	f, ok := byKey[key]
	return f, ok
}

// Fields returns every secondary field in display order
func Fields() []FieldDef {
	out := make([]FieldDef, len(allFields))
	copy(out, allFields)
	return out
}
