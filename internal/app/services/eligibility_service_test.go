package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

func newTestEligibilityService(db *memDB) EligibilityService {
	return NewEligibilityService(db, "active", zerolog.Nop())
}

func sameMessages(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCheckReadiness(t *testing.T) {
	t.Run("ready applicant", func(t *testing.T) {
		db := seedDB()
		got, err := newTestEligibilityService(db).CheckReadiness(context.Background(), 1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.ReadyToApply || got.HasBlockingIssues || got.AlreadyApplied {
			t.Errorf("readiness = %+v, want ready without issues", got)
		}
		if got.CustomFields == nil {
			t.Error("customFields must be an empty list, not nil")
		}
		if got.Deadline == nil || !got.Deadline.Equal(fixedNow.Add(48*time.Hour)) {
			t.Errorf("deadline = %v", got.Deadline)
		}
	})

	t.Run("missing section is advisory", func(t *testing.T) {
		db := seedDB()
		db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{RequiredSections: []string{"family"}}})
		got, err := newTestEligibilityService(db).CheckReadiness(context.Background(), 1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ReadyToApply {
			t.Error("applicant with a missing section reported ready")
		}
		if got.HasBlockingIssues {
			t.Error("missing section reported as blocking")
		}
		if len(got.Reasons) != 1 || got.Reasons[0].Category != "section" || got.Reasons[0].Blocking {
			t.Errorf("reasons = %+v", got.Reasons)
		}
	})

	t.Run("custom fields are returned unmodified", func(t *testing.T) {
		db := seedDB()
		fields := []models.CustomField{
			{Key: "notice_period", Label: "Notice period (days)", Type: models.CustomFieldNumber, Min: fptr(0), Max: fptr(90)},
			{Key: "relocate", Label: "Willing to relocate", Type: models.CustomFieldBoolean, Required: true},
		}
		db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{CustomFields: fields}})
		got, err := newTestEligibilityService(db).CheckReadiness(context.Background(), 1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.CustomFields) != 2 || got.CustomFields[0].Key != "notice_period" || got.CustomFields[1].Key != "relocate" {
			t.Errorf("customFields = %+v", got.CustomFields)
		}
	})

	t.Run("already applied is reported", func(t *testing.T) {
		db := seedDB()
		if _, err := newTestApplicationService(db).SubmitApplication(context.Background(), 1, 1, nil); err != nil {
			t.Fatalf("submission failed: %v", err)
		}
		got, err := newTestEligibilityService(db).CheckReadiness(context.Background(), 1, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.AlreadyApplied {
			t.Error("alreadyApplied = false after a submission")
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		_, err := newTestEligibilityService(seedDB()).CheckReadiness(context.Background(), 7, 1)
		if !errors.Is(err, apperrors.ErrJobNotFound) {
			t.Errorf("err = %v, want ErrJobNotFound", err)
		}
	})
}

// Without profile updates the readiness pre-check and the submission
// re-evaluation must report the same findings.
func TestReadinessAgreesWithSubmission(t *testing.T) {
	tests := []struct {
		name  string
		setup func(db *memDB)
	}{
		{name: "eligible"},
		{
			name: "cgpa below minimum",
			setup: func(db *memDB) {
				p := db.state.profiles[1]
				p.ProgrammeCGPA = fptr(6.5)
				db.addProfile(p)
			},
		},
		{
			name: "backlog outside allowed semesters",
			setup: func(db *memDB) {
				p := db.state.profiles[1]
				p.SemesterBacklogs[3] = iptr(1)
				db.addProfile(p)
				j := db.state.jobs[1]
				j.MaxBacklogs = iptr(2)
				j.AllowedBacklogSemesters = []int{1, 2, 3}
				db.addJob(j)
			},
		},
		{
			name: "missing required section",
			setup: func(db *memDB) {
				db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{RequiredSections: []string{"personal", "education_preferences"}}})
			},
		},
		{
			name: "stored value violates constraint",
			setup: func(db *memDB) {
				db.addExtended(models.ExtendedProfile{StudentID: 1, Physical: models.PhysicalSection{HeightCM: fptr(150)}})
				db.addSpec(heightSpec(155))
			},
		},
		{
			name: "required field absent",
			setup: func(db *memDB) {
				db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{
					FieldRequirements: map[string]models.FieldConstraint{"weight_kg": {Required: true}},
				}})
			},
		},
		{
			name: "branch not allowed",
			setup: func(db *memDB) {
				j := db.state.jobs[1]
				j.AllowedBranches = []string{"Mechanical Engineering"}
				db.addJob(j)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := seedDB()
			if tt.setup != nil {
				tt.setup(db)
			}
			ctx := context.Background()

			readiness, err := newTestEligibilityService(db).CheckReadiness(ctx, 1, 1)
			if err != nil {
				t.Fatalf("CheckReadiness: %v", err)
			}
			var want []string
			for _, r := range readiness.Reasons {
				want = append(want, r.Message)
			}

			resp, err := newTestApplicationService(db).SubmitApplication(ctx, 1, 1, nil)
			if err != nil {
				var ve *apperrors.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("SubmitApplication: %v", err)
				}
				if !sameMessages(ve.Messages, want) {
					t.Errorf("submission aborted with %q, readiness reported %q", ve.Messages, want)
				}
				if readiness.ReadyToApply {
					t.Error("readiness reported ready for an aborted submission")
				}
				return
			}

			if !sameMessages(resp.ValidationErrors, want) {
				t.Errorf("submission recorded %q, readiness reported %q", resp.ValidationErrors, want)
			}
			if resp.MeetsRequirements != !readiness.HasBlockingIssues {
				t.Errorf("meetsRequirements = %v, hasBlockingIssues = %v", resp.MeetsRequirements, readiness.HasBlockingIssues)
			}
			if (resp.Status == string(models.ApplicationSubmitted)) != readiness.ReadyToApply {
				t.Errorf("status = %q, readyToApply = %v", resp.Status, readiness.ReadyToApply)
			}
		})
	}
}

func TestGetMissingFields(t *testing.T) {
	db := seedDB()
	db.addExtended(models.ExtendedProfile{StudentID: 1, Physical: models.PhysicalSection{BloodGroup: sptr("O+")}})
	db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{
		RequiredSections: []string{"physical"},
		FieldRequirements: map[string]models.FieldConstraint{
			"height_cm":            {Min: fptr(155), Required: true},
			"annual_family_income": {Required: true},
			"cgpa":                 {Min: fptr(6), Required: true},
		},
	}})

	got, err := newTestEligibilityService(db).GetMissingFields(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("sections = %+v, want physical and family", got.Sections)
	}

	physical := got.Sections[0]
	if physical.Section != "physical" || physical.Label != "Physical details" {
		t.Errorf("first group = %s/%s", physical.Section, physical.Label)
	}
	var keys []string
	for _, f := range physical.Fields {
		keys = append(keys, f.Key)
	}
	if !sameMessages(keys, []string{"height_cm", "weight_kg", "eyesight", "has_disability"}) {
		t.Errorf("physical fields = %v", keys)
	}
	height := physical.Fields[0]
	if !height.Required || height.Min == nil || *height.Min != 155 || height.Type != "number" || height.CurrentValue != nil {
		t.Errorf("height descriptor = %+v", height)
	}
	if physical.Fields[3].Type != "boolean" {
		t.Errorf("has_disability type = %s, want boolean", physical.Fields[3].Type)
	}

	family := got.Sections[1]
	if family.Section != "family" || len(family.Fields) != 1 || family.Fields[0].Key != "annual_family_income" {
		t.Errorf("family group = %+v", family)
	}
	if got.CustomFields == nil {
		t.Error("customFields must be an empty list, not nil")
	}
}

func TestZeroSiblingCountSatisfiesFamily(t *testing.T) {
	tests := []struct {
		name        string
		siblings    *int
		wantReady   bool
		wantMissing []string
		wantErr     error
	}{
		{name: "zero siblings is an answer", siblings: iptr(0), wantReady: true},
		{name: "unanswered sibling count", siblings: nil, wantMissing: []string{"sibling_count"}, wantErr: apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := seedDB()
			db.addExtended(models.ExtendedProfile{StudentID: 1, Family: models.FamilySection{
				FatherName:         sptr("R. Rao"),
				FatherOccupation:   sptr("Farmer"),
				MotherName:         sptr("S. Rao"),
				MotherOccupation:   sptr("Teacher"),
				AnnualFamilyIncome: fptr(300000),
				SiblingCount:       tt.siblings,
			}})
			db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{
				RequiredSections:  []string{"family"},
				FieldRequirements: map[string]models.FieldConstraint{"sibling_count": {Required: true}},
			}})
			svc := newTestEligibilityService(db)

			readiness, err := svc.CheckReadiness(context.Background(), 1, 1)
			if err != nil {
				t.Fatalf("CheckReadiness: %v", err)
			}
			if readiness.ReadyToApply != tt.wantReady {
				t.Errorf("ready = %v, want %v (reasons: %+v)", readiness.ReadyToApply, tt.wantReady, readiness.Reasons)
			}

			missing, err := svc.GetMissingFields(context.Background(), 1, 1)
			if err != nil {
				t.Fatalf("GetMissingFields: %v", err)
			}
			var keys []string
			for _, sec := range missing.Sections {
				for _, f := range sec.Fields {
					keys = append(keys, f.Key)
				}
			}
			if !sameMessages(keys, tt.wantMissing) {
				t.Errorf("missing fields = %v, want %v", keys, tt.wantMissing)
			}

			_, err = newTestApplicationService(db).SubmitApplication(context.Background(), 1, 1, &dto.SubmitApplicationRequest{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SubmitApplication error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetEligibleCount(t *testing.T) {
	db := seedDB()
	db.addProfile(models.StudentProfile{ID: 2, UserID: 101, Branch: "Computer Engineering", ProgrammeCGPA: fptr(6.5), RegistrationStatus: "active"})
	db.addProfile(models.StudentProfile{ID: 3, UserID: 102, Branch: "Computer Engineering", CGPA: fptr(9.1), RegistrationStatus: "active"})
	db.addProfile(models.StudentProfile{ID: 4, UserID: 103, Branch: "Computer Engineering", ProgrammeCGPA: fptr(9.5), RegistrationStatus: "inactive"})
	// Missing section data is advisory and does not reduce the count
	db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{RequiredSections: []string{"physical"}}})

	got, err := newTestEligibilityService(db).GetEligibleCount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Total != 3 || got.Eligible != 2 || got.Ineligible != 1 {
		t.Errorf("count = %+v, want total 3, eligible 2, ineligible 1", got)
	}

	if _, err := newTestEligibilityService(db).GetEligibleCount(context.Background(), 9); !errors.Is(err, apperrors.ErrJobNotFound) {
		t.Errorf("unknown job err = %v, want ErrJobNotFound", err)
	}
}
