package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }
func bptr(v bool) *bool       { return &v }
func i64ptr(v int64) *int64   { return &v }

// seedDB returns a store holding student 1 (user 100, CGPA 8.2) and an open
// job 1 requiring CGPA 7 with at most one backlog.
func seedDB() *memDB {
	db := newMemDB()
	db.addProfile(models.StudentProfile{
		ID:                 1,
		UserID:             100,
		FullName:           "Asha Rao",
		Branch:             "Computer Engineering",
		ProgrammeCGPA:      fptr(8.2),
		CollegeID:          i64ptr(10),
		RegionID:           i64ptr(20),
		RegistrationStatus: "active",
	})
	deadline := fixedNow.Add(48 * time.Hour)
	db.addJob(models.JobPosting{
		ID:          1,
		CompanyName: "Acme Ltd",
		Title:       "Graduate Engineer",
		EligibilityCriteria: models.EligibilityCriteria{
			MinCGPA:     fptr(7),
			MaxBacklogs: iptr(1),
		},
		TargetType: models.TargetAll,
		IsActive:   true,
		Deadline:   &deadline,
	})
	return db
}

func newTestApplicationService(db *memDB) ApplicationService {
	return NewApplicationService(db, db, clock, zerolog.Nop())
}

func heightSpec(minimum float64) models.RequirementSpec {
	return models.RequirementSpec{
		ID:    1,
		JobID: 1,
		Requirements: models.Requirements{
			FieldRequirements: map[string]models.FieldConstraint{"height_cm": {Min: fptr(minimum)}},
		},
	}
}

func containsMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestSubmitApplication(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(db *memDB)
		jobID      int64
		studentID  int64
		req        *dto.SubmitApplicationRequest
		wantErr    error
		wantStatus models.ApplicationStatus
		wantMeets  bool
		wantMsg    string
		wantApps   int
		check      func(t *testing.T, db *memDB)
	}{
		{
			name:       "eligible applicant is submitted",
			wantStatus: models.ApplicationSubmitted,
			wantMeets:  true,
			wantApps:   1,
		},
		{
			name: "low cgpa commits a rejected application",
			setup: func(db *memDB) {
				p := db.state.profiles[1]
				p.ProgrammeCGPA = fptr(6.5)
				db.addProfile(p)
			},
			wantStatus: models.ApplicationRejected,
			wantMeets:  false,
			wantMsg:    "CGPA below minimum: 7",
			wantApps:   1,
		},
		{
			name: "targeting mismatch commits a rejected application",
			setup: func(db *memDB) {
				j := db.state.jobs[1]
				j.TargetType = models.TargetCollege
				j.TargetCollegeIDs = []int64{11}
				db.addJob(j)
			},
			wantStatus: models.ApplicationRejected,
			wantMsg:    "not open to students of your college",
			wantApps:   1,
		},
		{
			name:  "height below minimum aborts without writes",
			setup: func(db *memDB) { db.addSpec(heightSpec(155)) },
			req: &dto.SubmitApplicationRequest{
				ProfileUpdates: &models.ExtendedProfile{Physical: models.PhysicalSection{HeightCM: fptr(150)}},
			},
			wantErr:  apperrors.ErrValidationFailed,
			wantMsg:  "Height (cm) below minimum: 155 (current: 150)",
			wantApps: 0,
			check: func(t *testing.T, db *memDB) {
				if _, ok := db.storedExtended(1); ok {
					t.Error("profile update was persisted by an aborted submission")
				}
				if got := db.storedCompletions(1); len(got) != 0 {
					t.Errorf("section completion was persisted by an aborted submission: %v", got)
				}
			},
		},
		{
			name:  "supplied value satisfies the minimum",
			setup: func(db *memDB) { db.addSpec(heightSpec(155)) },
			req: &dto.SubmitApplicationRequest{
				ProfileUpdates: &models.ExtendedProfile{Physical: models.PhysicalSection{HeightCM: fptr(160)}},
			},
			wantStatus: models.ApplicationSubmitted,
			wantMeets:  true,
			wantApps:   1,
			check: func(t *testing.T, db *memDB) {
				ext, ok := db.storedExtended(1)
				if !ok || ext.Physical.HeightCM == nil || *ext.Physical.HeightCM != 160 {
					t.Errorf("stored height = %v, want 160", ext.Physical.HeightCM)
				}
				rec, ok := db.storedCompletions(1)["physical"]
				if !ok || rec.Percentage != 20 || !rec.IsCompleted {
					t.Errorf("physical completion = %+v, want 20%% completed", rec)
				}
				p, _ := db.GetStudentProfile(context.Background(), 1)
				if p.ProfileCompletion != 3 {
					t.Errorf("profile completion = %d, want 3", p.ProfileCompletion)
				}
			},
		},
		{
			name: "blocking cgpa and violated constraint abort together",
			setup: func(db *memDB) {
				p := db.state.profiles[1]
				p.ProgrammeCGPA = fptr(6.5)
				db.addProfile(p)
				db.addSpec(heightSpec(155))
			},
			req: &dto.SubmitApplicationRequest{
				ProfileUpdates: &models.ExtendedProfile{Physical: models.PhysicalSection{HeightCM: fptr(150)}},
			},
			wantErr:  apperrors.ErrValidationFailed,
			wantMsg:  "CGPA below minimum: 7",
			wantApps: 0,
		},
		{
			name: "missing required section aborts",
			setup: func(db *memDB) {
				db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{RequiredSections: []string{"physical"}}})
			},
			wantErr:  apperrors.ErrValidationFailed,
			wantMsg:  "Physical details incomplete",
			wantApps: 0,
		},
		{
			name: "missing required custom answer aborts",
			setup: func(db *memDB) {
				db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{CustomFields: []models.CustomField{
					{Key: "preferred_location", Label: "Preferred location", Type: models.CustomFieldSelect, Required: true, Options: []string{"Pune", "Chennai"}},
				}}})
			},
			wantErr:  apperrors.ErrValidationFailed,
			wantMsg:  "Preferred location is required",
			wantApps: 0,
		},
		{
			name: "valid custom answer is accepted",
			setup: func(db *memDB) {
				db.addSpec(models.RequirementSpec{JobID: 1, Requirements: models.Requirements{CustomFields: []models.CustomField{
					{Key: "preferred_location", Label: "Preferred location", Type: models.CustomFieldSelect, Required: true, Options: []string{"Pune", "Chennai"}},
				}}})
			},
			req:        &dto.SubmitApplicationRequest{CustomAnswers: map[string]interface{}{"preferred_location": "pune"}},
			wantStatus: models.ApplicationSubmitted,
			wantMeets:  true,
			wantApps:   1,
		},
		{
			name: "inactive job",
			setup: func(db *memDB) {
				j := db.state.jobs[1]
				j.IsActive = false
				db.addJob(j)
			},
			wantErr: apperrors.ErrJobInactive,
		},
		{
			name: "deadline passed",
			setup: func(db *memDB) {
				j := db.state.jobs[1]
				past := fixedNow.Add(-time.Hour)
				j.Deadline = &past
				db.addJob(j)
			},
			wantErr: apperrors.ErrDeadlinePassed,
		},
		{
			name:    "unknown job",
			jobID:   99,
			wantErr: apperrors.ErrJobNotFound,
		},
		{
			name:      "unknown student",
			studentID: 99,
			wantErr:   apperrors.ErrStudentNotFound,
		},
		{
			name:     "invalid profile update is refused before the transaction",
			req:      &dto.SubmitApplicationRequest{ProfileUpdates: &models.ExtendedProfile{Physical: models.PhysicalSection{HeightCM: fptr(-4)}}},
			wantErr:  apperrors.ErrValidationFailed,
			wantApps: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := seedDB()
			if tt.setup != nil {
				tt.setup(db)
			}
			jobID, studentID := tt.jobID, tt.studentID
			if jobID == 0 {
				jobID = 1
			}
			if studentID == 0 {
				studentID = 1
			}

			resp, err := newTestApplicationService(db).SubmitApplication(context.Background(), jobID, studentID, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if tt.wantMsg != "" {
					var ve *apperrors.ValidationError
					if !errors.As(err, &ve) {
						t.Fatalf("err = %T, want *apperrors.ValidationError", err)
					}
					if !containsMessage(ve.Messages, tt.wantMsg) {
						t.Errorf("messages %q do not mention %q", ve.Messages, tt.wantMsg)
					}
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if models.ApplicationStatus(resp.Status) != tt.wantStatus {
					t.Errorf("status = %q, want %q", resp.Status, tt.wantStatus)
				}
				if resp.MeetsRequirements != tt.wantMeets {
					t.Errorf("meetsRequirements = %v, want %v", resp.MeetsRequirements, tt.wantMeets)
				}
				if tt.wantMsg != "" && !containsMessage(resp.ValidationErrors, tt.wantMsg) {
					t.Errorf("validation errors %q do not mention %q", resp.ValidationErrors, tt.wantMsg)
				}
				if tt.wantMsg == "" && len(resp.ValidationErrors) != 0 {
					t.Errorf("unexpected validation errors %q", resp.ValidationErrors)
				}

				snap, err := db.GetSnapshot(context.Background(), resp.ApplicationID)
				if err != nil {
					t.Fatalf("snapshot not recorded: %v", err)
				}
				if snap.MeetsRequirements != resp.MeetsRequirements {
					t.Errorf("snapshot meetsRequirements = %v, want %v", snap.MeetsRequirements, resp.MeetsRequirements)
				}
			}

			apps := db.applications()
			if len(apps) != tt.wantApps {
				t.Fatalf("applications stored = %d, want %d", len(apps), tt.wantApps)
			}
			if tt.wantApps == 1 && apps[0].Status != tt.wantStatus {
				t.Errorf("stored status = %q, want %q", apps[0].Status, tt.wantStatus)
			}
			if tt.check != nil {
				tt.check(t, db)
			}
		})
	}
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	t.Run("second submission is refused", func(t *testing.T) {
		db := seedDB()
		svc := newTestApplicationService(db)
		if _, err := svc.SubmitApplication(context.Background(), 1, 1, nil); err != nil {
			t.Fatalf("first submission failed: %v", err)
		}
		_, err := svc.SubmitApplication(context.Background(), 1, 1, nil)
		if !errors.Is(err, apperrors.ErrAlreadyApplied) {
			t.Fatalf("err = %v, want ErrAlreadyApplied", err)
		}
		if n := len(db.applications()); n != 1 {
			t.Errorf("applications stored = %d, want 1", n)
		}
	})

	t.Run("uniqueness guard catches a missed duplicate check", func(t *testing.T) {
		db := seedDB()
		db.skipDuplicateCheck = true
		svc := newTestApplicationService(db)
		if _, err := svc.SubmitApplication(context.Background(), 1, 1, nil); err != nil {
			t.Fatalf("first submission failed: %v", err)
		}
		_, err := svc.SubmitApplication(context.Background(), 1, 1, nil)
		if !errors.Is(err, apperrors.ErrAlreadyApplied) {
			t.Fatalf("err = %v, want ErrAlreadyApplied", err)
		}
	})

	t.Run("concurrent submissions store exactly one application", func(t *testing.T) {
		db := seedDB()
		svc := newTestApplicationService(db)

		const workers = 8
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.SubmitApplication(context.Background(), 1, 1, nil)
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case !errors.Is(err, apperrors.ErrAlreadyApplied):
				t.Errorf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Errorf("successful submissions = %d, want 1", succeeded)
		}
		if n := len(db.applications()); n != 1 {
			t.Errorf("applications stored = %d, want 1", n)
		}
	})
}

func TestSnapshotIsImmutable(t *testing.T) {
	db := seedDB()
	db.addExtended(models.ExtendedProfile{StudentID: 1, Physical: models.PhysicalSection{HeightCM: fptr(160)}})
	appSvc := newTestApplicationService(db)
	profileSvc := NewProfileService(db, db, clock, zerolog.Nop())
	ctx := context.Background()

	resp, err := appSvc.SubmitApplication(ctx, 1, 1, &dto.SubmitApplicationRequest{
		CustomAnswers: map[string]interface{}{"notes": "available from June"},
	})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	if _, err := profileSvc.UpdateExtendedProfile(ctx, 1, &models.ExtendedProfile{
		Physical: models.PhysicalSection{HeightCM: fptr(172)},
	}); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}

	snap, err := appSvc.GetSnapshot(ctx, resp.ApplicationID)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got := snap.ProfileData["height_cm"]; got != 160.0 {
		t.Errorf("snapshot height_cm = %v, want 160", got)
	}
	if got := snap.ProfileData["cgpa"]; got != 8.2 {
		t.Errorf("snapshot cgpa = %v, want 8.2", got)
	}
	if got := snap.ProfileData["branch"]; got != "Computer Engineering" {
		t.Errorf("snapshot branch = %v", got)
	}
	if got := snap.CustomAnswers["notes"]; got != "available from June" {
		t.Errorf("snapshot answer = %v", got)
	}

	ext, _ := db.storedExtended(1)
	if ext.Physical.HeightCM == nil || *ext.Physical.HeightCM != 172 {
		t.Errorf("live height = %v, want 172", ext.Physical.HeightCM)
	}

	if _, err := appSvc.GetSnapshot(ctx, 424242); !errors.Is(err, apperrors.ErrAppNotFound) {
		t.Errorf("unknown application err = %v, want ErrAppNotFound", err)
	}
}
