package validation

import (
	"strings"
	"testing"

	"github.com/yigit/placement/internal/app/models"
)

func fptr(v float64) *float64 { return &v }

func TestCustomAnswers(t *testing.T) {
	fields := []models.CustomField{
		{Key: "why_us", Label: "Why us", Type: models.CustomFieldText, Required: true, MaxLength: 10},
		{Key: "notice_days", Label: "Notice period", Type: models.CustomFieldNumber, Min: fptr(0), Max: fptr(90)},
		{Key: "location", Label: "Preferred location", Type: models.CustomFieldSelect, Options: []string{"Pune", "Chennai"}},
		{Key: "relocate", Label: "Willing to relocate", Type: models.CustomFieldBoolean, Required: true},
	}

	tests := []struct {
		name    string
		answers map[string]interface{}
		want    []string
	}{
		{
			name:    "all valid",
			answers: map[string]interface{}{"why_us": "Growth", "notice_days": 30.0, "location": "pune", "relocate": true},
		},
		{
			name:    "numeric string and boolean string",
			answers: map[string]interface{}{"why_us": "Growth", "notice_days": " 15 ", "relocate": "false"},
		},
		{
			name:    "missing required answers",
			answers: map[string]interface{}{"why_us": "  "},
			want:    []string{"Why us is required", "Willing to relocate is required"},
		},
		{
			name:    "type and range failures",
			answers: map[string]interface{}{"why_us": "far too long answer", "notice_days": 120.0, "location": "Delhi", "relocate": "maybe"},
			want: []string{
				"Why us must be at most 10 characters",
				"Notice period must be between 0 and 90",
				"Preferred location must be one of: Pune, Chennai",
				"Willing to relocate must be true or false",
			},
		},
		{
			name:    "non numeric answer",
			answers: map[string]interface{}{"why_us": "ok", "notice_days": "soon", "relocate": true},
			want:    []string{"Notice period must be a number"},
		},
		{
			name:    "unknown keys are ignored",
			answers: map[string]interface{}{"why_us": "ok", "relocate": false, "extra": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CustomAnswers(fields, tt.answers)
			if len(got) != len(tt.want) {
				t.Fatalf("CustomAnswers() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("message %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestIsValidFieldKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"height_cm", true},
		{"sem3_cgpa", true},
		{"Height", false},
		{"3rd_field", false},
		{"", false},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsValidFieldKey(tt.key); got != tt.want {
				t.Errorf("IsValidFieldKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestNumericValidation(t *testing.T) {
	if !NewNumericValidation(5).Validate() {
		t.Error("unbounded value rejected")
	}
	if NewNumericValidation(-1).WithMin(fptr(0)).Validate() {
		t.Error("value below minimum accepted")
	}
	if !NewNumericValidation(0).WithMin(fptr(0)).WithMax(fptr(0)).Validate() {
		t.Error("value equal to both bounds rejected")
	}
}
