package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yigit/placement/internal/app/models"
)

// Validation rule patterns
var (
	// FieldKeyPattern is the shape of a custom field or profile field key
	FieldKeyPattern = `^[a-z][a-z0-9_]{0,63}$`

	// DefaultTextMaxLength applies to text answers without an explicit limit
	DefaultTextMaxLength = 2000
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	FieldKey *regexp.Regexp
}{
	FieldKey: regexp.MustCompile(FieldKeyPattern),
}

// StringValidation validates a text value
type StringValidation struct {
	Value    string
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation; lengths are counted in runes
func (v *StringValidation) Validate() bool {
	value := strings.TrimSpace(v.Value)
	if value == "" {
		return !v.Required
	}

	n := utf8.RuneCountInString(value)
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(value) {
		return false
	}
	return true
}

// NumericValidation validates a number against optional bounds
type NumericValidation struct {
	Value float64
	Min   *float64
	Max   *float64
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value float64) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min *float64) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max *float64) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != nil && v.Value < *v.Min {
		return false
	}
	if v.Max != nil && v.Value > *v.Max {
		return false
	}
	return true
}

// IsValidFieldKey reports whether key is a well-formed field key
func IsValidFieldKey(key string) bool {
	return NewStringValidation(key).WithPattern(CompiledPatterns.FieldKey).Validate()
}

// CustomAnswers checks the raw answers of an application against the job's
// custom field definitions and returns one message per failing field, in
// definition order. Answers to unknown keys are ignored.
func CustomAnswers(fields []models.CustomField, answers map[string]interface{}) []string {
	var problems []string
	for _, f := range fields {
		label := f.Label
		if label == "" {
			label = f.Key
		}

		raw, ok := answers[f.Key]
		if !ok || isBlank(raw) {
			if f.Required {
				problems = append(problems, label+" is required")
			}
			continue
		}

		if msg := checkAnswer(f, label, raw); msg != "" {
			problems = append(problems, msg)
		}
	}
	return problems
}

func checkAnswer(f models.CustomField, label string, raw interface{}) string {
	switch f.Type {
	case models.CustomFieldNumber:
		n, ok := toNumber(raw)
		if !ok {
			return label + " must be a number"
		}
		if !NewNumericValidation(n).WithMin(f.Min).WithMax(f.Max).Validate() {
			return fmt.Sprintf("%s must be between %s and %s", label, bound(f.Min, "-inf"), bound(f.Max, "+inf"))
		}

	case models.CustomFieldSelect:
		s, ok := raw.(string)
		if !ok {
			return label + " must be one of: " + strings.Join(f.Options, ", ")
		}
		for _, opt := range f.Options {
			if strings.EqualFold(strings.TrimSpace(s), opt) {
				return ""
			}
		}
		return label + " must be one of: " + strings.Join(f.Options, ", ")

	case models.CustomFieldBoolean:
		if _, ok := toBool(raw); !ok {
			return label + " must be true or false"
		}

	default:
		s, ok := raw.(string)
		if !ok {
			return label + " must be text"
		}
		limit := f.MaxLength
		if limit <= 0 {
			limit = DefaultTextMaxLength
		}
		if !NewStringValidation(s).WithMaxLength(limit).Validate() {
			return fmt.Sprintf("%s must be at most %d characters", label, limit)
		}
	}
	return ""
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	return false, false
}

func bound(v *float64, open string) string {
	if v == nil {
		return open
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
