package sections

import (
	"strings"
	"time"

	"github.com/yigit/placement/internal/app/models"
)

// Value returns the field's current value in e as a plain Go value (float64,
// int, string, bool or time.Time), or nil when e is nil or the field is unset.
func (f FieldDef) Value(e *models.ExtendedProfile) interface{} {
	if e == nil {
		return nil
	}
	switch p := f.ref(e).(type) {
	case **float64:
		if *p != nil {
			return **p
		}
	case **int:
		if *p != nil {
			return **p
		}
	case **string:
		if *p != nil {
			return **p
		}
	case **bool:
		if *p != nil {
			return **p
		}
	case **time.Time:
		if *p != nil {
			return **p
		}
	}
	return nil
}

// Column returns the nullable pointer stored in e, suitable as a SQL argument
func (f FieldDef) Column(e *models.ExtendedProfile) interface{} {
	switch p := f.ref(e).(type) {
	case **float64:
		return *p
	case **int:
		return *p
	case **string:
		return *p
	case **bool:
		return *p
	case **time.Time:
		return *p
	}
	return nil
}

// ScanTarget returns the address to scan the field's column into
func (f FieldDef) ScanTarget(e *models.ExtendedProfile) interface{} {
	return f.ref(e)
}

// copyFrom copies the field from src into dst when src has it set, reporting whether it did
func (f FieldDef) copyFrom(dst, src *models.ExtendedProfile) bool {
	switch s := f.ref(src).(type) {
	case **float64:
		if *s != nil {
			v := **s
			*f.ref(dst).(**float64) = &v
			return true
		}
	case **int:
		if *s != nil {
			v := **s
			*f.ref(dst).(**int) = &v
			return true
		}
	case **string:
		if *s != nil {
			v := **s
			*f.ref(dst).(**string) = &v
			return true
		}
	case **bool:
		if *s != nil {
			v := **s
			*f.ref(dst).(**bool) = &v
			return true
		}
	case **time.Time:
		if *s != nil {
			v := **s
			*f.ref(dst).(**time.Time) = &v
			return true
		}
	}
	return false
}

// Present reports whether v counts as supplied for a field of the given kind.
// Unset is the only missing state for booleans; a zero count is never supplied.
func Present(kind Kind, v interface{}) bool {
	if v == nil {
		return false
	}
	switch kind {
	case KindText:
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	case KindCount:
		switch n := v.(type) {
		case int:
			return n > 0
		case float64:
			return n > 0
		}
		return false
	}
	return true
}

// ApplyPatch copies every field set in patch onto dst and returns the sections
// that were touched, in display order.
func ApplyPatch(dst, patch *models.ExtendedProfile) []Section {
	if dst == nil || patch == nil {
		return nil
	}
	var touched []Section
	for _, def := range definitions {
		changed := false
		for _, f := range def.Fields {
			if f.copyFrom(dst, patch) {
				changed = true
			}
		}
		if changed {
			touched = append(touched, def.Section)
		}
	}
	return touched
}

// Filled reports whether v is an answer at all. Unlike Present it accepts a
// zero count, so it is the test for required fields rather than for progress.
func Filled(kind Kind, v interface{}) bool {
	if v == nil {
		return false
	}
	if kind == KindText {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	}
	return true
}
