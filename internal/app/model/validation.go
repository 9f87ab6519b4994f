package model

import (
	"fmt"
	"strings"
)

// FieldError describes one violated field, Field being a dotted path
// such as stations[0].podcasts[1].brand_id.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Message
}

// ValidationError collects every violated field instead of stopping
// at the first one.
type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.String())
	}
	plural := ""
	if len(v.Fields) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d invalid field%s: %s", len(v.Fields), plural, strings.Join(parts, "; "))
}

// Add appends a violation.
func (v *ValidationError) Add(field, format string, a ...any) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, a...)})
}

// Merge appends all violations of other with prefix prepended to each
// field path.
func (v *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		if prefix != "" {
			f.Field = prefix + "." + f.Field
		}
		v.Fields = append(v.Fields, f)
	}
}

// Err returns nil when nothing was added, otherwise v. Use it as the
// return value of a Validate method so a typed nil never escapes as a
// non-nil error.
func (v *ValidationError) Err() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}
