package definition

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const maxIdentifierLength = 63

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s can be used as a table or column name.
func ValidIdentifier(s string) bool {
	return len(s) <= maxIdentifierLength && identifierPattern.MatchString(s)
}

// ValidationError is a single problem found in a definition.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every problem found in a definition.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "invalid model definition: " + strings.Join(msgs, "; ")
}

// Validate checks the definition. It returns ValidationErrors or nil.
func (m *Model) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case m.Name == "":
		add("name", "is required")
	case !ValidIdentifier(m.Name):
		add("name", "must start with a letter or underscore and contain only letters, digits and underscores")
	}
	if m.TableName != "" && !ValidIdentifier(m.TableName) {
		add("tableName", "must start with a letter or underscore and contain only letters, digits and underscores")
	}

	seen := make(map[string]bool, len(m.Fields))
	for i, f := range m.Fields {
		path := fmt.Sprintf("fields[%d]", i)
		if !ValidIdentifier(f.Name) {
			add(path+".name", "%q is not a valid field name", f.Name)
			continue
		}
		if strings.EqualFold(f.Name, "id") {
			add(path+".name", "id is reserved")
		}
		if seen[f.Name] {
			add(path+".name", "duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		ft, err := f.FieldType()
		if err != nil {
			add(path+".type", "unknown type %q", f.Type)
			continue
		}
		if ft == TypeRelation && (f.Relation == nil || f.Relation.Model == "" || f.Relation.Field == "") {
			add(path+".relation", "relation fields need a target model and field")
		}
		if f.Default != nil && !defaultMatches(ft, f.Default) {
			add(path+".default", "default %v does not match type %s", f.Default, ft)
		}
	}

	if m.OwnerField != "" {
		if !ValidIdentifier(m.OwnerField) || strings.EqualFold(m.OwnerField, "id") {
			add("ownerField", "%q is not a valid field name", m.OwnerField)
		}
	}

	for role, actions := range m.RBAC {
		if strings.TrimSpace(role) == "" {
			add("rbac", "role names cannot be empty")
		}
		for _, a := range actions {
			if _, err := ActionString(a); err != nil {
				add("rbac."+role, "unknown action %q", a)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func defaultMatches(ft FieldType, v interface{}) bool {
	switch ft {
	case TypeNumber:
		_, ok := IntegerValue(v)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

// IntegerValue converts a decoded JSON or YAML number to an int64. Number
// fields are INTEGER columns, so fractional values and values outside the
// 32-bit range are rejected.
func IntegerValue(v interface{}) (int64, bool) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		if x > math.MaxInt32 {
			return 0, false
		}
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt32 || x < math.MinInt32 {
			return 0, false
		}
		n = int64(x)
	default:
		return 0, false
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return n, true
}
