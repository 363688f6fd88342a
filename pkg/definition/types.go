package definition

import (
	"encoding/json"
	"strings"
)

// Model is an administrator-defined record type.
type Model struct {
	Name        string              `json:"name" yaml:"name"`
	TableName   string              `json:"tableName" yaml:"tableName"`
	Description string              `json:"description" yaml:"description"`
	OwnerField  string              `json:"ownerField,omitempty" yaml:"ownerField,omitempty"`
	Fields      []Field             `json:"fields" yaml:"fields"`
	RBAC        map[string][]string `json:"rbac" yaml:"rbac"`
	Published   bool                `json:"published,omitempty" yaml:"published,omitempty"`
}

// Field describes one attribute of a model.
type Field struct {
	Name     string      `json:"name" yaml:"name"`
	Type     string      `json:"type,omitempty" yaml:"type,omitempty"`
	Required bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Default  interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	Unique   bool        `json:"unique,omitempty" yaml:"unique,omitempty"`
	Relation *Relation   `json:"relation,omitempty" yaml:"relation,omitempty"`
}

// Relation points a relation field at a field of another model.
type Relation struct {
	Model string `json:"model" yaml:"model"`
	Field string `json:"field" yaml:"field"`
}

// FieldType returns the parsed type of the field. Unknown types yield an error.
func (f Field) FieldType() (FieldType, error) {
	return ParseFieldType(f.Type)
}

// RouteName is the path segment the model is served under: the table name, or
// the model name when no table name is set, lowercased.
func (m *Model) RouteName() string {
	if m.TableName != "" {
		return strings.ToLower(m.TableName)
	}
	return strings.ToLower(m.Name)
}

// Normalize fixes the table name to its lowercased published form.
func (m *Model) Normalize() {
	m.TableName = m.RouteName()
}

// Field returns the named field.
func (m *Model) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredFields returns the names of required fields in declaration order.
func (m *Model) RequiredFields() []string {
	var names []string
	for _, f := range m.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// HasOwner reports whether records of the model carry an owner.
func (m *Model) HasOwner() bool {
	return m.OwnerField != ""
}

// Permissions returns the actions granted to a role.
func (m *Model) Permissions(role string) []string {
	if m.RBAC == nil {
		return nil
	}
	return m.RBAC[role]
}

// Clone returns a copy that shares no slices or maps with m.
func (m Model) Clone() Model {
	c := m
	if m.Fields != nil {
		c.Fields = make([]Field, len(m.Fields))
		for i, f := range m.Fields {
			if f.Relation != nil {
				r := *f.Relation
				f.Relation = &r
			}
			c.Fields[i] = f
		}
	}
	if m.RBAC != nil {
		c.RBAC = make(map[string][]string, len(m.RBAC))
		for role, actions := range m.RBAC {
			c.RBAC[role] = append([]string(nil), actions...)
		}
	}
	return c
}

// MarshalFile renders the definition as it is stored in the models directory.
func (m Model) MarshalFile() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
