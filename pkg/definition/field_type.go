package definition

//go:generate go run github.com/dmarkham/enumer -type FieldType -trimprefix Type -transform lower -output field_type.gen.go

// FieldType is the declared type of a model field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeBoolean
	TypeDate
	TypeRelation
)

// ParseFieldType resolves a declared type. An empty type means string.
func ParseFieldType(s string) (FieldType, error) {
	if s == "" {
		return TypeString, nil
	}
	return FieldTypeString(s)
}
