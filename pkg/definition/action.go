package definition

//go:generate go run github.com/dmarkham/enumer -type Action -trimprefix Action -transform lower -output action.gen.go

// Action is an operation a role can be granted on a model.
type Action int

const (
	ActionCreate Action = iota
	ActionRead
	ActionUpdate
	ActionDelete
	// ActionAll grants every action.
	ActionAll
)

// Mutating reports whether the action changes an existing record.
func (a Action) Mutating() bool {
	return a == ActionUpdate || a == ActionDelete
}
