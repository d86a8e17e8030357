package openassetio

// EntityReference wraps a manager-defined string that identifies an
// entity. References are opaque to hosts; only the owning manager can
// interpret them.
//
// Obtain references through Manager.CreateEntityReference (or
// CreateEntityReferenceIfValid), which check the string against the
// manager's own validation. NewEntityReference skips that check and is
// only appropriate when the string is already known to be valid, e.g.
// when it was returned by the same manager earlier in the session.
type EntityReference struct {
	value string
}

// NewEntityReference wraps a raw reference string without validation.
func NewEntityReference(s string) EntityReference {
	return EntityReference{value: s}
}

// String returns the wrapped reference string.
func (r EntityReference) String() string {
	return r.value
}

// Equals checks if two references wrap the same string.
func (r EntityReference) Equals(other EntityReference) bool {
	return r.value == other.value
}
