// Package access defines the per-operation access-mode enumerations.
//
// Each operation family accepts its own closed enumeration, but the
// underlying values are shared: read is 0, write is 1 and createRelated
// is 2 in every enumeration that includes them, and a single name table
// maps values to the names used in error messages.
package access

const (
	read = iota
	write
	createRelated
)

var accessNames = [...]string{"read", "write", "createRelated"}

func name(value int) string {
	if value < 0 || value >= len(accessNames) {
		return "unknown"
	}
	return accessNames[value]
}

// ResolveAccess selects the intent of a Resolve query.
type ResolveAccess int

const (
	ResolveRead  = ResolveAccess(read)
	ResolveWrite = ResolveAccess(write)
)

// Name returns the access name used in error messages.
func (a ResolveAccess) Name() string { return name(int(a)) }

// PublishingAccess selects the intent of Preflight and Register calls.
type PublishingAccess int

const (
	PublishWrite         = PublishingAccess(write)
	PublishCreateRelated = PublishingAccess(createRelated)
)

// Name returns the access name used in error messages.
func (a PublishingAccess) Name() string { return name(int(a)) }

// RelationsAccess selects the intent of relationship queries.
type RelationsAccess int

const (
	RelationsRead  = RelationsAccess(read)
	RelationsWrite = RelationsAccess(write)
)

// Name returns the access name used in error messages.
func (a RelationsAccess) Name() string { return name(int(a)) }

// PolicyAccess selects the intent a ManagementPolicy query asks about.
type PolicyAccess int

const (
	PolicyRead          = PolicyAccess(read)
	PolicyWrite         = PolicyAccess(write)
	PolicyCreateRelated = PolicyAccess(createRelated)
)

// Name returns the access name used in error messages.
func (a PolicyAccess) Name() string { return name(int(a)) }

// DefaultEntityAccess selects the intended use of a default entity
// reference.
type DefaultEntityAccess int

const (
	DefaultEntityRead          = DefaultEntityAccess(read)
	DefaultEntityWrite         = DefaultEntityAccess(write)
	DefaultEntityCreateRelated = DefaultEntityAccess(createRelated)
)

// Name returns the access name used in error messages.
func (a DefaultEntityAccess) Name() string { return name(int(a)) }

// EntityTraitsAccess selects whether an EntityTraits query asks about
// the traits an existing entity has, or those required to publish one.
type EntityTraitsAccess int

const (
	EntityTraitsRead  = EntityTraitsAccess(read)
	EntityTraitsWrite = EntityTraitsAccess(write)
)

// Name returns the access name used in error messages.
func (a EntityTraitsAccess) Name() string { return name(int(a)) }
