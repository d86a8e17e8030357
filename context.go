package openassetio

import "github.com/foundrytom/openassetio-go/trait"

// ManagerState is an opaque, manager-owned value embedded in a Context.
// The middleware never inspects the concrete type; it only threads the
// value back into the owning manager's state methods. Manager
// implementations embed ManagerStateBase in their state types.
type ManagerState interface {
	isManagerState()
}

// ManagerStateBase is embedded by manager state implementations to
// satisfy ManagerState.
type ManagerStateBase struct{}

func (ManagerStateBase) isManagerState() {}

// Context describes the calling site of a series of related API calls.
// The Locale holds traits describing the host environment making the
// calls (UI panel, render process, ...). ManagerState is an opaque value
// owned by the manager, present only when the manager supports stateful
// contexts; nil means no state.
//
// Contexts are owned by the caller. Reuse one Context across calls that
// are part of the same logical user action, and derive nested scopes
// with Manager.CreateChildContext.
type Context struct {
	Locale       *trait.Data
	ManagerState ManagerState
}

// NewContext creates a Context with an empty locale and no manager
// state. Prefer Manager.CreateContext, which fills in manager state for
// stateful managers.
func NewContext() *Context {
	return &Context{Locale: trait.NewData()}
}

// HasManagerState reports whether the context carries manager state.
func (c *Context) HasManagerState() bool {
	return c.ManagerState != nil
}
