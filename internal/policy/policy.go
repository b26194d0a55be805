// Package policy holds the role rules as data, not as scattered
// conditionals: a capability bundle per role, an ownership rule for
// per-ticket access, and a role×field table for ticket updates.
package policy

const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAgent || r == RoleAdmin
}

// Capability names the things a role is allowed to do. The bundles
// mirror the permission presets the admin UI shows per role.
type Capability string

const (
	CapCreateTicket     Capability = "ticket:create"
	CapViewAllTickets   Capability = "ticket:view_all"
	CapUpdateAnyTicket  Capability = "ticket:update_any"
	CapCommentAny       Capability = "comment:any"
	CapManageUsers      Capability = "users:manage"
	CapManageCategories Capability = "categories:manage"
)

var bundles = map[string][]Capability{
	RoleUser:  {CapCreateTicket},
	RoleAgent: {CapCreateTicket, CapViewAllTickets, CapUpdateAnyTicket, CapCommentAny},
	RoleAdmin: {CapCreateTicket, CapViewAllTickets, CapUpdateAnyTicket, CapCommentAny, CapManageUsers, CapManageCategories},
}

// Capabilities returns the permission bundle for a role. Unknown roles
// get nothing.
func Capabilities(role string) []Capability {
	return bundles[role]
}

func Can(role string, c Capability) bool {
	for _, got := range bundles[role] {
		if got == c {
			return true
		}
	}
	return false
}

// CanAccessTicket is the ownership rule shared by ticket read, update
// and comment: agents and admins reach any ticket, a plain user only
// their own. Existence of the ticket is checked by the caller first.
func CanAccessTicket(role, callerID, ownerID string) bool {
	if role == RoleAgent || role == RoleAdmin {
		return true
	}
	return callerID != "" && callerID == ownerID
}

// Ticket patch fields.
const (
	FieldStatus     = "status"
	FieldAssignedTo = "assignedTo"
	FieldPriority   = "priority"
)

// updatableFields is the role×field table for ticket updates. A field
// missing from a role's set is silently dropped from the patch, never
// an error — submitting it is not a violation, it just does nothing.
var updatableFields = map[string]map[string]bool{
	RoleUser:  {FieldPriority: true},
	RoleAgent: {FieldStatus: true, FieldAssignedTo: true, FieldPriority: true},
	RoleAdmin: {FieldStatus: true, FieldAssignedTo: true, FieldPriority: true},
}

// CanSetField reports whether role may apply field in a ticket patch.
func CanSetField(role, field string) bool {
	return updatableFields[role][field]
}
