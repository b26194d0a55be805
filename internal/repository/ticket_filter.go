package repository

// TicketFilter is applied in two stages. The scope fields come from the
// caller's role and are set by the service before any request filter is
// read; stores apply them unconditionally, so no query parameter can
// widen what a caller may see. The remaining fields are the explicit
// equality filters, all conjunctive.
type TicketFilter struct {
	// scope stage
	OwnerID    string // restrict to tickets created by this user
	AssigneeID string // restrict to tickets assigned to this user ("me")

	// filter stage
	Status     string
	CategoryID string
	Priority   string
	AssignedTo string // user id, or Unassigned for a null assignee
}

// Unassigned filters for tickets with no assignee.
const Unassigned = "unassigned"

// TicketPage selects and orders one slice of the filtered set.
type TicketPage struct {
	Page      int    // 1-based
	Limit     int
	SortBy    string // createdAt | updatedAt | priority | status
	SortOrder string // asc | desc
}

func (p TicketPage) Offset() int { return (p.Page - 1) * p.Limit }
