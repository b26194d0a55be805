package models

import "time"

// Ticket statuses and priorities. Tickets always start out open.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Ticket struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	UserID      string    `json:"userId"` // creator, immutable
	AssignedTo  string    `json:"-"`      // empty = unassigned; serialized via TicketView
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TicketView is a ticket enriched with creator, assignee and category
// summaries. List responses carry CommentCount; the detail response
// carries the comments themselves.
type TicketView struct {
	Ticket
	User         *UserSummary     `json:"user"`
	AssignedUser *UserSummary     `json:"assignedTo"`
	Category     *CategorySummary `json:"category"`
	CommentCount int              `json:"commentCount,omitempty"`
	Comments     []CommentView    `json:"comments,omitempty"`
}

// Pagination describes the slice a list response covers.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalTickets int  `json:"totalTickets"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
