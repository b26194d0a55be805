package models

import "time"

// Comments are append-only; status changes leave a system comment with
// IsStatusChange set.
type Comment struct {
	ID             string    `json:"id"`
	TicketID       string    `json:"ticketId"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	IsStatusChange bool      `json:"isStatusChange"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CommentView struct {
	Comment
	User *UserSummary `json:"user"`
}
