// Package memory is a mutex-guarded in-memory store. It backs tests and
// the STORE=memory mode; writes take the exclusive lock, so concurrent
// edits to the same entity serialize to one winner.
package memory

import (
	"sync"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

// Store owns the shared state; the per-entity accessors return views
// implementing the repository interfaces over the same lock, so a
// ticket update and its audit comment land in one critical section.
type Store struct {
	mu         sync.RWMutex
	users      []models.User
	categories []models.Category
	tickets    []models.Ticket
	comments   []models.Comment
}

func NewStore() *Store { return &Store{} }

func (s *Store) Tickets() repository.TicketStore      { return tickets{s} }
func (s *Store) Comments() repository.CommentStore    { return comments{s} }
func (s *Store) Users() repository.UserStore          { return users{s} }
func (s *Store) Categories() repository.CategoryStore { return categories{s} }
