package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhishek-kr07/quickdesk/internal/apperr"
	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/policy"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

const (
	subjectMin     = 5
	subjectMax     = 200
	descriptionMin = 10
	commentMin     = 1
	commentMax     = 1000
	reasonMax      = 500
	limitMax       = 100

	defaultLimit     = 10
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"
)

// TicketService is the query engine and workflow for tickets: it scopes
// visibility by role, validates and applies patches per the field
// policy, and keeps the status-change audit trail.
type TicketService struct {
	tickets    repository.TicketStore
	comments   repository.CommentStore
	users      repository.UserStore
	categories repository.CategoryStore
}

func NewTicketService(t repository.TicketStore, c repository.CommentStore, u repository.UserStore, cat repository.CategoryStore) *TicketService {
	return &TicketService{tickets: t, comments: c, users: u, categories: cat}
}

// -----------------------------------------------------------------------------
// List
// -----------------------------------------------------------------------------

type ListTicketsInput struct {
	Status     string
	CategoryID string
	Priority   string
	AssignedTo string // "me", "unassigned", or a user id
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// List runs the two-stage pipeline: the role scope is fixed from the
// caller before any request filter is read, so no parameter can widen
// what a plain user sees.
func (s *TicketService) List(ctx context.Context, caller Caller, in ListTicketsInput) ([]models.TicketView, models.Pagination, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = defaultLimit
	}
	if err := validateListInput(in); err != nil {
		return nil, models.Pagination{}, err
	}
	if in.SortBy == "" {
		in.SortBy = defaultSortBy
	}
	if in.SortOrder == "" {
		in.SortOrder = defaultSortOrder
	}

	var f repository.TicketFilter

	// scope stage
	switch caller.Role {
	case policy.RoleUser:
		f.OwnerID = caller.ID
	case policy.RoleAgent:
		if in.AssignedTo == "me" {
			f.AssigneeID = caller.ID
		}
	}

	// filter stage
	f.Status = in.Status
	f.CategoryID = in.CategoryID
	f.Priority = in.Priority
	if in.AssignedTo != "" && in.AssignedTo != "me" {
		f.AssignedTo = in.AssignedTo
	}

	page := repository.TicketPage{Page: in.Page, Limit: in.Limit, SortBy: in.SortBy, SortOrder: in.SortOrder}
	items, total, err := s.tickets.List(ctx, f, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	views, err := s.enrichList(ctx, items)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := (total + in.Limit - 1) / in.Limit
	p := models.Pagination{
		CurrentPage:  in.Page,
		TotalPages:   totalPages,
		TotalTickets: total,
		HasNextPage:  page.Offset()+in.Limit < total,
		HasPrevPage:  in.Page > 1,
	}
	return views, p, nil
}

func validateListInput(in ListTicketsInput) error {
	fields := map[string]string{}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		fields["status"] = "invalid status"
	}
	if in.Priority != "" && !models.ValidPriority(in.Priority) {
		fields["priority"] = "invalid priority"
	}
	switch in.SortBy {
	case "", "createdAt", "updatedAt", "priority", "status":
	default:
		fields["sortBy"] = "invalid sort field"
	}
	switch in.SortOrder {
	case "", "asc", "desc":
	default:
		fields["sortOrder"] = "invalid sort order"
	}
	if in.Page < 1 {
		fields["page"] = "page must be at least 1"
	}
	if in.Limit < 1 || in.Limit > limitMax {
		fields["limit"] = fmt.Sprintf("limit must be between 1 and %d", limitMax)
	}
	if len(fields) > 0 {
		return apperr.Invalid("Validation failed", fields)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Get
// -----------------------------------------------------------------------------

// Get returns one ticket with its full comment thread. Absence is
// NotFound regardless of role; the ownership check comes after.
func (s *TicketService) Get(ctx context.Context, caller Caller, id string) (*models.TicketView, error) {
	t, err := s.resolveTicket(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	view, err := s.enrichOne(ctx, *t)
	if err != nil {
		return nil, err
	}

	cs, err := s.comments.ListByTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Comments = make([]models.CommentView, 0, len(cs))
	cache := map[string]*models.User{}
	for _, c := range cs {
		author, err := s.lookupUser(ctx, cache, c.UserID)
		if err != nil {
			return nil, err
		}
		view.Comments = append(view.Comments, models.CommentView{Comment: c, User: author.AuthorSummary()})
	}
	view.CommentCount = 0
	return view, nil
}

// resolveTicket loads the ticket and applies the shared ownership rule:
// NotFound before AccessDenied.
func (s *TicketService) resolveTicket(ctx context.Context, caller Caller, id string) (*models.Ticket, error) {
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.New(apperr.NotFound, "Ticket not found")
	}
	if !policy.CanAccessTicket(caller.Role, caller.ID, t.UserID) {
		return nil, apperr.New(apperr.AccessDenied, "Access denied")
	}
	return t, nil
}

// -----------------------------------------------------------------------------
// Create
// -----------------------------------------------------------------------------

type CreateTicketInput struct {
	Subject     string
	Description string
	CategoryID  string
	Priority    string
	Attachments []string
}

func (s *TicketService) Create(ctx context.Context, caller Caller, in CreateTicketInput) (*models.TicketView, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Description = strings.TrimSpace(in.Description)

	fields := map[string]string{}
	if len(in.Subject) < subjectMin || len(in.Subject) > subjectMax {
		fields["subject"] = fmt.Sprintf("Subject must be between %d and %d characters", subjectMin, subjectMax)
	}
	if len(in.Description) < descriptionMin {
		fields["description"] = fmt.Sprintf("Description must be at least %d characters long", descriptionMin)
	}
	if in.CategoryID == "" {
		fields["categoryId"] = "Category is required"
	}
	if in.Priority != "" && !models.ValidPriority(in.Priority) {
		fields["priority"] = "Invalid priority level"
	}
	if len(fields) > 0 {
		return nil, apperr.Invalid("Validation failed", fields)
	}

	cat, err := s.categories.Get(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.New(apperr.Validation, "Invalid category")
	}

	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	t := &models.Ticket{
		Subject:     in.Subject,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		UserID:      caller.ID,
		Status:      models.StatusOpen,
		Priority:    in.Priority,
		Attachments: in.Attachments,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}

	view := &models.TicketView{
		Ticket:   *t,
		User:     &models.UserSummary{ID: caller.ID, Name: caller.Name, Email: caller.Email, Avatar: caller.Avatar},
		Category: cat.Summary(),
		Comments: []models.CommentView{},
	}
	return view, nil
}

// -----------------------------------------------------------------------------
// Update (workflow)
// -----------------------------------------------------------------------------

type UpdateTicketInput struct {
	Status             string
	AssignedTo         string
	Priority           string
	StatusChangeReason string
}

// Update applies a patch per the role×field policy: fields the caller's
// role may not set are dropped silently, never rejected. A status
// change lands together with its audit comment in one store call.
func (s *TicketService) Update(ctx context.Context, caller Caller, id string, in UpdateTicketInput) (*models.TicketView, error) {
	if err := validateUpdateInput(in); err != nil {
		return nil, err
	}

	t, err := s.resolveTicket(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	prevStatus := t.Status
	if in.Status != "" && policy.CanSetField(caller.Role, policy.FieldStatus) {
		t.Status = in.Status
	}
	if in.AssignedTo != "" && policy.CanSetField(caller.Role, policy.FieldAssignedTo) {
		t.AssignedTo = in.AssignedTo
	}
	if in.Priority != "" && policy.CanSetField(caller.Role, policy.FieldPriority) {
		t.Priority = in.Priority
	}
	t.UpdatedAt = time.Now()

	var audit *models.Comment
	if t.Status != prevStatus {
		content := "Status changed to " + strings.ReplaceAll(t.Status, "_", " ")
		if in.StatusChangeReason != "" {
			content += ": " + in.StatusChangeReason
		}
		audit = &models.Comment{
			TicketID:       t.ID,
			UserID:         caller.ID,
			Content:        content,
			IsStatusChange: true,
			CreatedAt:      time.Now(),
		}
	}

	if err := s.tickets.Update(ctx, t, audit); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.New(apperr.NotFound, "Ticket not found")
		}
		return nil, err
	}

	return s.enrichOne(ctx, *t)
}

func validateUpdateInput(in UpdateTicketInput) error {
	fields := map[string]string{}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		fields["status"] = "invalid status"
	}
	if in.Priority != "" && !models.ValidPriority(in.Priority) {
		fields["priority"] = "invalid priority"
	}
	if len(in.StatusChangeReason) > reasonMax {
		fields["statusChangeReason"] = fmt.Sprintf("Status change reason must be less than %d characters", reasonMax)
	}
	if len(fields) > 0 {
		return apperr.Invalid("Validation failed", fields)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Comments
// -----------------------------------------------------------------------------

// AddComment appends to the thread; the ownership rule is the same one
// that gates reading the ticket.
func (s *TicketService) AddComment(ctx context.Context, caller Caller, ticketID, content string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if len(content) < commentMin || len(content) > commentMax {
		return nil, apperr.Invalid("Validation failed", map[string]string{
			"content": fmt.Sprintf("Comment must be between %d and %d characters", commentMin, commentMax),
		})
	}

	if _, err := s.resolveTicket(ctx, caller, ticketID); err != nil {
		return nil, err
	}

	c := &models.Comment{
		TicketID: ticketID,
		UserID:   caller.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}

	return &models.CommentView{
		Comment: *c,
		User:    &models.UserSummary{ID: caller.ID, Name: caller.Name, Email: caller.Email, Avatar: caller.Avatar, Role: caller.Role},
	}, nil
}

// -----------------------------------------------------------------------------
// Enrichment
// -----------------------------------------------------------------------------

// lookupUser resolves a user id through a per-request cache. A missing
// user (deleted creator or assignee) resolves to nil, not an error.
func (s *TicketService) lookupUser(ctx context.Context, cache map[string]*models.User, id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}
	if u, ok := cache[id]; ok {
		return u, nil
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = u
	return u, nil
}

func (s *TicketService) lookupCategory(ctx context.Context, cache map[string]*models.Category, id string) (*models.Category, error) {
	if id == "" {
		return nil, nil
	}
	if c, ok := cache[id]; ok {
		return c, nil
	}
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = c
	return c, nil
}

// enrichOne attaches creator, assignee and category summaries.
func (s *TicketService) enrichOne(ctx context.Context, t models.Ticket) (*models.TicketView, error) {
	users := map[string]*models.User{}
	cats := map[string]*models.Category{}
	return s.enrichWith(ctx, t, users, cats)
}

func (s *TicketService) enrichWith(ctx context.Context, t models.Ticket, users map[string]*models.User, cats map[string]*models.Category) (*models.TicketView, error) {
	creator, err := s.lookupUser(ctx, users, t.UserID)
	if err != nil {
		return nil, err
	}
	assignee, err := s.lookupUser(ctx, users, t.AssignedTo)
	if err != nil {
		return nil, err
	}
	cat, err := s.lookupCategory(ctx, cats, t.CategoryID)
	if err != nil {
		return nil, err
	}
	return &models.TicketView{
		Ticket:       t,
		User:         creator.Summary(),
		AssignedUser: assignee.Summary(),
		Category:     cat.Summary(),
	}, nil
}

// enrichList enriches a page of tickets, sharing lookup caches and
// attaching comment counts.
func (s *TicketService) enrichList(ctx context.Context, items []models.Ticket) ([]models.TicketView, error) {
	ids := make([]string, 0, len(items))
	for _, t := range items {
		ids = append(ids, t.ID)
	}
	counts, err := s.comments.CountByTicket(ctx, ids)
	if err != nil {
		return nil, err
	}

	users := map[string]*models.User{}
	cats := map[string]*models.Category{}
	views := make([]models.TicketView, 0, len(items))
	for _, t := range items {
		v, err := s.enrichWith(ctx, t, users, cats)
		if err != nil {
			return nil, err
		}
		v.CommentCount = counts[t.ID]
		views = append(views, *v)
	}
	return views, nil
}
