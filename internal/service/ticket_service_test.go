package service

import (
	"context"
	"strings"
	"testing"

	"github.com/abhishek-kr07/quickdesk/internal/apperr"
	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository/memory"
)

// seed identities (see memory.Seed)
var (
	admin = Caller{ID: "1", Name: "Admin User", Email: "admin@quickdesk.com", Role: "admin"}
	agent = Caller{ID: "2", Name: "Support Agent", Email: "agent@quickdesk.com", Role: "agent"}
	john  = Caller{ID: "3", Name: "John Doe", Email: "john@example.com", Role: "user"}
	jane  = Caller{ID: "4", Name: "Jane Smith", Email: "jane@example.com", Role: "user"}
)

func newTicketService() (*TicketService, *memory.Store) {
	s := memory.NewStore().Seed()
	return NewTicketService(s.Tickets(), s.Comments(), s.Users(), s.Categories()), s
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperr.KindOf(err) != kind {
		t.Fatalf("wrong error kind for %v: got %d want %d", err, apperr.KindOf(err), kind)
	}
}

// -----------------------------------------------------------------------------
// List
// -----------------------------------------------------------------------------

func TestListScopesUserToOwnTickets(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	// whatever filters a plain user supplies, results stay their own
	for _, in := range []ListTicketsInput{
		{},
		{AssignedTo: "2"},
		{AssignedTo: "unassigned"},
		{Status: "open"},
	} {
		items, _, err := svc.List(ctx, jane, in)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range items {
			if v.UserID != jane.ID {
				t.Fatalf("filter %+v leaked ticket %s owned by %s", in, v.ID, v.UserID)
			}
		}
	}
}

func TestListDefaultOrderNewestFirst(t *testing.T) {
	svc, _ := newTicketService()
	items, p, err := svc.List(context.Background(), agent, ListTicketsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 4 || p.TotalTickets != 4 {
		t.Fatalf("want all 4 tickets, got %d (total %d)", len(items), p.TotalTickets)
	}
	// createdAt desc: 1 (Jan 15), 2 (Jan 14), 4 (Jan 13), 3 (Jan 10)
	want := []string{"1", "2", "4", "3"}
	for i, v := range items {
		if v.ID != want[i] {
			t.Fatalf("position %d: got %s want %s", i, v.ID, want[i])
		}
	}
}

func TestListAgentAssignedToMe(t *testing.T) {
	svc, _ := newTicketService()
	items, _, err := svc.List(context.Background(), agent, ListTicketsInput{AssignedTo: "me"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("agent 2 has 2 assigned tickets, got %d", len(items))
	}
	for _, v := range items {
		if v.Ticket.AssignedTo != agent.ID {
			t.Fatalf("ticket %s not assigned to agent", v.ID)
		}
	}
}

func TestListConjunctiveFilters(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	items, _, err := svc.List(ctx, admin, ListTicketsInput{Status: "open", Priority: "low"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "4" {
		t.Fatalf("open+low should match only ticket 4, got %v", ids(items))
	}

	items, _, err = svc.List(ctx, admin, ListTicketsInput{CategoryID: "3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "3" {
		t.Fatalf("category 3 should match only ticket 3, got %v", ids(items))
	}
}

func TestListPaginationMetadata(t *testing.T) {
	svc, _ := newTicketService()
	items, p, err := svc.List(context.Background(), admin, ListTicketsInput{Page: 2, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("page 2 limit 3 of 4: got %d items", len(items))
	}
	if p.CurrentPage != 2 || p.TotalPages != 2 || p.TotalTickets != 4 {
		t.Fatalf("pagination: %+v", p)
	}
	if p.HasNextPage || !p.HasPrevPage {
		t.Fatalf("page flags: %+v", p)
	}
}

func TestListNoMatchIsEmptyNotError(t *testing.T) {
	svc, _ := newTicketService()
	items, p, err := svc.List(context.Background(), admin, ListTicketsInput{Status: "closed"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 || p.TotalTickets != 0 || p.TotalPages != 0 {
		t.Fatalf("empty result expected: items=%d pagination=%+v", len(items), p)
	}
}

func TestListRejectsInvalidEnums(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()
	for _, in := range []ListTicketsInput{
		{Status: "pending"},
		{Priority: "critical"},
		{SortBy: "subject"},
		{SortOrder: "sideways"},
		{Limit: 101},
		{Page: -1},
	} {
		_, _, err := svc.List(ctx, admin, in)
		wantKind(t, err, apperr.Validation)
	}
}

func TestListEnrichment(t *testing.T) {
	svc, _ := newTicketService()
	items, _, err := svc.List(context.Background(), agent, ListTicketsInput{Status: "in_progress"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("want ticket 1, got %v", ids(items))
	}
	v := items[0]
	if v.User == nil || v.User.ID != "3" || v.User.Name != "John Doe" {
		t.Fatalf("creator summary: %+v", v.User)
	}
	if v.AssignedUser == nil || v.AssignedUser.ID != "2" {
		t.Fatalf("assignee summary: %+v", v.AssignedUser)
	}
	if v.Category == nil || v.Category.ID != "2" || v.Category.Color == "" {
		t.Fatalf("category summary: %+v", v.Category)
	}
	if v.CommentCount != 3 {
		t.Fatalf("comment count: %d", v.CommentCount)
	}
	if len(v.Comments) != 0 {
		t.Fatal("list items must not carry comment bodies")
	}
}

// -----------------------------------------------------------------------------
// Get
// -----------------------------------------------------------------------------

func TestGetNotFoundBeforeAccessCheck(t *testing.T) {
	svc, _ := newTicketService()
	_, err := svc.Get(context.Background(), jane, "999")
	wantKind(t, err, apperr.NotFound)
}

func TestGetDeniedForNonOwner(t *testing.T) {
	svc, _ := newTicketService()
	_, err := svc.Get(context.Background(), jane, "1")
	wantKind(t, err, apperr.AccessDenied)
}

func TestGetCommentsAscendingWithAuthors(t *testing.T) {
	svc, _ := newTicketService()
	v, err := svc.Get(context.Background(), john, "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Comments) != 3 {
		t.Fatalf("want 3 comments, got %d", len(v.Comments))
	}
	for i := 1; i < len(v.Comments); i++ {
		if v.Comments[i].CreatedAt.Before(v.Comments[i-1].CreatedAt) {
			t.Fatal("comments not in ascending order")
		}
	}
	first := v.Comments[0]
	if first.User == nil || first.User.ID != "2" || first.User.Role != "agent" {
		t.Fatalf("comment author enrichment: %+v", first.User)
	}
}

// -----------------------------------------------------------------------------
// Create
// -----------------------------------------------------------------------------

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTicketService()
	v, err := svc.Create(context.Background(), john, CreateTicketInput{
		Subject:     "Cannot login to my account",
		Description: "The login page keeps rejecting me.",
		CategoryID:  "2",
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != models.StatusOpen {
		t.Fatalf("new ticket status: %s", v.Status)
	}
	if v.Priority != models.PriorityMedium {
		t.Fatalf("default priority: %s", v.Priority)
	}
	if v.UserID != john.ID {
		t.Fatalf("creator: %s", v.UserID)
	}
	if v.ID == "" || v.CreatedAt.IsZero() {
		t.Fatal("id and timestamps should be set")
	}
	if v.Category == nil || v.Category.ID != "2" {
		t.Fatalf("category enrichment: %+v", v.Category)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	_, err := svc.Create(ctx, john, CreateTicketInput{Subject: "hey", Description: "long enough text", CategoryID: "1"})
	wantKind(t, err, apperr.Validation)

	_, err = svc.Create(ctx, john, CreateTicketInput{Subject: "Valid subject here", Description: "short", CategoryID: "1"})
	wantKind(t, err, apperr.Validation)

	// unknown category is a validation failure, checked before any write
	_, err = svc.Create(ctx, john, CreateTicketInput{Subject: "Valid subject here", Description: "long enough text", CategoryID: "42"})
	wantKind(t, err, apperr.Validation)
}

// -----------------------------------------------------------------------------
// Update workflow
// -----------------------------------------------------------------------------

func TestUpdateStatusAppendsAuditComment(t *testing.T) {
	svc, store := newTicketService()
	ctx := context.Background()

	v, err := svc.Update(ctx, agent, "2", UpdateTicketInput{Status: "in_progress", StatusChangeReason: "Investigating"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != "in_progress" {
		t.Fatalf("status: %s", v.Status)
	}

	cs, err := store.Comments().ListByTicket(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 1 {
		t.Fatalf("want exactly one audit comment, got %d", len(cs))
	}
	c := cs[0]
	if !c.IsStatusChange {
		t.Fatal("audit flag not set")
	}
	if c.Content != "Status changed to in progress: Investigating" {
		t.Fatalf("audit content: %q", c.Content)
	}
	if c.UserID != agent.ID {
		t.Fatalf("audit author: %s", c.UserID)
	}
}

func TestUpdateSameStatusEmitsNoAudit(t *testing.T) {
	svc, store := newTicketService()
	ctx := context.Background()

	before, _ := store.Comments().ListByTicket(ctx, "1")
	if _, err := svc.Update(ctx, agent, "1", UpdateTicketInput{Status: "in_progress"}); err != nil {
		t.Fatal(err)
	}
	after, _ := store.Comments().ListByTicket(ctx, "1")
	if len(after) != len(before) {
		t.Fatalf("idempotent status set grew the thread: %d -> %d", len(before), len(after))
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	svc, store := newTicketService()
	ctx := context.Background()

	orig, _ := store.Tickets().Get(ctx, "4")
	v, err := svc.Update(ctx, admin, "4", UpdateTicketInput{Priority: "high"})
	if err != nil {
		t.Fatal(err)
	}
	if !v.UpdatedAt.After(orig.UpdatedAt) {
		t.Fatal("updatedAt not refreshed")
	}
}

func TestUpdateUserFieldsSilentlyIgnored(t *testing.T) {
	svc, store := newTicketService()
	ctx := context.Background()

	// john owns ticket 1; assignment and status are dropped, priority applies
	v, err := svc.Update(ctx, john, "1", UpdateTicketInput{Status: "closed", AssignedTo: "1", Priority: "low"})
	if err != nil {
		t.Fatal(err)
	}
	if v.Status != "in_progress" {
		t.Fatalf("status should be untouched, got %s", v.Status)
	}
	if v.Ticket.AssignedTo != "2" {
		t.Fatalf("assignee should be untouched, got %s", v.Ticket.AssignedTo)
	}
	if v.Priority != "low" {
		t.Fatalf("owner may change priority, got %s", v.Priority)
	}

	// the ignored status patch must not leave an audit comment
	cs, _ := store.Comments().ListByTicket(ctx, "1")
	for _, c := range cs {
		if c.IsStatusChange {
			t.Fatal("no audit comment expected")
		}
	}
}

func TestUpdateDeniedForNonOwner(t *testing.T) {
	svc, _ := newTicketService()
	_, err := svc.Update(context.Background(), jane, "1", UpdateTicketInput{Priority: "low"})
	wantKind(t, err, apperr.AccessDenied)
}

func TestUpdateUnknownTicket(t *testing.T) {
	svc, _ := newTicketService()
	_, err := svc.Update(context.Background(), agent, "999", UpdateTicketInput{Status: "closed"})
	wantKind(t, err, apperr.NotFound)
}

func TestUpdateRejectsBadEnums(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()
	_, err := svc.Update(ctx, agent, "1", UpdateTicketInput{Status: "reopened"})
	wantKind(t, err, apperr.Validation)
	_, err = svc.Update(ctx, agent, "1", UpdateTicketInput{StatusChangeReason: strings.Repeat("x", 501)})
	wantKind(t, err, apperr.Validation)
}

// -----------------------------------------------------------------------------
// Comments
// -----------------------------------------------------------------------------

func TestAddCommentRoundTrip(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	c, err := svc.AddComment(ctx, john, "1", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if c.IsStatusChange {
		t.Fatal("plain comment flagged as status change")
	}
	if c.User == nil || c.User.ID != john.ID || c.User.Role != "user" {
		t.Fatalf("author enrichment: %+v", c.User)
	}

	v, err := svc.Get(ctx, john, "1")
	if err != nil {
		t.Fatal(err)
	}
	last := v.Comments[len(v.Comments)-1]
	if last.Content != "hello" || last.UserID != john.ID {
		t.Fatalf("round trip failed: %+v", last)
	}
}

func TestAddCommentValidation(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()
	_, err := svc.AddComment(ctx, john, "1", "   ")
	wantKind(t, err, apperr.Validation)
	_, err = svc.AddComment(ctx, john, "1", strings.Repeat("a", 1001))
	wantKind(t, err, apperr.Validation)
}

func TestAddCommentOwnershipRule(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()
	_, err := svc.AddComment(ctx, jane, "1", "let me in")
	wantKind(t, err, apperr.AccessDenied)
	if _, err := svc.AddComment(ctx, agent, "1", "agents may comment anywhere"); err != nil {
		t.Fatal(err)
	}
}

func ids(vs []models.TicketView) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}
