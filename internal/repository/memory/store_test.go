package memory

import (
	"context"
	"testing"

	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

func TestTicketFilterScope(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()

	// owner scope wins over any explicit filter
	items, total, err := s.Tickets().List(ctx, repository.TicketFilter{OwnerID: "3", AssignedTo: "2"},
		repository.TicketPage{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("want 2 tickets for user 3 assigned to 2, got %d", total)
	}
	for _, tk := range items {
		if tk.UserID != "3" {
			t.Fatalf("scope leak: ticket %s owned by %s", tk.ID, tk.UserID)
		}
	}

	// unassigned filter
	_, total, err = s.Tickets().List(ctx, repository.TicketFilter{AssignedTo: repository.Unassigned},
		repository.TicketPage{Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Fatalf("want 2 unassigned tickets, got %d", total)
	}
}

func TestTicketSortStable(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()

	// priority sorts lexicographically: high < low < medium; the two
	// low tickets (3, 4) keep insertion order
	items, _, err := s.Tickets().List(ctx, repository.TicketFilter{},
		repository.TicketPage{Page: 1, Limit: 10, SortBy: "priority", SortOrder: "asc"})
	if err != nil {
		t.Fatal(err)
	}
	got := ids(items)
	want := []string{"1", "3", "4", "2"}
	if !equal(got, want) {
		t.Fatalf("asc priority order: got %v want %v", got, want)
	}

	items, _, err = s.Tickets().List(ctx, repository.TicketFilter{},
		repository.TicketPage{Page: 1, Limit: 10, SortBy: "priority", SortOrder: "desc"})
	if err != nil {
		t.Fatal(err)
	}
	got = ids(items)
	want = []string{"2", "3", "4", "1"}
	if !equal(got, want) {
		t.Fatalf("desc priority order: got %v want %v", got, want)
	}
}

func TestTicketPaginationBounds(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()

	items, total, err := s.Tickets().List(ctx, repository.TicketFilter{},
		repository.TicketPage{Page: 2, Limit: 3, SortBy: "createdAt", SortOrder: "asc"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 || len(items) != 1 {
		t.Fatalf("page 2 of 4 with limit 3: total=%d len=%d", total, len(items))
	}

	// page past the end is empty, not an error
	items, total, err = s.Tickets().List(ctx, repository.TicketFilter{},
		repository.TicketPage{Page: 9, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 || len(items) != 0 {
		t.Fatalf("overscan page: total=%d len=%d", total, len(items))
	}
}

func TestTicketUpdateWithAudit(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()

	tk, err := s.Tickets().Get(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	tk.Status = "in_progress"
	audit := &models.Comment{TicketID: "2", UserID: "2", Content: "Status changed to in progress", IsStatusChange: true}
	if err := s.Tickets().Update(ctx, tk, audit); err != nil {
		t.Fatal(err)
	}
	if audit.ID == "" {
		t.Fatal("audit comment should get an id")
	}

	cs, err := s.Comments().ListByTicket(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 1 || !cs[0].IsStatusChange {
		t.Fatalf("audit comment not stored: %+v", cs)
	}

	got, _ := s.Tickets().Get(ctx, "2")
	if got.Status != "in_progress" {
		t.Fatalf("status not persisted: %s", got.Status)
	}
}

func TestTicketUpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	err := s.Tickets().Update(ctx, &models.Ticket{ID: "nope"}, nil)
	if err != repository.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUserEmailLookupCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()
	u, err := s.Users().GetByEmail(ctx, "JOHN@EXAMPLE.COM")
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.ID != "3" {
		t.Fatalf("case-insensitive email lookup failed: %+v", u)
	}
}

func TestCategoryNameLookupCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()
	c, err := s.Categories().GetByName(ctx, "bILLing")
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || c.ID != "3" {
		t.Fatalf("case-insensitive name lookup failed: %+v", c)
	}
}

func TestCommentCounts(t *testing.T) {
	ctx := context.Background()
	s := NewStore().Seed()
	counts, err := s.Comments().CountByTicket(ctx, []string{"1", "2", "3"})
	if err != nil {
		t.Fatal(err)
	}
	if counts["1"] != 3 || counts["2"] != 0 || counts["3"] != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func ids(ts []models.Ticket) []string {
	out := make([]string, len(ts))
	for i, tk := range ts {
		out[i] = tk.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
