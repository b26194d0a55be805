package service

import (
	"context"
	"testing"

	"github.com/abhishek-kr07/quickdesk/internal/apperr"
	"github.com/abhishek-kr07/quickdesk/internal/repository/memory"
)

func newCategoryService() (*CategoryService, *memory.Store) {
	s := memory.NewStore().Seed()
	return NewCategoryService(s.Categories()), s
}

func TestCategoryCreateDefaultsColor(t *testing.T) {
	svc, _ := newCategoryService()
	c, err := svc.Create(context.Background(), admin, CategoryInput{Name: "Outages"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Color != "#1976d2" {
		t.Fatalf("default color: %s", c.Color)
	}
	if c.ID == "" {
		t.Fatal("id should be assigned")
	}
}

func TestCategoryNameConflictCaseInsensitive(t *testing.T) {
	svc, _ := newCategoryService()
	_, err := svc.Create(context.Background(), admin, CategoryInput{Name: "bILLING"})
	wantKind(t, err, apperr.Conflict)
}

func TestCategoryCreateRequiresAdmin(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()
	for _, c := range []Caller{agent, john} {
		_, err := svc.Create(ctx, c, CategoryInput{Name: "Outages"})
		wantKind(t, err, apperr.AccessDenied)
	}
}

func TestCategoryColorValidation(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()
	for _, color := range []string{"blue", "#12345", "#GGGGGG", "123456#"} {
		_, err := svc.Create(ctx, admin, CategoryInput{Name: "Outages", Color: color})
		wantKind(t, err, apperr.Validation)
	}
	if _, err := svc.Create(ctx, admin, CategoryInput{Name: "Outages", Color: "#AbCdEf"}); err != nil {
		t.Fatalf("mixed-case hex should pass: %v", err)
	}
}

func TestCategoryUpdatePartial(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	c, err := svc.Update(ctx, admin, "3", CategoryInput{Color: "#000000"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Billing" || c.Color != "#000000" {
		t.Fatalf("partial update: %+v", c)
	}

	// renaming to another category's name is a conflict, but keeping
	// your own name (any casing) is not
	_, err = svc.Update(ctx, admin, "3", CategoryInput{Name: "Technical Support"})
	wantKind(t, err, apperr.Conflict)
	if _, err := svc.Update(ctx, admin, "3", CategoryInput{Name: "BILLING"}); err != nil {
		t.Fatalf("same-name rename should pass: %v", err)
	}
}

func TestCategoryDeleteLeavesTicketsDangling(t *testing.T) {
	csvc, store := newCategoryService()
	ctx := context.Background()

	if err := csvc.Delete(ctx, admin, "4"); err != nil {
		t.Fatal(err)
	}
	if err := csvc.Delete(ctx, admin, "4"); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("second delete: %v", err)
	}

	// ticket 4 referenced category 4; its view now carries no category
	tsvc := NewTicketService(store.Tickets(), store.Comments(), store.Users(), store.Categories())
	v, err := tsvc.Get(ctx, jane, "4")
	if err != nil {
		t.Fatal(err)
	}
	if v.Category != nil {
		t.Fatalf("dangling category should enrich as nil, got %+v", v.Category)
	}
}

func TestCategoryGetNotFound(t *testing.T) {
	svc, _ := newCategoryService()
	_, err := svc.Get(context.Background(), "99")
	wantKind(t, err, apperr.NotFound)
}
