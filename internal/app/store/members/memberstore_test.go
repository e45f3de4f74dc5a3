package memberstore_test

import (
	"sync"
	"testing"

	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	"github.com/sayamjn/SHG/internal/domain/models"
	"github.com/sayamjn/SHG/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newStores(t *testing.T) (*groupstore.Store, *memberstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	groups := groupstore.New(db)
	members := memberstore.New(db, groups, zap.NewNop())
	return groups, members, testutil.NewFixtures(t, db)
}

func testMember(groupID primitive.ObjectID, name string) models.Member {
	return models.Member{
		Name: name, Address: "addr", Age: 30, Gender: models.GenderFemale,
		Phone: "9", Country: "India", State: "MH", City: "Pune",
		District: "Pune", Taluka: "Haveli",
		GroupID: groupID, Active: true,
	}
}

func TestCreate_IncrementsGroupCount(t *testing.T) {
	groups, members, fx := newStores(t)
	ctx := testutil.TestContext(t)

	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")

	m, err := members.Create(ctx, testMember(g.ID, "Sunita Patil"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if m.Photo != models.DefaultPhoto {
		t.Errorf("photo = %q, want default sentinel", m.Photo)
	}
	if m.Role != models.RoleMember {
		t.Errorf("role = %q, want default member role", m.Role)
	}

	got, err := groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TotalMembers != 1 {
		t.Errorf("total_members = %d, want 1", got.TotalMembers)
	}
}

func TestDelete_DecrementsGroupCount(t *testing.T) {
	groups, members, fx := newStores(t)
	ctx := testutil.TestContext(t)

	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	m, err := members.Create(ctx, testMember(g.ID, "Sunita Patil"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := members.Delete(ctx, m); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TotalMembers != 0 {
		t.Errorf("total_members = %d after register+delete, want 0", got.TotalMembers)
	}
	if _, err := members.GetByID(ctx, m.ID); err == nil {
		t.Error("expected member to be gone after delete")
	}
}

func TestCreate_Concurrent(t *testing.T) {
	groups, members, fx := newStores(t)
	ctx := testutil.TestContext(t)

	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if _, err := members.Create(ctx, testMember(g.ID, "Member")); err != nil {
				t.Errorf("Create failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := groups.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TotalMembers != n {
		t.Errorf("total_members = %d after %d concurrent registrations, want %d", got.TotalMembers, n, n)
	}
	count, err := members.CountByGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("CountByGroup failed: %v", err)
	}
	if count != n {
		t.Errorf("collection count = %d, want %d", count, n)
	}
}

func TestListByGroup_FiltersAndSort(t *testing.T) {
	_, members, fx := newStores(t)
	ctx := testutil.TestContext(t)

	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	other := fx.CreateGroup(ctx, "Other", "GVM002", "password123")

	seed := []models.Member{
		testMember(g.ID, "Anita Shinde"),
		testMember(g.ID, "sunita patil"),
		testMember(g.ID, "Kavita Jadhav"),
		testMember(other.ID, "Ramesh Jadhav"),
	}
	seed[2].Gender = models.GenderOther
	for _, m := range seed {
		if _, err := members.Create(ctx, m); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	// Scoped to the group, sorted by name ignoring case.
	list, total, err := members.ListByGroup(ctx, g.ID, memberstore.ListFilter{}, memberstore.ListOptions{SortBy: "name"})
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("got %d/%d members, want 3/3", len(list), total)
	}
	wantOrder := []string{"Anita Shinde", "Kavita Jadhav", "sunita patil"}
	for i, want := range wantOrder {
		if list[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, list[i].Name, want)
		}
	}

	// Case-insensitive substring filter.
	list, total, err = members.ListByGroup(ctx, g.ID, memberstore.ListFilter{Name: "SUNITA"}, memberstore.ListOptions{})
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Name != "sunita patil" {
		t.Errorf("name filter: got %d results, want just sunita patil", len(list))
	}

	// Gender filter.
	_, total, err = members.ListByGroup(ctx, g.ID, memberstore.ListFilter{Gender: models.GenderOther}, memberstore.ListOptions{})
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if total != 1 {
		t.Errorf("gender filter: total = %d, want 1", total)
	}
}

func TestListByGroup_Pagination(t *testing.T) {
	_, members, fx := newStores(t)
	ctx := testutil.TestContext(t)

	g := fx.CreateGroup(ctx, "G", "MUS001", "password123")
	for i := 0; i < 5; i++ {
		if _, err := members.Create(ctx, testMember(g.ID, "Member")); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	page1, total, err := members.ListByGroup(ctx, g.ID, memberstore.ListFilter{}, memberstore.ListOptions{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if total != 5 || len(page1) != 2 {
		t.Fatalf("page 1: got %d/%d, want 2 of 5", len(page1), total)
	}

	page3, _, err := members.ListByGroup(ctx, g.ID, memberstore.ListFilter{}, memberstore.ListOptions{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3: got %d members, want 1", len(page3))
	}

	// Unfiltered pages walk the whole group without overlap.
	seen := map[primitive.ObjectID]bool{}
	for p := 1; p <= 3; p++ {
		page, _, err := members.ListByGroup(ctx, g.ID, memberstore.ListFilter{}, memberstore.ListOptions{Page: p, Limit: 2})
		if err != nil {
			t.Fatalf("ListByGroup failed: %v", err)
		}
		for _, m := range page {
			if seen[m.ID] {
				t.Errorf("member %s appeared on two pages", m.ID.Hex())
			}
			seen[m.ID] = true
		}
	}
	if len(seen) != 5 {
		t.Errorf("pagination visited %d members, want 5", len(seen))
	}
}
