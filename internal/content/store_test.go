package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/eastdocs/studioctl/internal/ids"
)

type memSnapshot struct {
	raw     []byte
	saveErr error
	saves   int
}

func (m *memSnapshot) Load(ctx context.Context) ([]byte, bool, error) {
	if m.raw == nil {
		return nil, false, nil
	}
	return m.raw, true, nil
}

func (m *memSnapshot) Save(ctx context.Context, raw []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.raw = append([]byte(nil), raw...)
	m.saves++
	return nil
}

func (m *memSnapshot) Clear(ctx context.Context) error {
	m.raw = nil
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) (*Store, *memSnapshot) {
	t.Helper()
	snap := &memSnapshot{}
	store, err := NewStore(context.Background(), snap, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, snap
}

func TestStoreGetReturnsDeepCopy(t *testing.T) {
	store, _ := newTestStore(t)

	first := store.Get()
	first.StudioHire.Packages[0].Features[0] = "mutated"
	first.CompanyName = "mutated"

	second := store.Get()
	if second.CompanyName == "mutated" {
		t.Fatal("mutating a Get result leaked into the store")
	}
	if second.StudioHire.Packages[0].Features[0] == "mutated" {
		t.Fatal("mutating a nested slice from Get leaked into the store")
	}
}

func TestStoreApplyKeepsSiblingSectionIdentity(t *testing.T) {
	before := Defaults()
	after, err := apply(before, SetStudioHirePackages{Packages: []StudioPackage{
		{Name: "Dry Hire", Price: "£40", Duration: "per hour", Features: []string{"Room only"}},
	}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if &after.Editing.Packages[0] != &before.Editing.Packages[0] {
		t.Error("editing packages should share backing storage after a studio hire update")
	}
	if &after.Membership.Tiers[0] != &before.Membership.Tiers[0] {
		t.Error("membership tiers should share backing storage after a studio hire update")
	}
	if len(after.StudioHire.Packages) != 1 || after.StudioHire.Packages[0].Name != "Dry Hire" {
		t.Errorf("studio hire packages not replaced: %+v", after.StudioHire.Packages)
	}
}

func TestStoreMutationsPersistAndReload(t *testing.T) {
	store, snap := newTestStore(t)
	ctx := context.Background()

	name := "East Docs Media"
	if err := store.ReplaceSection(ctx, SectionPatch{CompanyName: &name}); err != nil {
		t.Fatalf("ReplaceSection: %v", err)
	}
	if snap.saves != 1 {
		t.Fatalf("saves = %d, want 1", snap.saves)
	}

	reloaded, err := NewStore(ctx, snap, testLogger())
	if err != nil {
		t.Fatalf("NewStore reload: %v", err)
	}
	if got := reloaded.Get().CompanyName; got != name {
		t.Errorf("CompanyName after reload = %q, want %q", got, name)
	}
}

func TestStorePersistFailureLeavesMemoryUnchanged(t *testing.T) {
	store, snap := newTestStore(t)
	snap.saveErr = errors.New("disk full")

	name := "should not stick"
	err := store.ReplaceSection(context.Background(), SectionPatch{CompanyName: &name})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if got := store.Get().CompanyName; got == name {
		t.Errorf("failed save must not change in-memory content, got %q", got)
	}
}

func TestStoreReplaceSectionRejectsEmptyPatch(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.ReplaceSection(context.Background(), SectionPatch{})
	var badReq *BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("error = %v, want BadRequestError", err)
	}
}

func TestStoreReplaceSectionEnforcesCollectionChecks(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sh := store.Get().StudioHire
	sh.Packages = []StudioPackage{{
		Name:        "Dry Hire",
		Price:       "£40",
		Duration:    "per hour",
		Description: `<script>alert(1)</script>Room only`,
	}}

	err := store.ReplaceSection(ctx, SectionPatch{StudioHire: &sh})
	var badReq *BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("error = %v, want BadRequestError for a package without features", err)
	}
	if got := store.Get().StudioHire.Packages; len(got) == 1 && got[0].Name == "Dry Hire" {
		t.Fatal("rejected section replacement must not change the tree")
	}

	sh.Packages[0].Features = []string{"Room only"}
	if err := store.ReplaceSection(ctx, SectionPatch{StudioHire: &sh}); err != nil {
		t.Fatalf("ReplaceSection: %v", err)
	}
	got := store.Get().StudioHire.Packages[0].Description
	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Errorf("description served unsanitized: %q", got)
	}
	if got != "Room only" {
		t.Errorf("Description = %q, want %q", got, "Room only")
	}
}

func TestStoreResetRestoresDefaultsAndClearsSnapshot(t *testing.T) {
	store, snap := newTestStore(t)
	ctx := context.Background()

	if err := store.Apply(ctx, SetCompanyInfo{CompanyName: "Renamed", Tagline: "t", Description: "d"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if got, want := store.Get().CompanyName, Defaults().CompanyName; got != want {
		t.Errorf("CompanyName after reset = %q, want %q", got, want)
	}
	if snap.raw != nil {
		t.Error("reset must delete the persisted snapshot")
	}

	reloaded, err := NewStore(ctx, snap, testLogger())
	if err != nil {
		t.Fatalf("NewStore after reset: %v", err)
	}
	if got, want := reloaded.Get().CompanyName, Defaults().CompanyName; got != want {
		t.Errorf("CompanyName after reset+reload = %q, want %q", got, want)
	}
}

func TestStorePortfolioLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	added, err := store.AddPortfolioItem(ctx, PortfolioItem{
		Title:       "Podcast launch",
		Description: "Studio recorded pilot episode",
		VideoURL:    "https://example.com/v/1",
	})
	if err != nil {
		t.Fatalf("AddPortfolioItem: %v", err)
	}
	if !ids.Valid(added.ID) {
		t.Fatalf("assigned id %q is not a valid ULID", added.ID)
	}

	updated, err := store.UpdatePortfolioItem(ctx, added.ID, PortfolioItem{
		ID:       "attempted-override",
		Title:    "Podcast launch (final cut)",
		VideoURL: added.VideoURL,
	})
	if err != nil {
		t.Fatalf("UpdatePortfolioItem: %v", err)
	}
	if updated.ID != added.ID {
		t.Errorf("update changed item id: %q -> %q", added.ID, updated.ID)
	}

	items := store.Get().Portfolio
	if len(items) != 1 || items[0].Title != "Podcast launch (final cut)" {
		t.Fatalf("portfolio after update = %+v", items)
	}

	if err := store.RemovePortfolioItem(ctx, added.ID); err != nil {
		t.Fatalf("RemovePortfolioItem: %v", err)
	}
	if got := store.Get().Portfolio; len(got) != 0 {
		t.Errorf("portfolio after remove = %+v, want empty", got)
	}

	var notFound *NotFoundError
	if err := store.RemovePortfolioItem(ctx, added.ID); !errors.As(err, &notFound) {
		t.Errorf("removing a missing item: error = %v, want NotFoundError", err)
	}
}

func TestStoreAddPortfolioItemRequiresTitle(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.AddPortfolioItem(context.Background(), PortfolioItem{Title: "   "})
	var badReq *BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("error = %v, want BadRequestError", err)
	}
}
