package storage_test

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nikbrunner/mev/internal/model"
	"github.com/nikbrunner/mev/internal/storage"
)

func newStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "dev.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seeded(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s := newStore(t)
	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return s
}

func names(items []model.MenuItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.MenuName
	}
	return out
}

func TestSQLiteStore_Migrates(t *testing.T) {
	s := newStore(t)

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if v != 2 {
		t.Errorf("expected schema version 2, got %d", v)
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dev.db")
	ctx := context.Background()

	s, err := storage.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store with nested dir: %v", err)
	}
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	s.Close()

	s, err = storage.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer s.Close()

	// a second seed is a no-op
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("failed to reseed: %v", err)
	}
	menus, err := s.Menus(ctx, "r-katsu")
	if err != nil {
		t.Fatalf("failed to list menus: %v", err)
	}
	if len(menus) != 3 {
		t.Errorf("expected 3 menus after reopen, got %d", len(menus))
	}
}

func TestSQLiteStore_SearchPaginates(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	var all []model.MenuItem
	var after int64
	for page := 0; page < 10; page++ {
		items, err := s.Search(ctx, storage.SearchQuery{After: after, Limit: 5})
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		all = append(all, items...)
		if len(items) == 0 || items[len(items)-1].Last {
			break
		}
		last := items[len(items)-1]
		for _, it := range items[:len(items)-1] {
			if it.Last {
				t.Errorf("only the final item may be last, got %s", it.MenuName)
			}
		}
		after = mustInt(t, last.ID)
	}

	if len(all) != 13 {
		t.Fatalf("expected 13 seeded items, got %d", len(all))
	}
	if !all[len(all)-1].Last {
		t.Error("expected final item to be last")
	}
	for i := 1; i < len(all); i++ {
		if mustInt(t, all[i-1].ID) >= mustInt(t, all[i].ID) {
			t.Errorf("items out of order at %d", i)
		}
	}
}

func TestSQLiteStore_SearchKeyword(t *testing.T) {
	s := seeded(t)

	items, err := s.Search(context.Background(), storage.SearchQuery{Keyword: "돈까스", Limit: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	got := names(items)
	if len(got) != 2 || got[0] != "돈까스" || got[1] != "치즈 돈까스" {
		t.Errorf("expected both 돈까스 menus in id order, got %v", got)
	}
	if !items[1].Last {
		t.Error("expected last flag on final match")
	}
	if items[0].RestaurantName != "카츠하우스" {
		t.Errorf("expected restaurant name, got %q", items[0].RestaurantName)
	}
}

func TestSQLiteStore_SearchFacets(t *testing.T) {
	s := seeded(t)

	// AND across facets, OR within one
	items, err := s.Search(context.Background(), storage.SearchQuery{
		Keyword: "피자",
		Facets: map[string][]string{
			"flavor": {"1", "2"},
			"price":  {"3"},
		},
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	got := names(items)
	if len(got) != 2 || got[0] != "페퍼로니 피자" || got[1] != "고르곤졸라 피자" {
		t.Errorf("unexpected matches: %v", got)
	}
	if items[0].Facets["flavor"] != "2" {
		t.Errorf("expected facets on items, got %v", items[0].Facets)
	}
}

func TestSQLiteStore_Evaluation(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	m, err := s.AddMenu(ctx, "r-hanok", "육회비빔밥", &storage.Image{MIME: "image/png", Data: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("failed to add menu: %v", err)
	}
	if m.ImageURL == "" {
		t.Error("expected image url for menu with picture")
	}

	ev := model.Evaluation{Scores: map[string]string{"spiciness": "4"}}
	if err := s.AddEvaluation(ctx, m.MenuID, ev, nil); err != nil {
		t.Fatalf("failed to add evaluation: %v", err)
	}

	items, err := s.Search(ctx, storage.SearchQuery{Facets: map[string][]string{"spiciness": {"4"}}, Limit: 20})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	got := names(items)
	if len(got) != 2 || got[1] != "육회비빔밥" {
		t.Errorf("expected evaluated menu among very spicy ones, got %v", got)
	}

	img, err := s.MenuImage(ctx, m.MenuID)
	if err != nil {
		t.Fatalf("failed to load image: %v", err)
	}
	if img.MIME != "image/png" || len(img.Data) != 3 {
		t.Errorf("unexpected image %+v", img)
	}

	if err := s.AddEvaluation(ctx, "missing", ev, nil); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_Restaurants(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	r, err := s.UpsertRestaurant(ctx, model.Restaurant{RestaurantID: "r1", Name: "첫집"})
	if err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}
	again, err := s.UpsertRestaurant(ctx, model.Restaurant{RestaurantID: "r1", Name: "다른 이름"})
	if err != nil {
		t.Fatalf("failed to upsert again: %v", err)
	}
	if again != r {
		t.Errorf("expected stored restaurant %+v, got %+v", r, again)
	}

	if _, err := s.Menus(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.AddMenu(ctx, "nope", "x", nil); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.MenuImage(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_Accounts(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if err := s.Authenticate(ctx, storage.SeedUsername, storage.SeedPassword); err != nil {
		t.Fatalf("expected seed login to work: %v", err)
	}
	if err := s.Authenticate(ctx, storage.SeedUsername, "wrong"); !errors.Is(err, storage.ErrCredentials) {
		t.Errorf("expected ErrCredentials, got %v", err)
	}
	if err := s.Authenticate(ctx, "ghost", "x"); !errors.Is(err, storage.ErrCredentials) {
		t.Errorf("expected ErrCredentials for unknown user, got %v", err)
	}

	if _, err := s.CreateVerification(ctx, "MEV@example.com"); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict for registered email, got %v", err)
	}
	if tok, err := s.CreateVerification(ctx, "new@example.com"); err != nil || tok == "" {
		t.Errorf("expected token, got %q, %v", tok, err)
	}

	name, err := s.UsernameByEmail(ctx, storage.SeedEmail)
	if err != nil || name != storage.SeedUsername {
		t.Errorf("expected %q, got %q, %v", storage.SeedUsername, name, err)
	}
	if _, err := s.UsernameByEmail(ctx, "ghost@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	temp, err := s.ResetPassword(ctx, storage.SeedEmail)
	if err != nil {
		t.Fatalf("failed to reset: %v", err)
	}
	if err := s.Authenticate(ctx, storage.SeedUsername, temp); err != nil {
		t.Errorf("expected temporary password to work: %v", err)
	}
	if _, err := s.ResetPassword(ctx, "ghost@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.CreateUser(ctx, storage.SeedUsername, "other@example.com", "x"); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("expected ErrConflict for taken username, got %v", err)
	}
	if tok, err := s.CreateSession(ctx, storage.SeedUsername); err != nil || tok == "" {
		t.Errorf("expected session token, got %q, %v", tok, err)
	}
}

func mustInt(t *testing.T, s string) int64 {
	t.Helper()
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("bad id %q: %v", s, err)
	}
	return n
}
