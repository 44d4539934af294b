package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/cfrsync/internal/adapters/sqlite"
	"github.com/example/cfrsync/internal/ports/secondary"
)

func TestTitleRepositoryCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTitleRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.TitleRecord{ID: 5, Name: "Administrative Personnel"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, &secondary.TitleRecord{ID: 1, Name: "General Provisions"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	titles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(titles))
	}

	// Ordered by title number, not insertion order.
	if titles[0].ID != 1 || titles[1].ID != 5 {
		t.Errorf("expected titles ordered by id, got %d then %d", titles[0].ID, titles[1].ID)
	}
}

func TestTitleRepositoryExists(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTitleRepository(db)
	ctx := context.Background()

	seedTitle(t, db, 7, "Agriculture")

	exists, err := repo.Exists(ctx, 7)
	mustExist(t, exists, err, "title 7")

	exists, err = repo.Exists(ctx, 99)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected title 99 to be absent")
	}
}

func TestTitleRepositoryGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTitleRepository(db)
	ctx := context.Background()

	seedTitle(t, db, 5, "Administrative Personnel")

	title, err := repo.Get(ctx, 5)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if title.ID != 5 || title.Name != "Administrative Personnel" {
		t.Errorf("unexpected title: %+v", title)
	}

	// Absent titles surface the sentinel so callers can map them to 404.
	_, err = repo.Get(ctx, 99)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing title, got %v", err)
	}
}

func TestTitleRepositoryDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTitleRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.TitleRecord{ID: 5, Name: "Administrative Personnel"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, &secondary.TitleRecord{ID: 5, Name: "Duplicate"}); err == nil {
		t.Error("expected primary key violation on duplicate title number")
	}
}
