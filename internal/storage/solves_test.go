package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "solves.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewSolveRepository(db)

	id1, err := repo.Record("CD:59:03:D3:8F:D0", 42)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := repo.Record("CD:59:03:D3:8F:D0", 7)
	if err != nil {
		t.Fatal(err)
	}
	if id1 == id2 {
		t.Error("solve IDs should be unique")
	}

	solves, err := repo.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(solves) != 2 {
		t.Fatalf("got %d solves, want 2", len(solves))
	}
	for _, s := range solves {
		if s.DeviceAddress != "CD:59:03:D3:8F:D0" {
			t.Errorf("device address = %q", s.DeviceAddress)
		}
		if s.SolvedAt.IsZero() {
			t.Error("solved_at should be set")
		}
	}
}

func TestListLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewSolveRepository(db)

	for i := 0; i < 5; i++ {
		if _, err := repo.Record("", i); err != nil {
			t.Fatal(err)
		}
	}

	solves, err := repo.List(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(solves) != 3 {
		t.Errorf("got %d solves, want 3", len(solves))
	}
}

func TestCount(t *testing.T) {
	db := openTestDB(t)
	repo := NewSolveRepository(db)

	n, err := repo.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("empty db count = %d", n)
	}

	if _, err := repo.Record("", 1); err != nil {
		t.Fatal(err)
	}

	n, err = repo.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
