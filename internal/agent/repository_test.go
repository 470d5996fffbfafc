package agent

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/satish051/RealEstateApp/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestInsertAndGet(t *testing.T) {
	repo := NewRepository(testDB(t))

	created, err := repo.Insert(&Agent{
		FullName: "Maya Shrestha",
		Email:    "maya@realestate.com",
		Phone:    "555-0101",
		Bio:      "Ten years in residential sales.",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected generated ID")
	}
	// missing avatar falls back to the default
	if created.Avatar != DefaultAvatar {
		t.Errorf("avatar = %q, want %q", created.Avatar, DefaultAvatar)
	}

	got, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Maya Shrestha" {
		t.Errorf("name = %q, want %q", got.FullName, "Maya Shrestha")
	}
}

func TestInsertValidation(t *testing.T) {
	repo := NewRepository(testDB(t))

	tests := []struct {
		name  string
		agent Agent
	}{
		{"missing name", Agent{Email: "a@example.com"}},
		{"missing email", Agent{FullName: "A"}},
		{"whitespace name", Agent{FullName: "   ", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Insert(&tt.agent); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestListOrderedByName(t *testing.T) {
	repo := NewRepository(testDB(t))

	for _, name := range []string{"Prakash Karki", "Anita Gurung", "Maya Shrestha"} {
		if _, err := repo.Insert(&Agent{FullName: name, Email: name + "@realestate.com"}); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	agents, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Anita Gurung", "Maya Shrestha", "Prakash Karki"}
	if len(agents) != len(want) {
		t.Fatalf("got %d agents, want %d", len(agents), len(want))
	}
	for i, name := range want {
		if agents[i].FullName != name {
			t.Errorf("agents[%d] = %q, want %q", i, agents[i].FullName, name)
		}
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewRepository(testDB(t))

	created, err := repo.Insert(&Agent{FullName: "Maya Shrestha", Email: "maya@realestate.com"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	created.Phone = "555-0199"
	created.Avatar = "maya.jpg"
	if err := repo.Update(created); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Phone != "555-0199" || got.Avatar != "maya.jpg" {
		t.Errorf("unexpected agent after update: %+v", got)
	}

	if err := repo.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(created.ID); err == nil {
		t.Error("expected error after delete")
	}

	if err := repo.Update(created); err == nil {
		t.Error("expected error updating deleted agent")
	}
}

func TestCount(t *testing.T) {
	repo := NewRepository(testDB(t))

	if _, err := repo.Insert(&Agent{FullName: "Maya Shrestha", Email: "maya@realestate.com"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := repo.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
