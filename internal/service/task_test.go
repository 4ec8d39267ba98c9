package service

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"tasktracker/m/domain"
)

func createUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	email := username + "@example.com"
	res := newAuth(db).Register(email, username, "hunter22", "hunter22")
	if !res.Success {
		t.Fatalf("create user %s: %s", email, res.Message)
	}
	return res.User.ID
}

func TestCreateForcesPendingAndJoinsOwnerEmail(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTask(db)
	alice := createUser(t, db, "alice")

	created, err := tasks.Create(alice, "T", "D")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.StatusPending {
		t.Errorf("status = %v, want Pending", created.Status)
	}
	if created.UserID != alice {
		t.Errorf("owner = %d, want %d", created.UserID, alice)
	}
	if created.CreatedAt == "" {
		t.Error("expected a creation timestamp")
	}
	if created.UpdatedAt != nil {
		t.Error("a fresh task should have no update timestamp")
	}

	got, err := tasks.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil {
		t.Fatal("task not found after create")
	}
	if got.OwnerEmail != "alice@example.com" {
		t.Errorf("owner email = %q", got.OwnerEmail)
	}
}

func TestGetByIDMissing(t *testing.T) {
	tasks := NewTask(newTestDB(t))
	got, err := tasks.GetByID(12345)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Fatalf("got = %+v, want nil", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTask(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	a, err := tasks.Create(alice, "A", "")
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := tasks.Create(alice, "B", "")
	if err != nil {
		t.Fatalf("create B: %v", err)
	}
	if _, err := tasks.Create(bob, "C", ""); err != nil {
		t.Fatalf("create C: %v", err)
	}

	all, err := tasks.GetAll()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Title != "C" || all[1].Title != "B" || all[2].Title != "A" {
		t.Errorf("order = [%s %s %s], want [C B A]", all[0].Title, all[1].Title, all[2].Title)
	}

	mine, err := tasks.GetByUser(alice)
	if err != nil {
		t.Fatalf("get by user: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("len = %d, want 2", len(mine))
	}
	if mine[0].ID != b.ID || mine[1].ID != a.ID {
		t.Errorf("order = [%d %d], want [%d %d]", mine[0].ID, mine[1].ID, b.ID, a.ID)
	}
}

func TestUpdateOverwritesWholesale(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTask(db)
	alice := createUser(t, db, "alice")

	created, err := tasks.Create(alice, "T", "D")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := tasks.Update(created.ID, "T2", "", domain.StatusCompleted)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("update returned nil for an existing task")
	}
	if updated.Title != "T2" || updated.Description != "" || updated.Status != domain.StatusCompleted {
		t.Errorf("updated = %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Error("update should set the update timestamp")
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("creation timestamp must not change on update")
	}
}

func TestUpdateMissingIsSentinelNotError(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTask(db)

	got, err := tasks.Update(999, "T", "D", domain.StatusPending)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatalf("got = %+v, want nil", got)
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM tasks`); err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("update of a missing task mutated the store: %d rows", count)
	}
}

func TestDeleteTwice(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTask(db)
	alice := createUser(t, db, "alice")

	created, err := tasks.Create(alice, "T", "D")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := tasks.Delete(created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("first delete should report true")
	}

	got, err := tasks.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Fatal("task still present after delete")
	}

	deleted, err = tasks.Delete(created.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report false, not an error")
	}
}

func TestTasksCascadeFromUserDeletion(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTask(db)
	alice := createUser(t, db, "alice")

	created, err := tasks.Create(alice, "T", "D")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	db.MustExec(`DELETE FROM users WHERE id = $1`, alice)

	got, err := tasks.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Fatal("task should be deleted together with its owner")
	}
}
