package storage

import (
	"context"
	"errors"
	"testing"
)

func TestIntentRepo_Ordering(t *testing.T) {
	ctx := context.Background()
	repo := NewIntentRepo(newTestDB(t))

	seed := []Intent{
		{Name: "low", Keywords: "a", Response: "low", Enabled: true, Priority: 0},
		{Name: "high-old", Keywords: "b", Response: "high-old", Enabled: true, Priority: 5},
		{Name: "high-new", Keywords: "c", Response: "high-new", Enabled: true, Priority: 5},
		{Name: "disabled", Keywords: "d", Response: "disabled", Enabled: false, Priority: 10},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	wantAll := []string{"disabled", "high-new", "high-old", "low"}
	for i, name := range wantAll {
		if all[i].Name != name {
			t.Errorf("List()[%d] = %q, want %q", i, all[i].Name, name)
		}
	}

	enabled, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("ListEnabled() error = %v", err)
	}
	wantEnabled := []string{"high-new", "high-old", "low"}
	if len(enabled) != len(wantEnabled) {
		t.Fatalf("ListEnabled() = %d intents, want %d", len(enabled), len(wantEnabled))
	}
	for i, name := range wantEnabled {
		if enabled[i].Name != name {
			t.Errorf("ListEnabled()[%d] = %q, want %q", i, enabled[i].Name, name)
		}
	}
}

func TestIntentRepo_UniqueName(t *testing.T) {
	ctx := context.Background()
	repo := NewIntentRepo(newTestDB(t))

	a := &Intent{Name: "hours", Keywords: "ساعت", Response: "9 تا 6", Enabled: true}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b := &Intent{Name: "address", Keywords: "آدرس", Response: "تهران", Enabled: true}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, &Intent{Name: "hours", Keywords: "x", Response: "y"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Create() duplicate error = %v, want ErrDuplicate", err)
	}

	b.Name = "hours"
	if err := repo.Update(ctx, b); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Update() rename onto taken name error = %v, want ErrDuplicate", err)
	}

	b.Name = "location"
	b.Priority = 3
	if err := repo.Update(ctx, b); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := repo.GetByName(ctx, "location")
	if err != nil || got.Priority != 3 {
		t.Errorf("GetByName() = %+v, %v", got, err)
	}

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() deleted error = %v, want ErrNotFound", err)
	}
}
