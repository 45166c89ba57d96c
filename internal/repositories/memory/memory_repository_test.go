package memory

import (
	"context"
	"fmt"
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SAP-F-2025/hostel-service/internal/models"
	"github.com/SAP-F-2025/hostel-service/internal/repositories"
)

func strPtr(s string) *string { return &s }

func TestRecordMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository().Students()

	ack, err := repo.Create(ctx, &models.Student{
		Name:  strPtr("A"),
		Hall:  strPtr("North"),
		Extra: models.Fields{"guardian": map[string]interface{}{"phone": "123"}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	id := ack.InsertedID.(primitive.ObjectID)

	got, err := repo.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetByID() = %v, %v", got, err)
	}
	guardian, ok := got.Extra["guardian"].(primitive.M)
	if !ok || guardian["phone"] != "123" {
		t.Errorf("guardian = %#v, want embedded map", got.Extra["guardian"])
	}

	upd, err := repo.UpdateStatus(ctx, id, "allocated")
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if upd.MatchedCount != 1 || upd.ModifiedCount != 1 {
		t.Errorf("UpdateStatus() ack = %+v", upd)
	}

	after, _ := repo.GetByID(ctx, id)
	if *after.Status != "allocated" || *after.Name != "A" || *after.Hall != "North" {
		t.Errorf("after update = %+v", after)
	}

	del, err := repo.Delete(ctx, id)
	if err != nil || del.DeletedCount != 1 {
		t.Fatalf("Delete() = %+v, %v", del, err)
	}
	if again, _ := repo.Delete(ctx, id); again.DeletedCount != 0 {
		t.Errorf("second Delete() count = %d", again.DeletedCount)
	}
	if gone, _ := repo.GetByID(ctx, id); gone != nil {
		t.Errorf("GetByID() after delete = %+v", gone)
	}
}

func TestRecordMemory_UpdateStatusMissingIDDoesNotInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository().Foods()

	ack, err := repo.UpdateStatus(ctx, primitive.NewObjectID(), "served")
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if ack.MatchedCount != 0 || ack.UpsertedCount != 0 {
		t.Errorf("ack = %+v", ack)
	}
	if _, total, _ := repo.List(ctx, repositories.ListFilters{}); total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestRecordMemory_ListWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository().Foods()
	for i := 0; i < 5; i++ {
		if _, err := repo.Create(ctx, &models.Food{Name: strPtr(fmt.Sprintf("food-%d", i))}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		filters   repositories.ListFilters
		wantLen   int
		wantFirst string
	}{
		{"all", repositories.ListFilters{}, 5, "food-0"},
		{"first page", repositories.ListFilters{Offset: 0, Limit: 2}, 2, "food-0"},
		{"last partial page", repositories.ListFilters{Offset: 4, Limit: 2}, 1, "food-4"},
		{"past the end", repositories.ListFilters{Offset: 10, Limit: 2}, 0, ""},
		{"huge limit", repositories.ListFilters{Offset: 3, Limit: math.MaxInt64}, 2, "food-3"},
		{"huge offset and limit", repositories.ListFilters{Offset: math.MaxInt64, Limit: math.MaxInt64}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foods, total, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if total != 5 {
				t.Errorf("total = %d, want 5", total)
			}
			if len(foods) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(foods), tt.wantLen)
			}
			if tt.wantLen > 0 && *foods[0].Name != tt.wantFirst {
				t.Errorf("first = %s, want %s", *foods[0].Name, tt.wantFirst)
			}
		})
	}
}

func TestUserMemory_UpsertAndRoles(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository().Users()

	ack, err := repo.Upsert(ctx, &models.User{Email: "a@hostel.edu", DisplayName: strPtr("A")})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if ack.UpsertedCount != 1 || ack.MatchedCount != 0 {
		t.Errorf("first Upsert() ack = %+v", ack)
	}

	ack, err = repo.Upsert(ctx, &models.User{Email: "a@hostel.edu", Extra: models.Fields{"phone": "555"}})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if ack.UpsertedCount != 0 || ack.MatchedCount != 1 || ack.ModifiedCount != 1 {
		t.Errorf("second Upsert() ack = %+v", ack)
	}

	users, _ := repo.List(ctx)
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if *users[0].DisplayName != "A" || users[0].Extra["phone"] != "555" {
		t.Errorf("merged user = %+v", users[0])
	}

	roleAck, err := repo.SetRole(ctx, "ghost@hostel.edu", models.RoleAdmin)
	if err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	if roleAck.MatchedCount != 0 {
		t.Errorf("SetRole() on unknown email matched %d", roleAck.MatchedCount)
	}
	if users, _ := repo.List(ctx); len(users) != 1 {
		t.Errorf("SetRole() created a record: %d users", len(users))
	}

	if _, err := repo.SetRole(ctx, "a@hostel.edu", models.RoleTeacher); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	u, _ := repo.GetByEmail(ctx, "a@hostel.edu")
	if !u.HasRole(models.RoleTeacher) {
		t.Errorf("role = %v, want teacher", u.Role)
	}
}
