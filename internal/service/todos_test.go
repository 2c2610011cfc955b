package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/opravila/internal/db"
	"github.com/erazemk/opravila/internal/model"
	"github.com/erazemk/opravila/internal/ordering"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{DB: db.NewTestDB(t)}
}

func ptr(s string) *string {
	return &s
}

func TestCreateRoundTrip(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Walk the dog", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected created todo to be fetchable")
	}
	if got.Completed {
		t.Error("expected completed to default to false")
	}
	if got.Position != 0 {
		t.Errorf("expected position 0 for first todo, got %d", got.Position)
	}
	if got.Description != nil {
		t.Errorf("expected nil description, got %q", *got.Description)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt at creation, got %v and %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestCreateAppendsAtEnd(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		created, err := s.Create(ctx, "Todo", nil)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created.Position != i {
			t.Errorf("expected position %d with %d existing todos, got %d", i, i, created.Position)
		}
	}
}

func TestListAllOrderedAndEmptyByDefault(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	todos, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if todos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(todos) != 0 {
		t.Fatalf("expected no todos, got %d", len(todos))
	}

	s.Create(ctx, "First", nil)
	s.Create(ctx, "Second", nil)
	s.Create(ctx, "Third", nil)

	todos, _ = s.ListAll(ctx)
	for i, todo := range todos {
		if todo.Position != i {
			t.Errorf("expected position %d at index %d, got %d", i, i, todo.Position)
		}
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestService(t)

	got, err := s.GetByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestUpdateMergesFields(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, "Walk the dog", ptr("Around the block"))

	ok, err := s.Update(ctx, created.ID, Update{Name: ptr("Feed the dog")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("expected update to succeed")
	}

	got, _ := s.GetByID(ctx, created.ID)
	if got.Name != "Feed the dog" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if got.Description == nil || *got.Description != "Around the block" {
		t.Errorf("expected description unchanged, got %v", got.Description)
	}
	if got.Completed {
		t.Error("expected completed unchanged")
	}
}

func TestUpdateWithoutFieldsRefreshesUpdatedAt(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, "Walk the dog", nil)
	time.Sleep(10 * time.Millisecond)

	ok, err := s.Update(ctx, created.ID, Update{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("expected update to succeed")
	}

	got, _ := s.GetByID(ctx, created.ID)
	if got.Name != "Walk the dog" {
		t.Errorf("expected name unchanged, got %q", got.Name)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("expected updatedAt refreshed, got %v (was %v)", got.UpdatedAt, created.UpdatedAt)
	}
}

func TestUpdateWhitespaceOnlyTreatedAsAbsent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, _ := s.Create(ctx, "Walk the dog", ptr("Around the block"))

	ok, err := s.Update(ctx, created.ID, Update{Name: ptr("   "), Description: ptr("")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !ok {
		t.Fatal("expected update to succeed")
	}

	got, _ := s.GetByID(ctx, created.ID)
	if got.Name != "Walk the dog" {
		t.Errorf("expected name unchanged by whitespace-only value, got %q", got.Name)
	}
	if got.Description == nil || *got.Description != "Around the block" {
		t.Errorf("expected description unchanged by empty value, got %v", got.Description)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestService(t)

	ok, err := s.Update(context.Background(), uuid.New(), Update{Name: ptr("Anything")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if ok {
		t.Error("expected false for unknown id")
	}
}

func TestDeleteCompactsPositions(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, _ := s.Create(ctx, "First", nil)
	second, _ := s.Create(ctx, "Second", nil)
	third, _ := s.Create(ctx, "Third", nil)

	ok, err := s.Delete(ctx, first.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to succeed")
	}

	gotSecond, _ := s.GetByID(ctx, second.ID)
	gotThird, _ := s.GetByID(ctx, third.ID)
	if gotSecond.Position != 0 {
		t.Errorf("expected second todo at position 0, got %d", gotSecond.Position)
	}
	if gotThird.Position != 1 {
		t.Errorf("expected third todo at position 1, got %d", gotThird.Position)
	}
}

func TestDeleteLeavesEarlierPositionsUntouched(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, _ := s.Create(ctx, "First", nil)
	second, _ := s.Create(ctx, "Second", nil)
	third, _ := s.Create(ctx, "Third", nil)

	firstBefore, _ := s.GetByID(ctx, first.ID)

	s.Delete(ctx, second.ID)

	gotFirst, _ := s.GetByID(ctx, first.ID)
	gotThird, _ := s.GetByID(ctx, third.ID)
	if gotFirst.Position != 0 {
		t.Errorf("expected first todo still at position 0, got %d", gotFirst.Position)
	}
	if !gotFirst.UpdatedAt.Equal(firstBefore.UpdatedAt) {
		t.Error("expected untouched todo to keep its updatedAt")
	}
	if gotThird.Position != 1 {
		t.Errorf("expected third todo shifted to position 1, got %d", gotThird.Position)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := newTestService(t)

	ok, err := s.Delete(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok {
		t.Error("expected false for unknown id")
	}
}

func TestDensityAcrossCreateDeleteSequence(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 6; i++ {
		created, _ := s.Create(ctx, "Todo", nil)
		ids = append(ids, created.ID)
		assertDense(t, s)
	}

	// Delete from the middle, the front, and the back.
	for _, i := range []int{3, 0, 4} {
		ok, err := s.Delete(ctx, ids[i])
		if err != nil || !ok {
			t.Fatalf("Delete: ok=%v err=%v", ok, err)
		}
		assertDense(t, s)
	}

	s.Create(ctx, "Another", nil)
	assertDense(t, s)
}

func TestReorderSwapsTwoTodos(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, "Todo A", nil)
	b, _ := s.Create(ctx, "Todo B", nil)

	ok, err := s.Reorder(ctx, []ordering.Placement{
		{ID: a.ID, Position: 1},
		{ID: b.ID, Position: 0},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if !ok {
		t.Fatal("expected reorder to succeed")
	}

	gotA, _ := s.GetByID(ctx, a.ID)
	gotB, _ := s.GetByID(ctx, b.ID)
	if gotA.Position != 1 || gotB.Position != 0 {
		t.Errorf("expected positions 1,0 after swap, got %d,%d", gotA.Position, gotB.Position)
	}
	if !gotA.UpdatedAt.After(a.UpdatedAt) && !gotA.UpdatedAt.Equal(a.UpdatedAt) {
		t.Error("expected updatedAt refreshed on reordered todo")
	}
}

func TestReorderUnknownIDFailsWithoutWrites(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, "Todo A", nil)
	b, _ := s.Create(ctx, "Todo B", nil)

	ok, err := s.Reorder(ctx, []ordering.Placement{
		{ID: a.ID, Position: 1},
		{ID: uuid.New(), Position: 0},
	})
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if ok {
		t.Fatal("expected reorder with unknown id to fail")
	}

	// No positions may have changed for any named todo.
	gotA, _ := s.GetByID(ctx, a.ID)
	gotB, _ := s.GetByID(ctx, b.ID)
	if gotA.Position != 0 || gotB.Position != 1 {
		t.Errorf("expected positions unchanged, got %d,%d", gotA.Position, gotB.Position)
	}
}

func TestReorderLeavesUnnamedTodosAlone(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, "Todo A", nil)
	b, _ := s.Create(ctx, "Todo B", nil)
	c, _ := s.Create(ctx, "Todo C", nil)

	// Swap the first two; the third is not named and keeps its position.
	ok, err := s.Reorder(ctx, []ordering.Placement{
		{ID: a.ID, Position: 1},
		{ID: b.ID, Position: 0},
	})
	if err != nil || !ok {
		t.Fatalf("Reorder: ok=%v err=%v", ok, err)
	}

	gotC, _ := s.GetByID(ctx, c.ID)
	if gotC.Position != 2 {
		t.Errorf("expected unnamed todo to keep position 2, got %d", gotC.Position)
	}
}

func assertDense(t *testing.T, s *Service) {
	t.Helper()
	todos, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !ordering.IsDense(todos) {
		t.Fatalf("positions are not dense: %v", positionsOf(todos))
	}
}

func positionsOf(todos []model.Todo) []int {
	result := make([]int, len(todos))
	for i, todo := range todos {
		result[i] = todo.Position
	}
	return result
}
