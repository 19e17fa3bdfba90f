/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/resthub/datastore/mock"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/storagemodels"
)

type TestEntity struct {
	ID   string
	Name string
}

func (e *TestEntity) ResourceID() string { return e.ID }
func (e *TestEntity) AssignID(id string) { e.ID = id }

type Keyless struct {
	Code string
}

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()

		entity := &TestEntity{Name: "Test"}
		if err := mockStore.Create(ctx, entity); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if entity.ID == "" {
			t.Fatal("Create should assign an ID")
		}

		retrieved, err := mockStore.FindByID(ctx, entity.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if retrieved.Name != "Test" {
			t.Fatalf("Retrieved entity mismatch: %+v", retrieved)
		}

		entity.Name = "Renamed"
		if err := mockStore.Save(ctx, entity); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		retrieved, _ = mockStore.FindByID(ctx, entity.ID)
		if retrieved.Name != "Renamed" {
			t.Fatalf("Save did not replace entity: %+v", retrieved)
		}

		if err := mockStore.Create(ctx, entity); !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected already exists error, got: %v", err)
		}

		if err := mockStore.Delete(ctx, entity.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := mockStore.FindByID(ctx, entity.ID); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
		if err := mockStore.Delete(ctx, entity.ID); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error on second delete, got: %v", err)
		}
	})

	t.Run("SaveRequiresID", func(t *testing.T) {
		mockStore := mock.New[TestEntity]()
		if err := mockStore.Save(ctx, &TestEntity{Name: "no id"}); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("CustomKeyFunc", func(t *testing.T) {
		mockStore := mock.New[Keyless]().WithGetKeyFunc(func(k *Keyless) string { return k.Code })

		if err := mockStore.Create(ctx, &Keyless{Code: "A1"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := mockStore.FindByID(ctx, "A1"); err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if err := mockStore.Create(ctx, &Keyless{}); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		createErr := errors.NewValidationError("name", "required")
		deleteErr := fmt.Errorf("locked")
		findErr := fmt.Errorf("unavailable")
		mockStore := mock.New[TestEntity]().
			WithCreateError(createErr).
			WithDeleteError(deleteErr).
			WithFindError(findErr)

		if err := mockStore.Create(ctx, &TestEntity{ID: "1"}); err != createErr {
			t.Fatalf("Expected create error, got: %v", err)
		}
		if err := mockStore.Delete(ctx, "1"); err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
		if _, err := mockStore.FindAll(ctx, storagemodels.PageRequest{}); err != findErr {
			t.Fatalf("Expected find error, got: %v", err)
		}
		if _, err := mockStore.Count(ctx); err != findErr {
			t.Fatalf("Expected find error, got: %v", err)
		}
	})
}

func TestMockPagingAndStream(t *testing.T) {
	ctx := context.Background()
	mockStore := mock.New[TestEntity]()
	for i := 0; i < 5; i++ {
		if err := mockStore.Create(ctx, &TestEntity{ID: fmt.Sprintf("id-%d", i)}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	page, err := mockStore.FindAll(ctx, storagemodels.PageRequest{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if page.Total != 5 || len(page.Items) != 2 || page.Items[0].ID != "id-1" || !page.HasNext() {
		t.Fatalf("unexpected page: %+v", page)
	}

	count, _ := mockStore.Count(ctx)
	if count != 5 {
		t.Fatalf("expected 5 entities, got %d", count)
	}

	var ids []string
	for r := range mockStore.Stream(ctx, storagemodels.WithPageSize(2)) {
		if r.Error != nil {
			t.Fatalf("stream error: %v", r.Error)
		}
		ids = append(ids, r.Item.ID)
	}
	if len(ids) != 5 || ids[0] != "id-0" || ids[4] != "id-4" {
		t.Fatalf("unexpected stream order: %v", ids)
	}
}

func TestMockHelpers(t *testing.T) {
	mockStore := mock.New[TestEntity]()
	mockStore.SetData(map[string]TestEntity{"a": {ID: "a"}})

	data := mockStore.GetData()
	if len(data) != 1 {
		t.Fatalf("expected one entity, got %d", len(data))
	}
	data["b"] = TestEntity{ID: "b"}
	if len(mockStore.GetData()) != 1 {
		t.Fatal("GetData should return a copy")
	}

	mockStore.Clear()
	if len(mockStore.GetData()) != 0 {
		t.Fatal("Clear should remove all data")
	}
}
