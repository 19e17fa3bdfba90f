/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/resthub/catalog"
	"github.com/suparena/resthub/datastore/testmodels"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/model"
	"github.com/suparena/resthub/storagemodels"
)

var ratingKeys = map[string]string{
	"PK": "RATING#{ID}",
	"SK": "RATING#{ID}",
}

func newRatingStore(t *testing.T) (*Store[testmodels.RatingSystem], *fakeClient) {
	t.Helper()
	client := newFakeClient()
	store, err := NewStore[testmodels.RatingSystem](client, "resthub-test", ratingKeys)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, client
}

func newRating(id, name string) *testmodels.RatingSystem {
	ct := &testmodels.Timestamp{DateTime: strfmt.DateTime(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))}
	return &testmodels.RatingSystem{
		Resource:    model.Resource{ID: id},
		Name:        aws.String(name),
		Description: aws.String("This is a test rating system"),
		CreatedAt:   ct,
		UpdatedAt:   ct,
	}
}

func TestNewStoreValidation(t *testing.T) {
	client := newFakeClient()
	tests := []struct {
		name  string
		table string
		keys  map[string]string
		opts  []Option
	}{
		{name: "no table", table: "", keys: ratingKeys},
		{name: "no SK", table: "t", keys: map[string]string{"PK": "R#{ID}"}},
		{name: "static PK", table: "t", keys: map[string]string{"PK": "RATING", "SK": "R#{ID}"}},
		{name: "bad index", table: "t", keys: ratingKeys, opts: []Option{WithTypeIndex(GSIConfig{IndexName: "GSI9"})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore[testmodels.RatingSystem](client, tt.table, tt.keys, tt.opts...)
			if !errors.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := NewStore[testmodels.RatingSystem](nil, "t", ratingKeys); !errors.IsValidationError(err) {
		t.Errorf("expected validation error for nil client, got %v", err)
	}
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store, client := newRatingStore(t)

	rating := newRating("", "Oakville Table Tennis Ranking System")
	if err := store.Create(ctx, rating); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rating.ID == "" {
		t.Fatal("Create should assign an ID")
	}

	raw := client.items["RATING#"+rating.ID+"|RATING#"+rating.ID]
	if raw == nil {
		t.Fatalf("item not stored under expanded key, have %d items", len(client.items))
	}
	if got := attr(raw, EntityTypeAttribute); got != catalog.NameOf[testmodels.RatingSystem]() {
		t.Errorf("EntityType = %q", got)
	}
	if got := attr(raw, "SK1"); got != "RATING#"+rating.ID {
		t.Errorf("type index sort key = %q", got)
	}

	found, err := store.FindByID(ctx, rating.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if aws.ToString(found.Name) != "Oakville Table Tennis Ranking System" {
		t.Errorf("unexpected name %q", aws.ToString(found.Name))
	}
	if found.CreatedAt == nil || !time.Time(found.CreatedAt.DateTime).Equal(time.Time(rating.CreatedAt.DateTime)) {
		t.Errorf("CreatedAt did not round trip: %v", found.CreatedAt)
	}

	if err := store.Create(ctx, rating); !errors.IsAlreadyExists(err) {
		t.Errorf("expected already exists, got %v", err)
	}

	rating.SiteURL = "https://example.com"
	if err := store.Save(ctx, rating); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	found, _ = store.FindByID(ctx, rating.ID)
	if found.SiteURL != "https://example.com" {
		t.Errorf("Save did not replace item: %+v", found)
	}

	if err := store.Delete(ctx, rating.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.FindByID(ctx, rating.ID); !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := store.Delete(ctx, rating.ID); !errors.IsNotFound(err) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
	if _, err := store.FindByID(ctx, ""); !errors.IsValidationError(err) {
		t.Errorf("expected validation error for empty id, got %v", err)
	}
}

func TestStoreListing(t *testing.T) {
	ctx := context.Background()
	store, _ := newRatingStore(t)
	for i := 0; i < 5; i++ {
		if err := store.Create(ctx, newRating(fmt.Sprintf("r%d", i), fmt.Sprintf("Rating %d", i))); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}

	page, err := store.FindAll(ctx, storagemodels.PageRequest{Offset: 1, Limit: 3})
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if page.Total != 5 || len(page.Items) != 3 {
		t.Fatalf("unexpected page: total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Items[0].ID != "r1" || page.Items[2].ID != "r3" {
		t.Errorf("unexpected page order: %s..%s", page.Items[0].ID, page.Items[2].ID)
	}

	var ids []string
	for r := range store.Stream(ctx, storagemodels.WithPageSize(2)) {
		if r.Error != nil {
			t.Fatalf("stream error: %v", r.Error)
		}
		ids = append(ids, r.Item.ID)
	}
	if len(ids) != 5 || ids[4] != "r4" {
		t.Errorf("unexpected stream: %v", ids)
	}
}

func TestStreamRetriesThrottling(t *testing.T) {
	ctx := context.Background()
	store, client := newRatingStore(t)
	if err := store.Create(ctx, newRating("r1", "Rating")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	client.queryErrs = []error{&types.ProvisionedThroughputExceededException{Message: aws.String("slow down")}}

	var results []storagemodels.StreamResult[testmodels.RatingSystem]
	for r := range store.Stream(ctx, storagemodels.WithRetryBackoff(time.Millisecond)) {
		results = append(results, r)
	}
	if len(results) != 1 || results[0].Error != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if client.queries != 2 {
		t.Errorf("expected one retry, got %d queries", client.queries)
	}
}

func TestStreamStopsOnPermanentError(t *testing.T) {
	store, client := newRatingStore(t)
	client.queryErrs = []error{fmt.Errorf("access denied")}

	var results []storagemodels.StreamResult[testmodels.RatingSystem]
	for r := range store.Stream(context.Background()) {
		results = append(results, r)
	}
	if len(results) != 1 || results[0].Error == nil {
		t.Fatalf("expected a single error result, got %+v", results)
	}
}

func TestExpandMacros(t *testing.T) {
	rating := newRating("abc", "Name")
	expanded, err := expandMacros(map[string]string{
		"PK":  "RATING#{ID}",
		"SK":  "NAME#{Name}#{SiteURL}",
		"GSI": "{Missing}",
	}, rating)
	if err != nil {
		t.Fatalf("expandMacros failed: %v", err)
	}
	if expanded["PK"] != "RATING#abc" || expanded["SK"] != "NAME#Name#" || expanded["GSI"] != "" {
		t.Errorf("unexpected expansion: %v", expanded)
	}

	keyed := expandStringKey(ratingKeys, "xyz")
	if keyed["PK"] != "RATING#xyz" || keyed["SK"] != "RATING#xyz" {
		t.Errorf("unexpected key expansion: %v", keyed)
	}
}

func TestNewDynamoDBClient(t *testing.T) {
	client, err := NewDynamoDBClient(context.Background(), ClientConfig{
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  "http://localhost:8000",
	})
	if err != nil {
		t.Fatalf("NewDynamoDBClient failed: %v", err)
	}
	if client == nil {
		t.Fatal("expected a client")
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&types.InternalServerError{}) {
		t.Error("internal server errors are retryable")
	}
	if isRetryableError(fmt.Errorf("validation")) {
		t.Error("plain errors are not retryable")
	}
}
