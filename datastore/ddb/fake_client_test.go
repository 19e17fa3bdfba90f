/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory table that understands the calls Store makes.
type fakeClient struct {
	mu        sync.Mutex
	items     map[string]map[string]types.AttributeValue
	pageSize  int
	queryErrs []error
	queries   int
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue), pageSize: 2}
}

func attr(item map[string]types.AttributeValue, name string) string {
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func itemKey(item map[string]types.AttributeValue) string {
	return attr(item, PartitionKey) + "|" + attr(item, SortKey)
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeClient) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := itemKey(in.Item)
	if aws.ToString(in.ConditionExpression) == "attribute_not_exists(PK)" {
		if _, exists := f.items[key]; exists {
			return nil, conditionFailed()
		}
	}
	f.items[key] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := itemKey(in.Key)
	if aws.ToString(in.ConditionExpression) == "attribute_exists(PK)" {
		if _, exists := f.items[key]; !exists {
			return nil, conditionFailed()
		}
	}
	delete(f.items, key)
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries++
	if len(f.queryErrs) > 0 {
		err := f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
		return nil, err
	}

	pkName := in.ExpressionAttributeNames["#type"]
	want := in.ExpressionAttributeValues[":type"].(*types.AttributeValueMemberS).Value
	skName := DefaultTypeIndex.SortKeyName

	var matched []map[string]types.AttributeValue
	for _, item := range f.items {
		if attr(item, pkName) == want {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return attr(matched[i], skName) < attr(matched[j], skName) })

	start := 0
	if in.ExclusiveStartKey != nil {
		after := attr(in.ExclusiveStartKey, skName)
		for start < len(matched) && attr(matched[start], skName) <= after {
			start++
		}
	}

	limit := f.pageSize
	if in.Limit != nil && int(*in.Limit) < limit {
		limit = int(*in.Limit)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := matched[start:end]

	out := &sdk.QueryOutput{Count: int32(len(page))}
	if in.Select != types.SelectCount {
		out.Items = page
	}
	if end < len(matched) {
		last := page[len(page)-1]
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			PartitionKey: last[PartitionKey],
			SortKey:      last[SortKey],
			pkName:       last[pkName],
			skName:       last[skName],
		}
	}
	return out, nil
}
