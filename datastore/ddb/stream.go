/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/resthub/datastore"
	"github.com/suparena/resthub/storagemodels"
)

// Stream pages through every item of the entity type on the type index.
// Throttling and internal errors are retried.
func (d *Store[T]) Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	fetch := func(ctx context.Context, cursor any, limit int32) ([]T, any, error) {
		input := d.typeQuery()
		input.Limit = aws.Int32(limit)
		if lastKey, ok := cursor.(map[string]types.AttributeValue); ok {
			input.ExclusiveStartKey = lastKey
		}

		out, err := d.client.Query(ctx, input)
		if err != nil {
			return nil, nil, err
		}

		items := make([]T, 0, len(out.Items))
		for _, item := range out.Items {
			var entity T
			if err := attributevalue.UnmarshalMap(item, &entity); err != nil {
				return nil, nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			items = append(items, entity)
		}

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil, nil
		}
		return items, out.LastEvaluatedKey, nil
	}
	return datastore.StreamPages(ctx, fetch, isRetryableError, opts...)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}

	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}
	return false
}
