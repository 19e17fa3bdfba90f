/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/resthub/datastore"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/storagemodels"
)

// Attribute names written on every item.
const (
	PartitionKey        = "PK"
	SortKey             = "SK"
	EntityTypeAttribute = "EntityType"
)

// Store implements datastore.DataStore[T] on a single DynamoDB table.
// Item keys come from macro templates such as "BOOK#{ID}".
type Store[T any] struct {
	client    Client
	tableName string
	keys      map[string]string
	index     GSIConfig
	name      string
}

var _ datastore.DataStore[struct{}] = (*Store[struct{}])(nil)

// Option configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	index      GSIConfig
	entityType string
}

// WithTypeIndex overrides DefaultTypeIndex.
func WithTypeIndex(index GSIConfig) Option {
	return func(o *storeOptions) {
		o.index = index
	}
}

// WithEntityType overrides the EntityType value, which defaults to the class
// name of T.
func WithEntityType(name string) Option {
	return func(o *storeOptions) {
		o.entityType = name
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewStore creates a Store for T. keys must define PK and SK templates and
// every template must reference at least one attribute.
func NewStore[T any](client Client, tableName string, keys map[string]string, opts ...Option) (*Store[T], error) {
	o := storeOptions{index: DefaultTypeIndex, entityType: datastore.EntityName[T]()}
	for _, opt := range opts {
		opt(&o)
	}

	if client == nil {
		return nil, errors.NewValidationError("client", "is required")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "is required")
	}
	for _, k := range []string{PartitionKey, SortKey} {
		template, ok := keys[k]
		if !ok || !macroPattern.MatchString(template) {
			return nil, errors.NewValidationError("keys", fmt.Sprintf("%s template with a {macro} is required", k))
		}
	}
	if !o.index.valid() {
		return nil, errors.NewValidationError("index", "type index needs a name and key attributes")
	}

	return &Store[T]{
		client:    client,
		tableName: tableName,
		keys:      keys,
		index:     o.index,
		name:      o.entityType,
	}, nil
}

func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	// Convert keysInput to a map of attribute values
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}
			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
	}
	return res, nil
}

// expandStringKey replaces every macro in the templates with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds the primary key from expanded templates.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, sk := expanded[PartitionKey], expanded[SortKey]
	if pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}
	return map[string]types.AttributeValue{
		PartitionKey: &types.AttributeValueMemberS{Value: pk},
		SortKey:      &types.AttributeValueMemberS{Value: sk},
	}, nil
}

func (d *Store[T]) keyFor(id string) (map[string]types.AttributeValue, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", "is required")
	}
	return buildKeyFromExpanded(expandStringKey(d.keys, id))
}

// item marshals entity and adds the key, EntityType and type index attributes.
func (d *Store[T]) item(entity *T) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(d.keys, entity)
	if err != nil {
		return nil, err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return nil, errors.NewValidationError("key", err.Error())
	}

	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: d.name}
	av[d.index.PartitionKeyName] = &types.AttributeValueMemberS{Value: d.name}
	av[d.index.SortKeyName] = &types.AttributeValueMemberS{Value: expanded[PartitionKey]}
	return av, nil
}

func (d *Store[T]) put(ctx context.Context, entity *T, id, condition string) error {
	av, err := d.item(entity)
	if err != nil {
		return err
	}

	input := &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	}
	if condition != "" {
		input.ConditionExpression = aws.String(condition)
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewAlreadyExistsError(d.name, id)
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Create stores a new entity; an item with the same key must not exist.
func (d *Store[T]) Create(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewValidationError("entity", "is required")
	}
	id, err := datastore.EnsureID(entity)
	if err != nil {
		return err
	}
	return d.put(ctx, entity, id, "attribute_not_exists(PK)")
}

// Save stores the entity, replacing any item with the same key.
func (d *Store[T]) Save(ctx context.Context, entity *T) error {
	if entity == nil {
		return errors.NewValidationError("entity", "is required")
	}
	id, err := datastore.IDOf(entity)
	if err != nil {
		return err
	}
	return d.put(ctx, entity, id, "")
}

// FindByID retrieves a single item by resource ID.
func (d *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	key, err := d.keyFor(id)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(d.name, id)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Delete removes the item with the given resource ID.
func (d *Store[T]) Delete(ctx context.Context, id string) error {
	key, err := d.keyFor(id)
	if err != nil {
		return err
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           &d.tableName,
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewNotFoundError(d.name, id)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// typeQuery selects every item of this store's entity type on the type index.
func (d *Store[T]) typeQuery() *sdk.QueryInput {
	return &sdk.QueryInput{
		TableName:              &d.tableName,
		IndexName:              aws.String(d.index.IndexName),
		KeyConditionExpression: aws.String("#type = :type"),
		ExpressionAttributeNames: map[string]string{
			"#type": d.index.PartitionKeyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":type": &types.AttributeValueMemberS{Value: d.name},
		},
	}
}

// Count returns the number of items of this entity type.
func (d *Store[T]) Count(ctx context.Context) (int, error) {
	input := d.typeQuery()
	input.Select = types.SelectCount

	total := 0
	for {
		out, err := d.client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("count query error: %w", err)
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// FindAll returns one page in type index order. DynamoDB has no offsets, so
// the items before the page are read and skipped.
func (d *Store[T]) FindAll(ctx context.Context, page storagemodels.PageRequest) (*storagemodels.Page[T], error) {
	page = page.Normalized()

	result := &storagemodels.Page[T]{Items: []T{}, Offset: page.Offset, Limit: page.Limit}
	input := d.typeQuery()
	skip := page.Offset
	for len(result.Items) < page.Limit {
		out, err := d.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		for _, item := range out.Items {
			if skip > 0 {
				skip--
				continue
			}
			if len(result.Items) == page.Limit {
				break
			}
			var entity T
			if err := attributevalue.UnmarshalMap(item, &entity); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			result.Items = append(result.Items, entity)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	total, err := d.Count(ctx)
	if err != nil {
		return nil, err
	}
	result.Total = total
	return result, nil
}
