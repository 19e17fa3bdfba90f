/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the actual partition key attribute name in the GSI (e.g., "PK1")
	PartitionKeyName string
	// SortKeyName is the actual sort key attribute name in the GSI (e.g., "SK1")
	SortKeyName string
}

// DefaultTypeIndex is the GSI that groups items by EntityType. Stores write
// the entity class name to its partition key and the item PK to its sort key.
var DefaultTypeIndex = GSIConfig{
	IndexName:        "GSI1",
	PartitionKeyName: "PK1",
	SortKeyName:      "SK1",
}

func (g GSIConfig) valid() bool {
	return g.IndexName != "" && g.PartitionKeyName != "" && g.SortKeyName != ""
}
