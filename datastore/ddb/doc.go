/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The Store supports:
  - Single-table design with macro-based keys (e.g., "BOOK#{ID}")
  - Automatic EntityType injection for polymorphic storage
  - A type index (GSI) used by FindAll, Count and Stream
  - Streaming with retry logic for throttling errors

Macro Expansion:
Key templates reference marshaled attribute names of the entity:

	keys := map[string]string{
	    "PK": "BOOK#{ID}",
	    "SK": "BOOK#{ID}",
	}
	client, err := ddb.NewDynamoDBClient(ctx, ddb.ClientConfig{Region: "us-east-1"})
	books, err := ddb.NewStore[Book](client, "resthub", keys)

FindByID and Delete expand the templates with the resource ID alone, so every
macro of PK and SK must be the ID attribute.

Every item also carries EntityType and the type index keys: the index
partition key holds the entity type and its sort key holds the item PK.

Streaming:

	for r := range books.Stream(ctx,
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	) {
	    if r.Error != nil {
	        return r.Error
	    }
	}
*/
package ddb
