/*
Package datastore defines the generic resource DAO used by resthub.

The main interface is DataStore[T], which provides CRUD operations for any
entity type T:

	type DataStore[T any] interface {
	    Create(ctx context.Context, entity *T) error
	    Save(ctx context.Context, entity *T) error
	    FindByID(ctx context.Context, id string) (*T, error)
	    FindAll(ctx context.Context, page storagemodels.PageRequest) (*storagemodels.Page[T], error)
	    Count(ctx context.Context) (int, error)
	    Delete(ctx context.Context, id string) error
	    Stream(ctx context.Context, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	}

Entities identify themselves through Identifiable; model.Resource is the
usual embedded implementation. Create assigns a UUID when the ID is empty.
Missing entities are reported as *errors.NotFoundError.

Implementations:
  - bunstore: bun ORM over SQLite or PostgreSQL
  - ddb: DynamoDB single-table design with key templates
  - mock: In-memory implementation for testing

StreamPages turns any page loader into a Stream with retries, progress
reporting and cancellation, so backends only implement paging.
*/
package datastore
