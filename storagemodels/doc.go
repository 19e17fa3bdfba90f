/*
Package storagemodels defines the data structures shared by every DataStore
implementation.

PageRequest and Page:
Offset pagination for FindAll:

	page, err := store.FindAll(ctx, storagemodels.PageRequest{Offset: 40, Limit: 20})
	if page.HasNext() {
	    // fetch offset 60
	}

A zero Limit means DefaultPageSize and limits above MaxPageSize are capped.

StreamResult:
Results from streaming operations with metadata:

	type StreamResult[T any] struct {
	    Item  T          // The typed entity
	    Error error      // Item-specific error, if any
	    Meta  StreamMeta // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
