/*
Package errors provides semantic error types for resthub.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("entity not found")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrConfiguration = errors.New("invalid configuration")
	    ErrUnknownClass  = errors.New("unknown class")
	)

Usage:

	user, err := users.FindByID(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        return nil, fmt.Errorf("user %s does not exist", "123")
	    }
	    return nil, err
	}

	// Persistence context binding fails fast on bad declarations
	if err := binder.LoadFile(ctx, "persistence.yaml"); errors.IsConfigurationError(err) {
	    log.Fatal(err)
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
