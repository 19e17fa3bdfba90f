/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package resource exposes a datastore.DataStore as a REST collection on a gin
router.

	h := resource.NewHandler[Book](store, resource.WithLogger(logger))
	h.Register(router.Group("/books"))

registers

	GET    /books        paged listing, ?offset=&limit=
	GET    /books/:id    one entity
	POST   /books        create, 201 with the stored entity
	PUT    /books/:id    create or replace
	DELETE /books/:id    204

Store errors map to status codes: not found is 404, validation is 400 and
already exists is 409. Anything else is logged and answered with 500.
*/
package resource
