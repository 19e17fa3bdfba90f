/*
Package resthub discovers the entity classes of an application, groups them
into named persistence units and serves them as REST resources.

The workflow has three steps:
  - Declare: entities embed model.Resource and carry markers, either through
    an embedded catalog.Meta tag or //resthub: directives.
  - Bind: persistence-context documents name base packages and filters per
    unit. Binding scans the class catalog and records the result in a
    registry.Registry.
  - Serve: DAOs are registered per unit and type and mounted with the
    resource package.

Basic Usage:

	pc := resthub.NewPersistenceContext(catalog.Default(), resthub.WithLogger(logger))
	if err := pc.Load(ctx, "contexts.yaml"); err != nil {
		return err
	}

	daos := resthub.NewDAORegistry(pc.Registry())
	store, _ := bunstore.New[Book](db)
	if err := resthub.RegisterDAO[Book](daos, "library", store); err != nil {
		return err
	}

	books, _ := resthub.DAO[Book](daos, "library")
	resource.NewHandler(books).Register(router.Group("/books"))

Source trees can be scanned without compiling them through sourcescan, and
cmd/entityscan generates the catalog registrations for them.
*/
package resthub
