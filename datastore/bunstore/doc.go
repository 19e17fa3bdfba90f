/*
Package bunstore implements datastore.DataStore on the bun ORM.

	db, err := bunstore.Open("sqlite3", "file:app.db?cache=shared")
	if err != nil {
	    return err
	}
	books, err := bunstore.New[Book](db)

Entities are bun models with one primary key column, usually through an
embedded model.Resource. Tables are expected to exist; bunstore never creates
or migrates schema.

Bootstrap hands the entity set of a persistence unit to bun, resolving each
class name through the catalog factory.
*/
package bunstore
