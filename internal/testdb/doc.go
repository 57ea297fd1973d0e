//go:build integration

// Package testdb provides PostgreSQL helpers for integration tests.
//
// Each test runs in its own transaction which is rolled back when the test
// function returns, so tests can share one migrated database:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        tasks := postgres.NewPostgresTaskStore(tx, nil)
//	        ...
//	    })
//	}
//
// Tests are skipped when no database URL is configured (DATABASE_URL or
// TASKS_DATABASE_URL).
package testdb
