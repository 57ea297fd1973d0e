// Package sqlite implements the store interfaces on an embedded SQLite
// database through gorm. It backs single-binary deployments
// (database.driver=sqlite) and the in-memory end-to-end tests.
package sqlite
