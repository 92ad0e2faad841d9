// Package database provides the SQL implementations of the store
// interfaces for PostgreSQL (through pgx) and SQLite, along with
// connection setup, embedded goose migrations and driver error mapping.
//
// Queries are written with ? placeholders and rewritten per dialect.
package database
