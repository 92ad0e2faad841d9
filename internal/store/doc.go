// Package store defines the persistence contracts for words and users.
// Implementations live in internal/platform/database; services depend only
// on the interfaces here.
package store
