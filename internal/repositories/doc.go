// Package repositories implements the persistence layer for lookup history.
//
// [LookupRepository] implements models.Repository[*models.Lookup] over SQLite,
// with UUID primary keys, human-readable sequence numbers, and soft deletes.
// Schema management lives in the shared package (embedded SQL migrations).
package repositories
