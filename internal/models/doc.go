// Package models defines domain entities and persistence interfaces for the tdx track lookup tool.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing Spotify API data
//   - [TrackSummary] : A single search result row with 1-based position
//   - [TrackInfo] : Denormalized track + album metadata with formatted date and duration
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Lookup] : History entries recording past search and info operations
//
// Persistent entities implement the [Model] interface providing ID generation, timestamps,
// validation, and soft delete support. The [Repository] interface defines standard CRUD
// operations for database access.
package models
