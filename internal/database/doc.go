// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and tern for embedded migrations.
// Repositories implement the domain interfaces: WordRepository (catalog) and
// RatingRepository (ledger). Aggregates are computed in SQL at read time.
package database
