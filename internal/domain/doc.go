// Package domain holds the core model types and component contracts.
//
// Entities: WordEntry (catalog), ratings keyed by (user, word, dimension),
// and the derived RatingStats aggregate. All cross-package dependencies point
// at the interfaces defined here, not at implementations.
package domain
