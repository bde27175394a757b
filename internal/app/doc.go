// Package app holds the application layer service. It is the only component
// that composes multiple domain repositories and is where the leaderboard
// ranking policy lives.
package app
