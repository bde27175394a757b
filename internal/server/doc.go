// Package server wires the HTTP surface: routing, identity cookie handling,
// request/response shaping, and health endpoints.
package server
