// Package service contains the application services that orchestrate the
// stores, the query engine and the triage engine, enforcing ownership and
// uniqueness invariants on behalf of the API layer.
package service
