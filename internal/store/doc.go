// Package store defines the persistence interfaces consumed by the service
// layer, together with the sentinel errors every implementation returns.
//
// Both collections follow the same contract: every operation is a
// whole-collection read-modify-write executed under a per-collection
// critical section, so two concurrent mutations of the same collection are
// totally ordered and no update is ever lost. Reads hand out independent
// copies; callers never hold references into the stored representation.
package store
