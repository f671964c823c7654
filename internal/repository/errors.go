package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the
// repository. This abstracts away the underlying storage implementation
// from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint. For votes this is the authoritative duplicate-ballot
// signal: two concurrent casts for the same (voter, team) both pass the
// application-level checks, but only one insert commits.
var ErrDuplicate = errors.New("duplicate record")

// ErrQuotaExceeded is returned by InsertVote when the in-transaction
// recount shows the voter already holds the maximum number of ballots.
var ErrQuotaExceeded = errors.New("vote quota exceeded")
