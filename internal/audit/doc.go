// Package audit runs a batch: it enumerates a directory tree, probes every
// video with a bounded worker pool, classifies the streams and folds the
// results into a report model.
//
// Per-file failures never fail a batch. A file whose probe fails or whose
// stream cannot be normalised is recorded as skipped with a reason and left
// out of the tally. Only setup problems (unreadable root, a batch already
// running against the same report directory) and context cancellation fail
// Run; a cancelled batch returns no partial report.
//
// Each worker accumulates its own partial tally; partials are merged once
// all workers finish, so no counter is shared between goroutines.
package audit
