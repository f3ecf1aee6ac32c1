// Package history persists finished audit batches in SQLite so earlier runs
// can be listed and compared without re-probing a library.
//
// Each batch stores its tally as JSON next to denormalised headline counts,
// one row per classified file and one row per skipped file. The schema is
// embedded and versioned; a database written by a different schema version
// is rejected rather than migrated.
package history
