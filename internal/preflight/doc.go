// Package preflight provides readiness checks for the external tools and
// filesystem paths vidaudit depends on.
//
// These checks run in two contexts:
//   - "vidaudit scan" calls RunAll before probing anything. A failed check
//     aborts the batch so a library is never half-audited because the report
//     directory turned out to be read-only.
//   - "vidaudit status" shows every result, including optional tools.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
