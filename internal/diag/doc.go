// Package diag carries definition-time diagnostics: coded, severity-
// tagged problems located by declaration site rather than source span.
// Checking phases report through the Reporter interface; the CLI
// collects into a Bag and renders through diagfmt.
package diag
