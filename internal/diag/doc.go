// Package diag defines the diagnostic model shared by every analysis pass.
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string ID (SYN1001,
//     TYP3003, L002, ...). Lint codes render as the lint identifier.
//   - Message – human oriented text, reproduced verbatim by every frontend.
//   - Primary span – byte span of the offending node.
//   - Notes – related locations, e.g. the first definition of a duplicate.
//   - Fixes – structured text edits the fix engine and code actions apply.
//   - Data – machine-readable payload for quick fixes (replacement mnemonic,
//     vocabulary name).
//
// Passes emit through a Reporter, usually via ReportBuilder. The package does
// no formatting beyond the short single-line form; rendering lives in
// internal/diagfmt, edit application in internal/fix.
package diag
