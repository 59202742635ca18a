// Package adapter is the thin layer between the generic ingestion core
// and a specific POS vendor's filesystem conventions.
//
// Every vendor exposes the same four logical locations relative to an
// exchange root: an inbox the core drops files into for the POS, an outbox
// the POS drops files into for the core, an archive directory for processed files, and an
// error directory for files that failed classification or parsing.
// Gilbarco Passport XMLGateway and Verifone Ruby2 differ only in the
// subpath names; the filename classification table is shared because
// both vendors emit the same NAXML document prefixes (PJR, FGM, FPM,
// MSM, TLM, MCM, ISM, TPM) by convention.
//
// ResolvePaths is the only function that should ever turn an
// integration's configured paths into locations the watcher touches on
// disk - it is where path-traversal defense lives, and nothing
// downstream re-derives a path from user input.
package adapter
