// Package journal persists a per-file processing history backed by SQLite.
// Each processed media file produces one entry recording its outcome, so
// batch runs can be audited after the fact with `whisparr history`. Opening
// the journal takes an exclusive lock to keep concurrent whisparr invocations
// from interleaving writes.
package journal
