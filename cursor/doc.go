// Package cursor persists per-consumer positions in the log, so a shipper
// or replayer that crashes resumes from its last acknowledged offset
// instead of re-reading from zero.
package cursor
