// Package output writes transcripts to disk in the requested formats.
//
// The writer resolves the target directory (substituting a per-user
// default when the caller passes nothing or the filesystem root),
// writes the enabled formats sequentially, and retries the whole
// request once against the fallback directory when the primary
// location is unwritable. Only a second failure is surfaced.
package output
