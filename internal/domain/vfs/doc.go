// Package vfs provides the in-memory virtual file store shared by the
// shell's applications.
//
// The store owns two collections, live documents and the recycle bin, and
// exposes them only through copying queries and four mutations:
//
//   - Save: upsert by name inside Documents; blank names are ignored
//   - Delete: live -> recycle bin, identity preserved
//   - Restore: recycle bin -> live, identity preserved
//   - EmptyRecycleBin: permanent purge
//
// Misses are reported as false, never as errors: deleting a document that
// is already recycled, or restoring one that was purged, does nothing.
//
// Nothing here touches the host filesystem. Export streams a tar archive to
// an io.Writer for download only.
package vfs
