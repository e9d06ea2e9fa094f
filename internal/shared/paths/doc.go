// Package paths provides filesystem path helpers for content loading.
//
// Catalog files may reference bodies by relative path and content
// directories are scanned recursively; both must stay inside their root.
//
// # Usage
//
//	full, err := paths.Resolve(catalogDir, entry.File) // rejects "../x"
//	id := paths.Stem(full)                             // "About Me"
package paths
