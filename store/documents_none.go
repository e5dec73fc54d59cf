//go:build js || wasip1

package store

// Sandboxed targets have no user documents directory.
const hasDocuments = false
