// Package cache provides an LRU cache for decoded blobs.
//
// Entries are keyed by kind and blob name and charged against an optional
// resource.Controller memory budget. When the controller denies a
// reservation the value is simply not cached.
package cache
