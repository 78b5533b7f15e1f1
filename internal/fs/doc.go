// Package fs provides filesystem abstractions for testability and fault injection.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test wrapper that injects write, sync, close and rename errors
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDONLY, 0)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".blv", fs.Fault{FailOnSync: true, FailAfterBytes: -1})
//
// Filesystem calls take no context.Context: local syscalls are not
// interruptible. Slow backends live behind blobstore.BlobStore instead.
package fs
