// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("vectors/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	st, err := bitlattice.Open(store)
//
// # Features
//
//   - Ranged GETs for partial reads
//   - Single PutObject with a CRC32C checksum for small blobs, multipart
//     uploads above UploadConfig.PartSize
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints for S3-compatible services
package s3
