// Package bitlattice persists dense bit vectors in blob storage.
//
// The bit vectors themselves live in package bitvec, and package bitarray
// layers shaped, multi-dimensional views over them. This package adds a Store
// that saves, loads and describes named vectors in any blobstore.BlobStore.
//
// # Quick Start
//
// Local mode:
//
//	ctx := context.Background()
//	s, _ := bitlattice.Open(blobstore.NewLocalStore("./data"))
//	defer s.Close()
//
//	v := bitvec.New(1 << 16)
//	v.Set(42)
//	_ = s.Save(ctx, "flags/active", v)
//
//	w, _ := s.Load(ctx, "flags/active")
//	fmt.Println(w.Test(42)) // true
//
// Cloud mode:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("vectors/"))
//	s, _ := bitlattice.Open(s3Store, bitlattice.WithCompression(bitlattice.CompressionLZ4))
//
// # Storage Layout
//
// A vector named n is stored as:
//
//	n.blv   frame: magic "BLV1" | type u8 | crc32c u32 | raw len u32 | payload
//	n.json  Info: length, count, compression, checksum, saved_at
//
// The payload is the vector's MarshalBinary encoding, compressed with LZ4 or
// Zstd when that saves at least 10%. Load verifies the CRC32C of the payload
// and reports a mismatch as *ErrChecksumMismatch.
//
// # Resource Control
//
// Decoded payloads are cached in an LRU bounded by WithCacheBytes. Blob reads
// hold one of WithConcurrency load slots, and WithIOLimit throttles all blob
// traffic.
package bitlattice
