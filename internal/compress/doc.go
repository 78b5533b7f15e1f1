// Package compress frames encoded bit vectors for storage.
//
// A frame is a fixed 13-byte header followed by the payload:
//
//	magic "BLV1" | type u8 | crc32c u32 | raw length u32 | payload
//
// The checksum covers the uncompressed payload. Payloads that do not shrink
// below 90% of their raw size are stored as TypeNone regardless of the
// requested algorithm.
package compress
