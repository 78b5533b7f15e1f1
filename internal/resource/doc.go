// Package resource bounds the memory, concurrency and bandwidth a Store uses.
//
//	┌───────────────────────────────────────────────────────┐
//	│                      Controller                       │
//	├─────────────────┬─────────────────┬───────────────────┤
//	│  Memory Limit   │  Load slots     │  IO Rate Limiter  │
//	│  (fail-fast)    │  (semaphore)    │  (token bucket)   │
//	├─────────────────┼─────────────────┼───────────────────┤
//	│  AcquireMemory  │  AcquireLoad    │  AcquireIO        │
//	│  ReleaseMemory  │  TryAcquireLoad │  RateLimitedReader│
//	│  MemoryUsage    │  ReleaseLoad    │  RateLimitedWriter│
//	└─────────────────┴─────────────────┴───────────────────┘
//
// Memory accounting is non-blocking: the frame cache asks for room and skips
// caching when the limit would be exceeded. Load slots bound how many blobs
// LoadMany fetches at once. The IO limiter throttles blob reads and writes.
//
// All methods are safe for concurrent use, and a nil *Controller is a valid
// unlimited controller.
package resource
