package bitlattice

import (
	"log/slog"

	"github.com/hupe1980/bitlattice/codec"
	"github.com/hupe1980/bitlattice/internal/compress"
)

// Compression selects the block compression applied to stored frames.
type Compression = compress.Type

const (
	// CompressionNone stores payloads uncompressed.
	CompressionNone = compress.TypeNone
	// CompressionLZ4 favors speed.
	CompressionLZ4 = compress.TypeLZ4
	// CompressionZstd favors ratio.
	CompressionZstd = compress.TypeZstd
)

// DefaultCacheBytes is the frame cache budget used when WithCacheBytes is not given.
const DefaultCacheBytes = 64 << 20

type options struct {
	codec            codec.Codec
	compression      Compression
	cacheBytes       int64
	ioLimit          int64
	concurrency      int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Open.
type Option func(*options)

// WithCodec configures the codec used for Info records.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the compression for newly saved vectors. Frames that
// do not shrink by at least 10% are stored uncompressed regardless.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCacheBytes bounds the decoded-frame cache. Zero disables caching.
func WithCacheBytes(n int64) Option {
	return func(o *options) {
		o.cacheBytes = n
	}
}

// WithIOLimit throttles blob store traffic to bytesPerSec. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithConcurrency bounds the number of blob reads in flight, for LoadMany
// and concurrent Load calls alike.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithMetrics configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bitlattice.BasicMetricsCollector{}
//	s, _ := bitlattice.Open(store, bitlattice.WithMetrics(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Loads: %d, cache hits: %d\n", stats.LoadCount, stats.LoadCacheHits)
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bitlattice.NewJSONLogger(slog.LevelInfo)
//	s, _ := bitlattice.Open(store, bitlattice.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		compression:      CompressionZstd,
		cacheBytes:       DefaultCacheBytes,
		concurrency:      4,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}
