package bitlattice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/bitlattice/bitvec"
	"github.com/hupe1980/bitlattice/blobstore"
	"github.com/hupe1980/bitlattice/internal/cache"
	"github.com/hupe1980/bitlattice/internal/compress"
	"github.com/hupe1980/bitlattice/internal/hash"
	"github.com/hupe1980/bitlattice/internal/resource"
	"golang.org/x/sync/errgroup"
)

const (
	frameExt = ".blv"
	infoExt  = ".json"
)

// Info describes a stored vector without loading it.
type Info struct {
	Length      uint64    `json:"length"`
	Count       uint64    `json:"count"`
	Compression string    `json:"compression"`
	Checksum    uint32    `json:"checksum"`
	StoredBytes int64     `json:"stored_bytes"`
	SavedAt     time.Time `json:"saved_at"`
}

// Store persists named bit vectors in a blobstore.BlobStore.
//
// A vector named n is kept as two blobs: n.blv holds the framed binary
// encoding and n.json holds its Info. Store is safe for concurrent use.
type Store struct {
	blobs  blobstore.BlobStore
	opts   options
	rc     *resource.Controller
	cache  cache.BlockCache
	closed atomic.Bool

	// gen is bumped by every Save and Delete before it invalidates the cache.
	gen atomic.Uint64
}

// Open returns a Store backed by blobs.
func Open(blobs blobstore.BlobStore, optFns ...Option) (*Store, error) {
	if blobs == nil {
		return nil, errors.New("bitlattice: nil blob store")
	}

	opts := applyOptions(optFns)
	if opts.cacheBytes < 0 {
		return nil, fmt.Errorf("bitlattice: negative cache size %d", opts.cacheBytes)
	}
	if opts.compression > CompressionZstd {
		return nil, fmt.Errorf("bitlattice: unknown compression %s", opts.compression)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   opts.cacheBytes,
		MaxConcurrentLoads: int64(opts.concurrency),
		IOLimitBytesPerSec: opts.ioLimit,
	})

	var bc cache.BlockCache = cache.Nop{}
	if opts.cacheBytes > 0 {
		bc = cache.NewLRUBlockCache(opts.cacheBytes, rc)
	}

	return &Store{
		blobs: blobs,
		opts:  opts,
		rc:    rc,
		cache: bc,
	}, nil
}

// ValidName reports whether name can be used as a vector name: non-empty,
// slash-separated, without empty, "." or ".." elements and without a leading
// or trailing slash.
func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || path.Clean(name) != name {
		return false
	}
	return name != "." && name != ".." && !strings.HasPrefix(name, "../")
}

func (s *Store) check(name string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Store) invalidate(name string) {
	s.gen.Add(1)
	s.cache.Invalidate(func(key cache.CacheKey) bool {
		return key.Name == name
	})
}

// fill caches b under key. gen is the generation observed before b was read;
// if a Save or Delete has run since, the entry is dropped again.
func (s *Store) fill(ctx context.Context, key cache.CacheKey, gen uint64, b []byte) {
	s.cache.Set(ctx, key, b)
	if s.gen.Load() != gen {
		s.cache.Invalidate(func(k cache.CacheKey) bool {
			return k == key
		})
	}
}

// put writes one blob, charging its size against the IO budget.
func (s *Store) put(ctx context.Context, blobName string, data []byte) error {
	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	return s.blobs.Put(ctx, blobName, data)
}

// read fetches one blob while holding a load slot.
func (s *Store) read(ctx context.Context, blobName string) ([]byte, error) {
	if err := s.rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer s.rc.ReleaseLoad()

	data, err := blobstore.ReadAll(ctx, s.blobs, blobName)
	if err != nil {
		return nil, err
	}
	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// Save stores v under name, replacing any previous vector of that name.
func (s *Store) Save(ctx context.Context, name string, v *bitvec.BitVector) error {
	if v == nil {
		return errors.New("bitlattice: nil vector")
	}

	start := time.Now()
	info, err := s.save(ctx, name, v)
	s.opts.metricsCollector.RecordSave(int(info.StoredBytes), time.Since(start), err)
	s.opts.logger.LogSave(ctx, name, v.Len(), int(info.StoredBytes), info.Compression, err)
	return err
}

func (s *Store) save(ctx context.Context, name string, v *bitvec.BitVector) (Info, error) {
	if err := s.check(name); err != nil {
		return Info{}, err
	}

	payload, err := v.MarshalBinary()
	if err != nil {
		return Info{}, translateError(name, err)
	}
	frame, used, err := compress.Encode(payload, s.opts.compression)
	if err != nil {
		return Info{}, translateError(name, err)
	}

	info := Info{
		Length:      v.Len(),
		Count:       v.Count(),
		Compression: used.String(),
		Checksum:    hash.CRC32C(payload),
		StoredBytes: int64(len(frame)),
		SavedAt:     time.Now().UTC(),
	}
	meta, err := s.opts.codec.Marshal(info)
	if err != nil {
		return Info{}, fmt.Errorf("bitlattice: encode info for %q: %w", name, err)
	}

	// An Info is only written once its frame is visible.
	defer s.invalidate(name)
	if err := s.put(ctx, name+frameExt, frame); err != nil {
		return Info{}, translateError(name, err)
	}
	if err := s.put(ctx, name+infoExt, meta); err != nil {
		return Info{}, translateError(name, err)
	}
	return info, nil
}

// Load returns the vector stored under name. The result is a private copy.
func (s *Store) Load(ctx context.Context, name string) (*bitvec.BitVector, error) {
	start := time.Now()
	v, cached, err := s.load(ctx, name)
	s.opts.metricsCollector.RecordLoad(cached, time.Since(start), err)
	s.opts.logger.LogLoad(ctx, name, cached, err)
	return v, err
}

func (s *Store) load(ctx context.Context, name string) (*bitvec.BitVector, bool, error) {
	if err := s.check(name); err != nil {
		return nil, false, err
	}

	key := cache.CacheKey{Kind: cache.CacheKindFrame, Name: name}
	gen := s.gen.Load()
	payload, cached := s.cache.Get(ctx, key)
	if !cached {
		frame, err := s.read(ctx, name+frameExt)
		if err != nil {
			return nil, false, translateError(name, err)
		}
		payload, _, err = compress.Decode(frame)
		if err != nil {
			return nil, false, translateError(name, err)
		}
		s.fill(ctx, key, gen, payload)
	}

	v := new(bitvec.BitVector)
	if err := v.UnmarshalBinary(payload); err != nil {
		return nil, cached, translateError(name, err)
	}
	return v, cached, nil
}

// LoadMany loads several vectors concurrently. Results are in the order of
// names. The first failure cancels the remaining loads.
func (s *Store) LoadMany(ctx context.Context, names ...string) ([]*bitvec.BitVector, error) {
	out := make([]*bitvec.BitVector, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)
	for i, name := range names {
		g.Go(func() error {
			v, err := s.Load(gctx, name)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}

	err := g.Wait()
	s.opts.logger.LogLoadMany(ctx, len(names), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stat returns the Info recorded for name.
func (s *Store) Stat(ctx context.Context, name string) (Info, error) {
	if err := s.check(name); err != nil {
		return Info{}, err
	}

	key := cache.CacheKey{Kind: cache.CacheKindInfo, Name: name}
	gen := s.gen.Load()
	meta, ok := s.cache.Get(ctx, key)
	if !ok {
		var err error
		meta, err = s.read(ctx, name+infoExt)
		if err != nil {
			return Info{}, translateError(name, err)
		}
	}

	var info Info
	if err := s.opts.codec.Unmarshal(meta, &info); err != nil {
		return Info{}, fmt.Errorf("%w: %q: info: %w", ErrCorrupt, name, err)
	}
	if !ok {
		s.fill(ctx, key, gen, meta)
	}
	return info, nil
}

// Delete removes the vector stored under name. Deleting a missing vector is
// not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := s.delete(ctx, name)
	s.opts.metricsCollector.RecordDelete(time.Since(start), err)
	s.opts.logger.LogDelete(ctx, name, err)
	return err
}

func (s *Store) delete(ctx context.Context, name string) error {
	if err := s.check(name); err != nil {
		return err
	}
	defer s.invalidate(name)

	if err := s.blobs.Delete(ctx, name+frameExt); err != nil {
		return translateError(name, err)
	}
	if err := s.blobs.Delete(ctx, name+infoExt); err != nil {
		return translateError(name, err)
	}
	return nil
}

// List returns the sorted names of all stored vectors.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	blobs, err := s.blobs.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, b := range blobs {
		name, ok := strings.CutSuffix(b, frameExt)
		if ok && ValidName(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Export writes the binary encoding of the named vector to w.
func (s *Store) Export(ctx context.Context, name string, w io.Writer) (int64, error) {
	v, err := s.Load(ctx, name)
	if err != nil {
		return 0, err
	}
	return v.WriteTo(resource.NewRateLimitedWriter(ctx, w, s.rc))
}

// Import reads one binary-encoded vector from r and saves it under name.
func (s *Store) Import(ctx context.Context, name string, r io.Reader) (int64, error) {
	if err := s.check(name); err != nil {
		return 0, err
	}

	v := new(bitvec.BitVector)
	n, err := v.ReadFrom(resource.NewRateLimitedReader(ctx, r, s.rc))
	if err != nil {
		return n, translateError(name, err)
	}
	return n, s.Save(ctx, name, v)
}

// CacheStats returns the frame cache hit and miss counts.
func (s *Store) CacheStats() (hits, misses int64) {
	return s.cache.Stats()
}

// Close releases the cache. Further calls return ErrClosed; closing twice is
// a no-op.
func (s *Store) Close() error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.cache.Close()
}
