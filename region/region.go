package region

import (
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/voxelforge/nbtkit/compress"
	"github.com/voxelforge/nbtkit/endian"
	"github.com/voxelforge/nbtkit/errs"
	"github.com/voxelforge/nbtkit/format"
	"github.com/voxelforge/nbtkit/internal/options"
	"github.com/voxelforge/nbtkit/internal/pool"
	"github.com/voxelforge/nbtkit/nbt"
)

const (
	// SectorSize is the fixed allocation unit of a region file.
	SectorSize = 4096

	// GridSize is the chunk grid edge; a file addresses GridSize² slots.
	GridSize = 32

	slotCount     = GridSize * GridSize
	headerSectors = 2
	headerSize    = headerSectors * SectorSize

	// maxChunkSectors is the per-chunk ceiling imposed by the one-byte
	// sector count in a location entry.
	maxChunkSectors = 255

	// frameOverhead is the length prefix plus the scheme byte.
	frameOverhead = 5
)

// location is one slot of the in-memory location table.
type location struct {
	offset uint32 // sector offset from the start of the file
	count  uint32 // sectors allocated to the slot
}

func (l location) live() bool {
	return l.count > 0
}

type config struct {
	scheme   format.CompressionType
	maxDepth int
	clock    func() time.Time
}

// Option configures Open.
type Option = options.Option[*config]

// WithCompression sets the scheme used for subsequent WriteChunk calls.
// Reads always honor the scheme byte stored in each chunk's frame, so a file
// may mix schemes. The default is Zlib.
func WithCompression(scheme format.CompressionType) Option {
	return options.New(func(c *config) error {
		c.scheme = scheme

		return nil
	})
}

// WithMaxDecodeDepth overrides the tag nesting limit applied when decoding
// chunk payloads.
func WithMaxDecodeDepth(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max decode depth must be positive, got %d", n)
		}
		c.maxDepth = n

		return nil
	})
}

// WithClock injects the time source stamped into the timestamp table on
// writes. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return options.New(func(c *config) error {
		if clock == nil {
			return fmt.Errorf("nil clock")
		}
		c.clock = clock

		return nil
	})
}

// File is an open region file: a 32×32 grid of chunk slots stored as
// independently compressed, sector-aligned payloads.
//
// A File is not internally synchronized. Concurrent use from multiple
// goroutines requires external locking, and two File instances must never
// be open against the same path at once: sector occupancy lives only in
// memory, so an independent writer would corrupt allocation silently.
type File struct {
	path   string
	f      *os.File
	engine endian.EndianEngine

	scheme   format.CompressionType
	codec    compress.Codec
	maxDepth int
	clock    func() time.Time

	locations   [slotCount]location
	timestamps  [slotCount]uint32
	alloc       *allocator
	headerDirty bool
}

// Open opens or creates the region file at path. A file shorter than the
// 8192-byte header is treated as new and empty. An existing header is
// validated structurally: entries pointing into the header area or sector
// runs that overlap fail with ErrInvalidHeader.
func Open(path string, opts ...Option) (*File, error) {
	cfg := &config{
		scheme:   format.CompressionZlib,
		maxDepth: nbt.DefaultMaxDepth,
		clock:    time.Now,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.scheme, "region write")
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	r := &File{
		path:     path,
		f:        f,
		engine:   endian.GetBigEndianEngine(),
		scheme:   cfg.scheme,
		codec:    codec,
		maxDepth: cfg.maxDepth,
		clock:    cfg.clock,
	}

	if err := r.loadHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return r, nil
}

func (r *File) loadHeader() error {
	info, err := r.f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < headerSize {
		// New or stub file: zero tables, nothing allocated.
		r.alloc = newAllocator(headerSectors)
		return nil
	}

	var header [headerSize]byte
	if _, err := r.f.ReadAt(header[:], 0); err != nil {
		return err
	}

	var live []run
	for i := range slotCount {
		entry := r.engine.Uint32(header[i*4:])
		r.timestamps[i] = r.engine.Uint32(header[SectorSize+i*4:])
		if entry == 0 {
			continue
		}

		loc := location{offset: entry >> 8, count: entry & 0xFF}
		if loc.offset < headerSectors || !loc.live() {
			return fmt.Errorf("%w: slot %d entry 0x%08X", errs.ErrInvalidHeader, i, entry)
		}
		r.locations[i] = loc
		live = append(live, run{start: loc.offset, count: loc.count})
	}

	fileSectors := uint32((info.Size() + SectorSize - 1) / SectorSize)
	r.alloc, err = rebuild(fileSectors, live)

	return err
}

func slotIndex(x, z int) (int, error) {
	if x < 0 || x >= GridSize || z < 0 || z >= GridSize {
		return 0, fmt.Errorf("%w: chunk (%d,%d)", errs.ErrOutOfRange, x, z)
	}

	return x + z*GridSize, nil
}

// ReadChunk reads and decodes the chunk at grid position (x, z). An absent
// chunk returns a zero NamedTag and a nil error; use Exists to distinguish
// absence without decoding.
func (r *File) ReadChunk(x, z int) (nbt.NamedTag, error) {
	idx, err := slotIndex(x, z)
	if err != nil {
		return nbt.NamedTag{}, err
	}
	loc := r.locations[idx]
	if !loc.live() {
		return nbt.NamedTag{}, nil
	}

	raw, scheme, err := r.readFrame(x, z, loc)
	if err != nil || raw == nil {
		return nbt.NamedTag{}, err
	}

	codec, err := compress.GetCodec(scheme)
	if err != nil {
		return nbt.NamedTag{}, fmt.Errorf("chunk (%d,%d): %w", x, z, err)
	}
	data, err := codec.Decompress(raw)
	if err != nil {
		return nbt.NamedTag{}, fmt.Errorf("chunk (%d,%d): %w", x, z, err)
	}

	root, _, err := nbt.Decode(data, nbt.WithMaxDepth(r.maxDepth))
	if err != nil {
		return nbt.NamedTag{}, fmt.Errorf("chunk (%d,%d): %w", x, z, err)
	}

	return root, nil
}

// readFrame returns the compressed payload and scheme byte of a live slot.
// A stored length of zero reads as absent (nil payload, nil error).
func (r *File) readFrame(x, z int, loc location) ([]byte, format.CompressionType, error) {
	base := int64(loc.offset) * SectorSize

	var head [frameOverhead]byte
	if _, err := r.f.ReadAt(head[:], base); err != nil {
		return nil, 0, fmt.Errorf("%w: chunk (%d,%d) frame header: %v", errs.ErrCorruptSector, x, z, err)
	}

	length := r.engine.Uint32(head[:4])
	if length == 0 {
		return nil, 0, nil
	}
	// The allocated run must cover the 4-byte prefix plus length bytes.
	if uint64(loc.count)*SectorSize < uint64(length)+4 {
		return nil, 0, fmt.Errorf("%w: chunk (%d,%d) frame of %d bytes exceeds %d allocated sectors",
			errs.ErrCorruptSector, x, z, length, loc.count)
	}

	raw := make([]byte, length-1)
	if _, err := r.f.ReadAt(raw, base+frameOverhead); err != nil {
		return nil, 0, fmt.Errorf("%w: chunk (%d,%d) payload: %v", errs.ErrCorruptSector, x, z, err)
	}

	return raw, format.CompressionType(head[4]), nil
}

// WriteChunk encodes, compresses, and stores root at grid position (x, z).
//
// The slot's existing sector run is reused in place when it is large enough
// (any excess tail is freed); otherwise the old run is freed and the payload
// goes to the first free run that fits, extending the file when none does.
// Only the data sectors are written here — the header tables are persisted
// by Flush or Close, so a crash in between may leave the slot pointing at
// its previous contents.
func (r *File) WriteChunk(x, z int, root nbt.NamedTag) error {
	idx, err := slotIndex(x, z)
	if err != nil {
		return err
	}

	plain := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(plain)
	plain.B, err = nbt.AppendEncode(plain.B[:0], root)
	if err != nil {
		return fmt.Errorf("chunk (%d,%d): %w", x, z, err)
	}

	payload, err := r.codec.Compress(plain.B)
	if err != nil {
		return fmt.Errorf("chunk (%d,%d): %w", x, z, err)
	}

	required := uint32((len(payload) + frameOverhead + SectorSize - 1) / SectorSize)
	if required > maxChunkSectors {
		return fmt.Errorf("%w: chunk (%d,%d) needs %d sectors, limit %d",
			errs.ErrChunkTooLarge, x, z, required, maxChunkSectors)
	}

	// Assemble the padded frame before touching allocation state, so an
	// encode failure can never strand a half-updated occupancy map.
	frame := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(frame)
	frame.B = r.engine.AppendUint32(frame.B[:0], uint32(len(payload))+1)
	frame.B = append(frame.B, byte(r.scheme))
	frame.B = append(frame.B, payload...)
	pad := int(required)*SectorSize - frame.Len()
	frame.ExtendOrGrow(pad)
	clear(frame.B[frame.Len()-pad:])

	old := r.locations[idx]
	var offset uint32
	switch {
	case old.live() && old.count >= required:
		offset = old.offset
		if excess := old.count - required; excess > 0 {
			r.alloc.release(run{start: old.offset + required, count: excess})
		}
	default:
		if old.live() {
			r.alloc.release(run{start: old.offset, count: old.count})
		}
		offset = r.alloc.allocate(required)
	}

	if _, err := r.f.WriteAt(frame.B, int64(offset)*SectorSize); err != nil {
		return fmt.Errorf("chunk (%d,%d): %w", x, z, err)
	}

	r.locations[idx] = location{offset: offset, count: required}
	r.timestamps[idx] = uint32(r.clock().Unix())
	r.headerDirty = true

	return nil
}

// DeleteChunk frees the slot at (x, z). Deleting an absent chunk is a no-op.
// The zeroed table entries are persisted on the next Flush.
func (r *File) DeleteChunk(x, z int) error {
	idx, err := slotIndex(x, z)
	if err != nil {
		return err
	}

	loc := r.locations[idx]
	if !loc.live() {
		return nil
	}

	r.alloc.release(run{start: loc.offset, count: loc.count})
	r.locations[idx] = location{}
	r.timestamps[idx] = 0
	r.headerDirty = true

	return nil
}

// Flush writes the location and timestamp tables back to the first two
// sectors and syncs the file. WriteChunk and DeleteChunk defer header
// persistence to this call.
func (r *File) Flush() error {
	if r.headerDirty {
		tb := pool.GetTableBuffer()
		defer pool.PutTableBuffer(tb)

		tb.Reset()
		for _, loc := range r.locations {
			tb.B = r.engine.AppendUint32(tb.B, loc.offset<<8|loc.count&0xFF)
		}
		for _, ts := range r.timestamps {
			tb.B = r.engine.AppendUint32(tb.B, ts)
		}

		if _, err := r.f.WriteAt(tb.B, 0); err != nil {
			return err
		}
		r.headerDirty = false
	}

	return r.f.Sync()
}

// Close flushes the header and releases the file handle. The handle is
// closed even when the flush fails.
func (r *File) Close() error {
	flushErr := r.Flush()
	closeErr := r.f.Close()
	if flushErr != nil {
		return flushErr
	}

	return closeErr
}

// Exists reports whether the slot at (x, z) holds a chunk. Out-of-range
// coordinates report false.
func (r *File) Exists(x, z int) bool {
	idx, err := slotIndex(x, z)
	if err != nil {
		return false
	}

	return r.locations[idx].live()
}

// Timestamp returns the last-modified time recorded for the slot at (x, z),
// or the zero time for an absent chunk.
func (r *File) Timestamp(x, z int) (time.Time, error) {
	idx, err := slotIndex(x, z)
	if err != nil {
		return time.Time{}, err
	}
	ts := r.timestamps[idx]
	if ts == 0 {
		return time.Time{}, nil
	}

	return time.Unix(int64(ts), 0), nil
}

// Path returns the file path the region was opened with.
func (r *File) Path() string {
	return r.path
}

// ScanResult is one live slot visited by Scan: its grid coordinates and
// either the decoded root or the per-chunk failure.
type ScanResult struct {
	X, Z int
	Root nbt.NamedTag
	Err  error
}

// Scan iterates every live slot in slot order, decoding each chunk. Errors
// are delivered per chunk in the ScanResult, so one damaged chunk never
// aborts the scan of the rest of the file.
func (r *File) Scan() iter.Seq[ScanResult] {
	return func(yield func(ScanResult) bool) {
		for idx := range slotCount {
			if !r.locations[idx].live() {
				continue
			}
			x, z := idx%GridSize, idx/GridSize
			root, err := r.ReadChunk(x, z)
			if !yield(ScanResult{X: x, Z: z, Root: root, Err: err}) {
				return
			}
		}
	}
}
