package compress

// ZstdCompressor is a Zstandard codec intended for the custom scheme byte
// (format.CompressionCustom). Zstd is not part of the on-disk region
// format's builtin scheme set, so a file written with it is only readable by
// a process that registers the codec the same way:
//
//	compress.Register(format.CompressionCustom, compress.NewZstdCompressor())
//
// Two implementations are provided behind build tags: valyala/gozstd (cgo,
// faster) when cgo is available, and klauspost/compress/zstd (pure Go)
// otherwise. The two produce interchangeable streams.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
