package format

// CompressionType identifies the compression scheme applied to a chunk
// payload. The numeric values are the scheme bytes stored on disk in a
// region file frame, so they must never be renumbered.
type CompressionType uint8

const (
	CompressionGzip CompressionType = 1 // CompressionGzip is a gzip (RFC 1952) stream.
	CompressionZlib CompressionType = 2 // CompressionZlib is a zlib-wrapped deflate (RFC 1950) stream, the region default.
	CompressionNone CompressionType = 3 // CompressionNone is an uncompressed passthrough.
	CompressionLZ4  CompressionType = 4 // CompressionLZ4 is an LZ4 block with a length prefix.

	// CompressionCustom is the extension scheme byte reserved for
	// externally supplied codecs registered via compress.Register.
	CompressionCustom CompressionType = 127
)

func (c CompressionType) String() string {
	switch c {
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}
