package nbtkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelforge/nbtkit/compress"
	"github.com/voxelforge/nbtkit/format"
	"github.com/voxelforge/nbtkit/nbt"
)

func levelRoot() nbt.NamedTag {
	data := nbt.NewCompound()
	data.Set("LevelName", nbt.String("world"))
	data.Set("DataVersion", nbt.Int(3465))
	data.Set("hardcore", nbt.Byte(0))

	root := nbt.NewCompound()
	root.Set("Data", data)

	return nbt.NamedTag{Compound: root}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.dat")

	require.NoError(t, WriteFile(path, levelRoot()))

	// The written file is gzip-wrapped.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 2)
	require.Equal(t, []byte{0x1F, 0x8B}, raw[:2])

	root, err := ReadFile(path)
	require.NoError(t, err)

	data, err := root.Compound.GetCompound("Data")
	require.NoError(t, err)
	name, err := data.GetString("LevelName")
	require.NoError(t, err)
	require.Equal(t, "world", name)
}

func TestReadFileUncompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.nbt")

	data, err := Encode(levelRoot())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	root, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, nbt.Equal(levelRoot().Compound, root.Compound))
}

func TestReadFileZlib(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrapped.nbt")

	data, err := Encode(levelRoot())
	require.NoError(t, err)
	codec, err := compress.GetCodec(format.CompressionZlib)
	require.NoError(t, err)
	wrapped, err := codec.Compress(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, wrapped, 0o644))

	root, err := ReadFile(path)
	require.NoError(t, err)
	require.True(t, nbt.Equal(levelRoot().Compound, root.Compound))
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nbt")
	require.NoError(t, os.WriteFile(path, []byte{0x0A, 0x00}, 0o644))

	_, err := ReadFile(path)
	require.ErrorIs(t, err, ErrMalformedData)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.dat"))
	require.Error(t, err)
}

func TestRegionEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")

	r, err := OpenRegion(path)
	require.NoError(t, err)
	require.NoError(t, r.WriteChunk(0, 0, levelRoot()))
	require.NoError(t, r.Close())

	r2, err := OpenRegion(path)
	require.NoError(t, err)
	defer r2.Close()

	root, err := r2.ReadChunk(0, 0)
	require.NoError(t, err)
	require.True(t, nbt.Equal(levelRoot().Compound, root.Compound))
}
