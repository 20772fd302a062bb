// Package region implements the sector-addressed container format that
// packs up to 1024 compressed chunks of world data into one file.
//
// A region file is a 32×32 grid of chunk slots over 4096-byte sectors. The
// first two sectors hold the location table (per slot: a 3-byte sector
// offset and a 1-byte sector count) and the timestamp table (per slot: a
// 4-byte Unix-seconds stamp). Every sector beyond the header belongs to at
// most one chunk, framed as a 4-byte big-endian length L, a 1-byte
// compression scheme, and L-1 bytes of compressed NBT, zero-padded to whole
// sectors.
//
// Sector occupancy is reconstructed from the location table when a file is
// opened; no free list is persisted. Writes allocate first-fit, reuse a
// slot's run in place when it still fits, and defer header persistence to
// Flush or Close. That deferral is a documented durability boundary: a
// crash between WriteChunk and Flush can leave data sectors written while
// the header still points at the old contents. Callers needing crash safety
// per write should Flush after each WriteChunk.
package region
