package tilestore

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testMetadata() Metadata {
	return Metadata{
		Name:        "noise overlay",
		Description: "fractal noise overlay tiles",
		Version:     "1.0",
		Bounds:      [4]float64{9.5, 51.8, 9.9, 52.1},
		MinZoom:     4,
		MaxZoom:     8,
	}
}

func TestWriterCreatesSchemaAndMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mbtiles")

	w, err := NewWriter(path, testMetadata())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	meta, err := r.Metadata()
	require.NoError(t, err)
	require.Equal(t, "noise overlay", meta["name"])
	require.Equal(t, "png", meta["format"])
	require.Equal(t, "overlay", meta["type"])
	require.Equal(t, "4", meta["minzoom"])
	require.Equal(t, "8", meta["maxzoom"])
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mbtiles")

	w, err := NewWriter(path, testMetadata())
	require.NoError(t, err)

	tiles := map[[3]int][]byte{
		{4, 8, 5}:   []byte("tile-a"),
		{4, 9, 5}:   []byte("tile-b"),
		{5, 16, 10}: []byte("tile-c"),
	}
	for c, data := range tiles {
		require.NoError(t, w.WriteTile(c[0], c[1], c[2], data))
	}
	require.NoError(t, w.Close())

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	count, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, len(tiles), count)

	for c, want := range tiles {
		got, err := r.ReadTile(c[0], c[1], c[2])
		require.NoError(t, err)
		require.True(t, bytes.Equal(got, want), "tile %v data mismatch", c)
	}

	_, err = r.ReadTile(4, 0, 0)
	require.Error(t, err)
}

func TestWriteTileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mbtiles")

	w, err := NewWriter(path, testMetadata())
	require.NoError(t, err)
	require.NoError(t, w.WriteTile(4, 8, 5, []byte("old")))
	require.NoError(t, w.Flush())
	require.NoError(t, w.WriteTile(4, 8, 5, []byte("new")))
	require.NoError(t, w.Close())

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	data, err := r.ReadTile(4, 8, 5)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), data)

	count, err := r.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestOpenReaderRejectsMissingSchema(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "missing.mbtiles"))
	require.Error(t, err)
}

func TestBatchFlushThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mbtiles")

	w, err := NewWriter(path, testMetadata())
	require.NoError(t, err)
	defer w.Close()

	// One short of the batch size: nothing should be flushed yet.
	for i := 0; i < DefaultBatchSize-1; i++ {
		require.NoError(t, w.WriteTile(8, i, 0, []byte{byte(i)}))
	}
	require.Len(t, w.batch, DefaultBatchSize-1)

	// The next write crosses the threshold and flushes.
	require.NoError(t, w.WriteTile(8, DefaultBatchSize-1, 0, []byte{0xFF}))
	require.Empty(t, w.batch)
}
