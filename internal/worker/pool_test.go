package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MeKo-Tech/noisefield/internal/tile"
)

// mockRenderer simulates tile rendering for testing.
type mockRenderer struct {
	delay     time.Duration
	failTiles map[string]bool
	callCount atomic.Int32
}

func (m *mockRenderer) Render(ctx context.Context, coords tile.Coords) ([]byte, error) {
	m.callCount.Add(1)

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}

	if m.failTiles != nil && m.failTiles[coords.String()] {
		return nil, errors.New("simulated failure")
	}
	return []byte(coords.String()), nil
}

// memSink collects written tiles in memory.
type memSink struct {
	mu    sync.Mutex
	tiles map[[3]int][]byte
}

func newMemSink() *memSink {
	return &memSink{tiles: make(map[[3]int][]byte)}
}

func (s *memSink) WriteTile(z, x, y int, pngData []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiles[[3]int{z, x, y}] = pngData
	return nil
}

func TestPoolBasicExecution(t *testing.T) {
	r := &mockRenderer{delay: 5 * time.Millisecond}
	sink := newMemSink()

	pool := New(Config{Workers: 2, Renderer: r, Sink: sink})

	tiles := []tile.Coords{
		tile.NewCoords(6, 32, 21),
		tile.NewCoords(6, 32, 22),
		tile.NewCoords(6, 33, 21),
	}

	results := pool.Run(context.Background(), tiles)

	if len(results) != len(tiles) {
		t.Fatalf("expected %d results, got %d", len(tiles), len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("unexpected error for %s: %v", res.Coords, res.Err)
		}
	}
	if got := len(sink.tiles); got != len(tiles) {
		t.Errorf("sink received %d tiles, want %d", got, len(tiles))
	}
	if got := r.callCount.Load(); got != int32(len(tiles)) {
		t.Errorf("renderer called %d times, want %d", got, len(tiles))
	}
}

func TestPoolReportsFailures(t *testing.T) {
	bad := tile.NewCoords(6, 33, 21)
	r := &mockRenderer{failTiles: map[string]bool{bad.String(): true}}
	sink := newMemSink()

	pool := New(Config{Workers: 2, Renderer: r, Sink: sink})

	tiles := []tile.Coords{
		tile.NewCoords(6, 32, 21),
		bad,
		tile.NewCoords(6, 34, 21),
	}

	results := pool.Run(context.Background(), tiles)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			if res.Coords != bad {
				t.Errorf("unexpected failing tile %s", res.Coords)
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(sink.tiles) != 2 {
		t.Errorf("sink received %d tiles, want 2", len(sink.tiles))
	}
}

func TestPoolProgressCallback(t *testing.T) {
	r := &mockRenderer{}
	var calls atomic.Int32
	var lastCompleted atomic.Int32

	pool := New(Config{
		Workers:  3,
		Renderer: r,
		Sink:     newMemSink(),
		OnProgress: func(completed, total, failed int) {
			calls.Add(1)
			lastCompleted.Store(int32(completed))
			if total != 5 {
				t.Errorf("total = %d, want 5", total)
			}
		},
	})

	tiles := make([]tile.Coords, 5)
	for i := range tiles {
		tiles[i] = tile.NewCoords(8, uint32(i), 0)
	}
	pool.Run(context.Background(), tiles)

	if calls.Load() != 5 {
		t.Errorf("progress called %d times, want 5", calls.Load())
	}
	if lastCompleted.Load() != 5 {
		t.Errorf("final completed = %d, want 5", lastCompleted.Load())
	}
}

func TestPoolContextCancellation(t *testing.T) {
	r := &mockRenderer{delay: 50 * time.Millisecond}
	pool := New(Config{Workers: 1, Renderer: r, Sink: newMemSink()})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	tiles := make([]tile.Coords, 20)
	for i := range tiles {
		tiles[i] = tile.NewCoords(8, uint32(i), 0)
	}
	results := pool.Run(ctx, tiles)

	cancelled := 0
	for _, res := range results {
		if errors.Is(res.Err, context.Canceled) {
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Error("expected at least one cancelled result")
	}
}
