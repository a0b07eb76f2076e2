// Package worker provides a parallel noise-tile rendering worker pool.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/MeKo-Tech/noisefield/internal/tile"
)

// Renderer produces the encoded image for one tile coordinate.
type Renderer interface {
	Render(ctx context.Context, coords tile.Coords) ([]byte, error)
}

// Sink receives rendered tiles. Implementations must be safe for concurrent
// use; both the folder and MBTiles sinks are.
type Sink interface {
	WriteTile(z, x, y int, pngData []byte) error
}

// Result is the outcome of rendering one tile.
type Result struct {
	Coords  tile.Coords
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each tile completes.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Renderer   Renderer
	Sink       Sink
	OnProgress ProgressFunc
}

// Pool renders tiles in parallel with a fixed number of workers.
type Pool struct {
	workers    int
	renderer   Renderer
	sink       Sink
	onProgress ProgressFunc
}

// New creates a worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers:    workers,
		renderer:   cfg.Renderer,
		sink:       cfg.Sink,
		onProgress: cfg.OnProgress,
	}
}

// Run renders all tiles and returns one result per tile. It blocks until all
// tiles complete or the context is cancelled; cancelled tiles are reported
// with the context's error.
func (p *Pool) Run(ctx context.Context, tiles []tile.Coords) []Result {
	if len(tiles) == 0 {
		return nil
	}

	taskCh := make(chan tile.Coords, len(tiles))
	resultCh := make(chan Result, len(tiles))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, taskCh, resultCh)
		}()
	}

	go func() {
		defer close(taskCh)
		for _, c := range tiles {
			select {
			case taskCh <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := make([]Result, 0, len(tiles))
	done := make(chan struct{})
	go func() {
		defer close(done)
		completed, failed := 0, 0
		for result := range resultCh {
			results = append(results, result)
			completed++
			if result.Err != nil {
				failed++
			}
			if p.onProgress != nil {
				p.onProgress(completed, len(tiles), failed)
			}
		}
	}()

	wg.Wait()
	close(resultCh)
	<-done

	return results
}

func (p *Pool) worker(ctx context.Context, tasks <-chan tile.Coords, results chan<- Result) {
	for coords := range tasks {
		select {
		case <-ctx.Done():
			results <- Result{Coords: coords, Err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		data, err := p.renderer.Render(ctx, coords)
		if err == nil && p.sink != nil {
			err = p.sink.WriteTile(int(coords.Z), int(coords.X), int(coords.Y), data)
		}

		results <- Result{
			Coords:  coords,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}
