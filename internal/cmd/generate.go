package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"

	"github.com/MeKo-Tech/noisefield/internal/render"
	"github.com/MeKo-Tech/noisefield/internal/tile"
	"github.com/MeKo-Tech/noisefield/internal/tilestore"
	"github.com/MeKo-Tech/noisefield/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate noise tiles",
	Long:  `Generate grayscale coherent-noise tiles for specified coordinates and zoom levels.`,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Single tile flags
	generateCmd.Flags().IntP("zoom", "z", 6, "Zoom level (for single tile mode)")
	generateCmd.Flags().IntP("x", "x", 0, "X tile coordinate (for single tile mode)")
	generateCmd.Flags().IntP("y", "y", 0, "Y tile coordinate (for single tile mode)")

	// Batch generation flags
	generateCmd.Flags().String("bbox", "", "Bounding box: minLon,minLat,maxLon,maxLat (e.g., \"9.7,52.3,9.9,52.4\")")
	generateCmd.Flags().Int("zoom-min", 0, "Minimum zoom level for batch generation")
	generateCmd.Flags().Int("zoom-max", 0, "Maximum zoom level for batch generation")
	generateCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	generateCmd.Flags().Bool("progress", true, "Show progress during batch generation")

	// Sampler flags
	generateCmd.Flags().Int64("seed", 1337, "Deterministic seed for the noise field")
	generateCmd.Flags().String("kernel", "simplex", "Noise kernel: simplex or perlin")
	generateCmd.Flags().String("orientation", "standard", "Simplex lattice orientation: standard or improve")
	generateCmd.Flags().Int("octaves", 4, "Number of fractal octaves (1-32)")
	generateCmd.Flags().Float64("frequency", 4.0, "Base frequency across the normalized world extent")
	generateCmd.Flags().Float64("lacunarity", 2.0, "Frequency multiplier between octaves")
	generateCmd.Flags().Float64("persistence", 0.5, "Amplitude multiplier between octaves")

	// Rendering flags
	generateCmd.Flags().Int("tile-size", 256, "Tile size in pixels (typically 256 or 512 for Hi-DPI)")
	generateCmd.Flags().Int("supersample", 0, "Supersampling factor (0-8, 0 disables)")
	generateCmd.Flags().Float32("smooth", 0, "Gaussian blur sigma applied after rendering (0 disables)")
	generateCmd.Flags().Float32("contrast", 0, "Contrast adjustment percentage (0 disables)")

	// Output format flags
	generateCmd.Flags().String("format", "folder", "Output format: folder or mbtiles")
	generateCmd.Flags().String("output-file", "", "Output file path for MBTiles format (e.g., noise.mbtiles)")
	generateCmd.Flags().String("folder-structure", "flat", "Folder structure for folder format: flat (z{z}_x{x}_y{y}.png) or nested ({z}/{x}/{y}.png)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.zoom", "zoom"},
		{"generate.x", "x"},
		{"generate.y", "y"},
		{"generate.bbox", "bbox"},
		{"generate.zoom_min", "zoom-min"},
		{"generate.zoom_max", "zoom-max"},
		{"generate.workers", "workers"},
		{"generate.progress", "progress"},
		{"generate.seed", "seed"},
		{"generate.kernel", "kernel"},
		{"generate.orientation", "orientation"},
		{"generate.octaves", "octaves"},
		{"generate.frequency", "frequency"},
		{"generate.lacunarity", "lacunarity"},
		{"generate.persistence", "persistence"},
		{"generate.tile_size", "tile-size"},
		{"generate.supersample", "supersample"},
		{"generate.smooth", "smooth"},
		{"generate.contrast", "contrast"},
		{"generate.format", "format"},
		{"generate.output_file", "output-file"},
		{"generate.folder_structure", "folder-structure"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// tileRenderer rasterizes one tile of the field and encodes it as PNG.
type tileRenderer struct {
	field render.Field
	opts  render.Options
}

func (r *tileRenderer) Render(_ context.Context, coords tile.Coords) ([]byte, error) {
	img, err := render.Tile(r.field, coords.SampleWindow(), r.opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode tile %s: %w", coords, err)
	}
	return buf.Bytes(), nil
}

// folderSink writes tiles as individual PNG files.
type folderSink struct {
	dir    string
	nested bool
}

func (s *folderSink) WriteTile(z, x, y int, pngData []byte) error {
	var path string
	if s.nested {
		path = filepath.Join(s.dir, strconv.Itoa(z), strconv.Itoa(x), fmt.Sprintf("%d.png", y))
	} else {
		path = filepath.Join(s.dir, tile.NewCoords(uint32(z), uint32(x), uint32(y)).Path("png"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, pngData, 0o644); err != nil {
		return fmt.Errorf("failed to write tile: %w", err)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	zoom := viper.GetInt("generate.zoom")
	x := viper.GetInt("generate.x")
	y := viper.GetInt("generate.y")
	bbox := viper.GetString("generate.bbox")
	zoomMin := viper.GetInt("generate.zoom_min")
	zoomMax := viper.GetInt("generate.zoom_max")
	workers := viper.GetInt("generate.workers")
	showProgress := viper.GetBool("generate.progress")
	outputDir := viper.GetString("output-dir")
	format := viper.GetString("generate.format")
	outputFile := viper.GetString("generate.output_file")
	folderStructure := viper.GetString("generate.folder_structure")

	if logger == nil {
		initLogging()
	}

	if format != "folder" && format != "mbtiles" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'mbtiles'", format)
	}
	if folderStructure != "flat" && folderStructure != "nested" {
		return fmt.Errorf("invalid folder-structure %q: must be 'flat' or 'nested'", folderStructure)
	}
	if format == "mbtiles" {
		if outputFile == "" {
			return fmt.Errorf("--output-file is required when using --format=mbtiles")
		}
		if bbox == "" {
			return fmt.Errorf("mbtiles format requires batch generation (use --bbox)")
		}
	}

	params := fieldParamsFromViper("generate")
	field, err := buildField(2, params)
	if err != nil {
		return fmt.Errorf("failed to build sampler: %w", err)
	}

	renderer := &tileRenderer{
		field: field,
		opts: render.Options{
			Size:        viper.GetInt("generate.tile_size"),
			Supersample: viper.GetInt("generate.supersample"),
			Smooth:      float32(viper.GetFloat64("generate.smooth")),
			Contrast:    float32(viper.GetFloat64("generate.contrast")),
		},
	}

	if bbox != "" {
		return runBatchGenerate(renderer, params, bbox, zoomMin, zoomMax, workers, showProgress, outputDir, format, outputFile, folderStructure)
	}

	return runSingleGenerate(renderer, params, zoom, x, y, outputDir, folderStructure)
}

func runSingleGenerate(renderer *tileRenderer, params fieldParams, zoom, x, y int, outputDir, folderStructure string) error {
	if zoom < 0 || x < 0 || y < 0 {
		return fmt.Errorf("invalid coordinates: zoom/x/y must be non-negative")
	}
	coords := tile.NewCoords(uint32(zoom), uint32(x), uint32(y))

	logger.Info("Rendering tile",
		"coords", coords.String(),
		"output_dir", outputDir,
		"kernel", params.Kernel,
		"seed", params.Seed,
		"octaves", params.Octaves,
		"frequency", params.Frequency,
	)

	pngData, err := renderer.Render(context.Background(), coords)
	if err != nil {
		return fmt.Errorf("failed to render tile: %w", err)
	}

	sink := &folderSink{dir: outputDir, nested: folderStructure == "nested"}
	if err := sink.WriteTile(zoom, x, y, pngData); err != nil {
		return err
	}

	logger.Info("Tile rendered", "coords", coords.String())
	return nil
}

func runBatchGenerate(renderer *tileRenderer, params fieldParams, bboxStr string, zoomMin, zoomMax, workers int, showProgress bool, outputDir, format, outputFile, folderStructure string) error {
	bbox, err := tile.ParseBBox(bboxStr)
	if err != nil {
		return fmt.Errorf("invalid bbox: %w", err)
	}

	if zoomMin <= 0 || zoomMax <= 0 {
		return fmt.Errorf("--zoom-min and --zoom-max are required for batch generation")
	}
	if zoomMin > zoomMax {
		return fmt.Errorf("--zoom-min (%d) must be <= --zoom-max (%d)", zoomMin, zoomMax)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	tiles := tile.InBBox(bbox, zoomMin, zoomMax)

	logger.Info("Starting batch tile generation",
		"bbox", bboxStr,
		"zoom_range", fmt.Sprintf("%d-%d", zoomMin, zoomMax),
		"tiles", len(tiles),
		"workers", workers,
		"format", format,
		"kernel", params.Kernel,
		"seed", params.Seed,
	)

	var sink worker.Sink
	var store *tilestore.Writer
	if format == "mbtiles" {
		store, err = tilestore.NewWriter(outputFile, tilestore.Metadata{
			Name:        "noisefield",
			Description: "Coherent-noise overlay tiles",
			Version:     "1.0",
			Bounds:      bbox,
			MinZoom:     zoomMin,
			MaxZoom:     zoomMax,
		})
		if err != nil {
			return fmt.Errorf("failed to create MBTiles writer: %w", err)
		}
		defer store.Close()
		sink = store
	} else {
		sink = &folderSink{dir: outputDir, nested: folderStructure == "nested"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	progress := worker.NewProgress(len(tiles), showProgress)

	pool := worker.New(worker.Config{
		Workers:    workers,
		Renderer:   renderer,
		Sink:       sink,
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tiles)

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Tile rendering failed", "coords", r.Coords.String(), "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if failedCount > 0 {
		return fmt.Errorf("%d tiles failed to render", failedCount)
	}

	if store != nil {
		if err := store.Flush(); err != nil {
			return fmt.Errorf("failed to flush MBTiles: %w", err)
		}
		logger.Info("MBTiles generation complete", "file", outputFile)
	}

	return nil
}
