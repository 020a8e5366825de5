// Command epicycle-trace converts an SVG drawing into a traced epicycle
// contour and writes it as stereo audio or CSV.
//
// Usage:
//
//	epicycle-trace -input drawing.svg -output trace.wav
//	epicycle-trace -input drawing.svg -output trace.csv -samples 200
//	epicycle-trace -input drawing.svg -output trace.wav -vectors 12   # 12 dominant vectors only
//	epicycle-trace -input drawing.svg -output trace.wav -parallel
//
// WAV output maps the contour's X coordinate to the left channel and Y to
// the right, normalized to full scale. Played back, the file is the drawing
// as an oscilloscope would show it in XY mode.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	epicycles "github.com/tphakala/go-epicycles"
)

// Default command-line flag values
const (
	defaultSamples = 100  // Resampled points per curve
	defaultContour = 2000 // Contour points per revolution
	defaultVectors = 0    // Active vectors, 0 = all
)

// Number of dominant components listed in verbose mode
const verboseComponentCount = 10

func main() {
	log.SetFlags(0)
	log.SetPrefix("epicycle-trace: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("input", "", "Input SVG file (required)")
	output := flag.String("output", "", "Output file, .wav or .csv (required)")
	samples := flag.Int("samples", defaultSamples, "Resampled points per curve (1..10000)")
	contour := flag.Int("contour", defaultContour, "Contour points per revolution")
	vectors := flag.Int("vectors", defaultVectors, "Number of dominant vectors to trace with, 0 = all")
	parallel := flag.Bool("parallel", false, "Trace the contour across multiple goroutines")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *input == "" || *output == "" {
		flag.Usage()
		return fmt.Errorf("both -input and -output are required")
	}

	// Load and flatten the SVG document.
	path, pathCount, err := loadDocument(*input)
	if err != nil {
		return err
	}

	config := &epicycles.Config{
		SampleCount:    *samples,
		ContourSamples: *contour,
		Parallel:       *parallel,
	}

	anim, err := epicycles.New(config)
	if err != nil {
		return err
	}
	if err := anim.LoadPath(path); err != nil {
		return fmt.Errorf("loading %s: %w", *input, err)
	}
	if *vectors > 0 {
		anim.SetActiveCount(*vectors)
	}

	if *verbose {
		logComponents(anim)
	}

	trace := anim.Trace(nil)

	// Write the contour in the format the extension asks for.
	switch strings.ToLower(filepath.Ext(*output)) {
	case ".wav":
		err = writeWAV(*output, trace)
	case ".csv":
		err = writeCSV(*output, trace)
	default:
		err = fmt.Errorf("unsupported output format %q, want .wav or .csv", filepath.Ext(*output))
	}
	if err != nil {
		return err
	}

	info := epicycles.GetInfo(anim)
	fmt.Printf("Traced %s -> %s\n", filepath.Base(*input), filepath.Base(*output))
	fmt.Printf("  %d paths, %d samples, %s transform\n", pathCount, info.Size, info.Algorithm)
	fmt.Printf("  %d of %d vectors active\n", info.ActiveCount, info.Size)
	fmt.Printf("  %d contour points, %.1f KB working memory\n",
		len(trace), float64(info.MemoryUsage)/bytesPerKilobyte)

	return nil
}

// logComponents reports the dominant rotating vectors.
func logComponents(anim epicycles.Animator) {
	components := anim.Components()
	n := min(len(components), verboseComponentCount)

	log.Printf("%d components, %d dominant:", len(components), n)
	for i := 0; i < n; i++ {
		c := components[i]
		log.Printf("  #%d freq %+d amplitude %.6f", i+1, c.Freq, c.Amplitude)
	}
}
