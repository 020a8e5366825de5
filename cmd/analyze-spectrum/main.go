// Command analyze-spectrum reports the dominant rotation frequencies of an
// SVG curve, computed two ways: with an independent reference FFT (gonum)
// and with this library's own decomposition. For power-of-two sample counts
// the two tables list the same signed frequencies; at other sizes the
// library's transform runs with the opposite exponent sign, which mirrors
// frequency k to -k relative to the reference.
//
// Usage:
//
//	analyze-spectrum -input drawing.svg
//	analyze-spectrum -input drawing.svg -samples 256 -top 20
package main

import (
	"flag"
	"fmt"
	"log"
	"math/cmplx"
	"os"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"honnef.co/go/curve"

	epicycles "github.com/tphakala/go-epicycles"
	"github.com/tphakala/go-epicycles/internal/svgpath"
)

// Default command-line flag values
const (
	defaultSamples = 128 // Resampled points; a power of two keeps both reports in one convention
	defaultTop     = 10  // Dominant frequencies to list
)

// Trace resolution for the library config; unused by the analysis itself.
const contourSamples = 100

func main() {
	log.SetFlags(0)
	log.SetPrefix("analyze-spectrum: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("input", "", "Input SVG file (required)")
	samples := flag.Int("samples", defaultSamples, "Resampled points per curve (1..10000)")
	top := flag.Int("top", defaultTop, "Number of dominant frequencies to report")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		return fmt.Errorf("-input is required")
	}

	points, err := loadPoints(*input, *samples)
	if err != nil {
		return err
	}

	printReferenceSpectrum(points, *top)
	return printLibraryOrder(points, *samples, *top)
}

// loadPoints parses the SVG and resamples all its paths to n points.
func loadPoints(path string, n int) ([]curve.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := svgpath.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var combined curve.BezPath
	for _, p := range doc.Paths() {
		combined = append(combined, p...)
	}
	if len(combined) == 0 {
		return nil, fmt.Errorf("%s contains no path geometry", path)
	}

	return epicycles.ResamplePath(combined, n)
}

// printReferenceSpectrum computes the normalized spectrum with gonum's FFT
// and lists the top frequencies by amplitude.
func printReferenceSpectrum(points []curve.Point, top int) {
	n := len(points)
	src := make([]complex128, n)
	for i, pt := range points {
		src[i] = complex(pt.X, pt.Y)
	}

	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, src)

	inv := complex(1/float64(n), 0)
	amps := make([]float64, n)
	var totalEnergy float64
	for i := range coeff {
		coeff[i] *= inv
		amps[i] = cmplx.Abs(coeff[i])
		totalEnergy += amps[i] * amps[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return amps[order[a]] > amps[order[b]]
	})

	fmt.Printf("=== Reference spectrum (gonum, %d points) ===\n", n)
	fmt.Printf("%4s  %6s  %12s  %10s  %7s\n", "rank", "freq", "amplitude", "phase", "energy")
	shown := min(top, n)
	for rank := 0; rank < shown; rank++ {
		i := order[rank]
		share := 0.0
		if totalEnergy > 0 {
			share = amps[i] * amps[i] / totalEnergy * 100
		}
		fmt.Printf("%4d  %+6d  %12.6f  %+10.4f  %6.2f%%\n",
			rank+1, signedFreq(i, n), amps[i], cmplx.Phase(coeff[i]), share)
	}
	fmt.Println()
}

// printLibraryOrder decomposes the same points with the library and lists
// its energy order.
func printLibraryOrder(points []curve.Point, samples, top int) error {
	anim, err := epicycles.New(&epicycles.Config{
		SampleCount:    samples,
		ContourSamples: contourSamples,
	})
	if err != nil {
		return err
	}
	if err := anim.LoadPoints(points); err != nil {
		return err
	}

	info := epicycles.GetInfo(anim)
	components := anim.Components()

	fmt.Printf("=== Library energy order (%s transform) ===\n", info.Algorithm)
	fmt.Printf("%4s  %6s  %12s\n", "rank", "freq", "amplitude")
	shown := min(top, len(components))
	for rank := 0; rank < shown; rank++ {
		c := components[rank]
		fmt.Printf("%4d  %+6d  %12.6f\n", rank+1, c.Freq, c.Amplitude)
	}

	return nil
}

// signedFreq maps spectrum index i to the signed frequency of its bin.
func signedFreq(i, n int) int {
	if i <= n/2 {
		return i
	}
	return i - n
}
