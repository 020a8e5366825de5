package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
	"honnef.co/go/curve"

	"github.com/tphakala/go-epicycles/internal/svgpath"
)

// WAV output parameters
const (
	wavSampleRate = 44100 // Output sample rate in Hz
	wavBitDepth   = 16    // Output bit depth
	wavChannels   = 2     // X left, Y right
	wavPCMFormat  = 1     // WAV audio format tag for PCM
	maxInt16      = 32767.0
)

// Memory conversion
const bytesPerKilobyte = 1024

// loadDocument parses an SVG file and joins all its paths into one
// multi-subpath curve, returning the curve and the document's path count.
func loadDocument(path string) (curve.BezPath, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := svgpath.Parse(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	paths := doc.Paths()
	var combined curve.BezPath
	for _, p := range paths {
		combined = append(combined, p...)
	}
	if len(combined) == 0 {
		return nil, 0, fmt.Errorf("%s contains no path geometry", path)
	}

	return combined, len(paths), nil
}

// writeWAV writes the contour as 16-bit stereo PCM, X on the left channel
// and Y on the right, peak-normalized to full scale.
func writeWAV(path string, contour []curve.Point) (err error) {
	xs := make([]float64, len(contour))
	ys := make([]float64, len(contour))
	for i, pt := range contour {
		xs[i] = pt.X
		ys[i] = pt.Y
	}

	if p := peak(xs, ys); p > 0 {
		f64.Scale(xs, xs, 1/p)
		f64.Scale(ys, ys, 1/p)
	}

	interleaved := make([]float64, wavChannels*len(contour))
	f64.Interleave2(interleaved, xs, ys)

	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = pcm16(v)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	enc := wav.NewEncoder(f, wavSampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: wavSampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return nil
}

// writeCSV writes the contour as x,y rows with full float64 precision.
func writeCSV(path string, contour []curve.Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, pt := range contour {
		record := []string{
			strconv.FormatFloat(pt.X, 'g', -1, 64),
			strconv.FormatFloat(pt.Y, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// peak returns the largest absolute value across both coordinate slices.
func peak(xs, ys []float64) float64 {
	var p float64
	for _, v := range xs {
		p = math.Max(p, math.Abs(v))
	}
	for _, v := range ys {
		p = math.Max(p, math.Abs(v))
	}
	return p
}

// pcm16 converts a normalized sample to a clamped 16-bit PCM value.
func pcm16(v float64) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * maxInt16)
}
