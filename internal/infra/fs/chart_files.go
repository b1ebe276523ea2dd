package fs

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// ChartFileName is the file name used for saved frame-time charts.
const ChartFileName = "frame_times.png"

// SaveChartPNG writes img to dir/name as PNG and checks the file is non-empty.
func SaveChartPNG(dir, name string, img image.Image) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	if err := gg.SavePNG(filename, img); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	fileInfo, err := os.Stat(filename)
	if err != nil {
		return "", fmt.Errorf("failed to stat chart file: %w", err)
	}
	if fileInfo.Size() == 0 {
		os.Remove(filename)
		return "", fmt.Errorf("chart file is empty after rendering")
	}

	return filename, nil
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("chart is empty after encoding")
	}
	return buf.Bytes(), nil
}
