package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"frametimes/internal/features/frame_charts"
	"frametimes/internal/features/frame_table"
	"frametimes/internal/infra/config"
	storage "frametimes/internal/infra/fs"
)

// go run ./etc/tools
// writes a synthetic etc/charts/times.csv and renders it with every renderer
func main() {
	fmt.Println("Generating test charts...")

	dir := filepath.Join("etc", "charts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	csvPath := filepath.Join(dir, "times.csv")
	if err := writeSyntheticCapture(csvPath, 300); err != nil {
		fmt.Printf("Error writing capture: %v\n", err)
		os.Exit(1)
	}

	window, err := frame_table.LoadWindow(csvPath, config.DefaultColumns, 200)
	if err != nil {
		fmt.Printf("Error loading capture: %v\n", err)
		os.Exit(1)
	}
	chart := frame_charts.Build(window, 2000, 1000)

	for _, name := range []string{config.RendererGG, config.RendererPlot} {
		r, err := frame_charts.NewRenderer(name, frame_charts.RendererOptions{DPI: 100})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		img, err := r.Render(chart)
		if err != nil {
			fmt.Printf("Error rendering with %s: %v\n", name, err)
			os.Exit(1)
		}
		path, err := storage.SaveChartPNG(dir, "frame_times_"+name+".png", img)
		if err != nil {
			fmt.Printf("Error saving %s chart: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("Chart generated successfully: %s\n", path)
	}
}

// writeSyntheticCapture writes frames with a periodic present stall and some noise.
func writeSyntheticCapture(path string, frames int) error {
	rng := rand.New(rand.NewSource(1))

	var b strings.Builder
	b.WriteString("Frame," + strings.Join(config.DefaultColumns, ",") + "\n")
	for i := 0; i < frames; i++ {
		texture := 0.2 + rng.Float64()*0.3
		encode := 2.5 + math.Sin(float64(i)/15)*0.8 + rng.Float64()*0.4
		submit := 0.4 + rng.Float64()*0.2
		present := 1.0 + rng.Float64()*0.5
		if i%60 == 59 {
			present += 8
		}
		fmt.Fprintf(&b, "%d,%.3f,%.3f,%.3f,%.3f\n", i, texture, encode, submit, present)
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
