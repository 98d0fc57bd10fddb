// Package main provides a synthetic mask-area table generator for exercising
// the phenopipe analysis pipeline without a segmentation model run.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

func main() {
	var (
		output        = flag.String("output", "mask_areas.csv", "Output CSV path")
		plots         = flag.Int("plots", 24, "Number of plots to simulate")
		imagesPerPlot = flag.Int("images-per-plot", 2, "Images captured per plot")
		masksPerImage = flag.Int("masks-per-image", 40, "Detected masks per image")
		areaMean      = flag.Float64("area-mean", 850, "Mean mask area in pixels")
		areaStdDev    = flag.Float64("area-stddev", 180, "Mask area standard deviation")
		outlierRate   = flag.Float64("outlier-rate", 0.02, "Fraction of masks inflated to extreme areas")
		unmatched     = flag.Int("unmatched", 0, "Extra rows with image names encoding no plot")
		seed          = flag.Int64("seed", 1, "RNG seed")
	)
	flag.Parse()

	if *plots < 1 || *imagesPerPlot < 1 || *masksPerImage < 1 {
		log.Fatal("plots, images-per-plot and masks-per-image must all be positive")
	}

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Image Name", "Mask Name", "Area"}); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	rows := 0
	write := func(image, mask string, area float64) {
		if err := w.Write([]string{image, mask, strconv.FormatFloat(area, 'f', 0, 64)}); err != nil {
			log.Fatalf("Failed to write row: %v", err)
		}
		rows++
	}

	for plot := 1; plot <= *plots; plot++ {
		// Each plot gets its own density tilt so plots differ in spread.
		plotScale := 0.8 + 0.4*rng.Float64()

		for img := 0; img < *imagesPerPlot; img++ {
			image := fmt.Sprintf("plot_%d-cam%d.jpg", plot, img+1)
			for m := 0; m < *masksPerImage; m++ {
				area := *areaMean*plotScale + rng.NormFloat64()**areaStdDev
				if rng.Float64() < *outlierRate {
					area *= 4 + 3*rng.Float64()
				}
				if area < 1 {
					area = 1
				}
				write(image, fmt.Sprintf("Mask_%d", m), area)
			}
		}
	}

	for i := 0; i < *unmatched; i++ {
		write(fmt.Sprintf("calibration_card_%c.jpg", 'a'+i%26), "Mask_0",
			*areaMean+rng.NormFloat64()**areaStdDev)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Failed to flush output: %v", err)
	}

	log.Printf("Wrote %d mask rows across %d plots to %s", rows, *plots, *output)
}
