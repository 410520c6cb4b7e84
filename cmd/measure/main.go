// Command measure reports the body dimensions of an IC package photo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ic-gauge/internal/detect"
	"ic-gauge/internal/imgio"
	"ic-gauge/internal/pipeline"
	"ic-gauge/internal/scan"
	"ic-gauge/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to IC photo (TIFF, PNG, JPEG, or BMP)")
	debugPath := flag.String("debug", "", "Write an annotated overlay image to this path")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("measure %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: measure -image <path> [-debug overlay.png]")
		os.Exit(1)
	}

	img, err := imgio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	fmt.Printf("Loaded image: %dx%d pixels\n", img.Cols(), img.Rows())

	p := pipeline.New()
	detector := detect.NewProjectionDetector(p)
	detector.DebugMode = *debugPath != ""
	svc := scan.NewServiceWith(p, detector)

	result, err := svc.Analyze(context.Background(), img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nPer-method results:\n")
	fmt.Printf("%-20s %10s %10s %8s %12s\n", "Method", "Width", "Height", "Angle", "Confidence")
	for _, r := range result.Results {
		fmt.Printf("%-20s %10.1f %10.1f %8.2f %12.2f\n", r.MethodName, r.Width, r.Height, r.Angle, r.Confidence)
	}

	fmt.Printf("\nBody: %.1f x %.1f px at %.2f deg\n", result.Width, result.Height, result.Angle)
	fmt.Printf("Confidence: %.2f (agreement %s)\n", result.Confidence, result.Agreement)

	for _, r := range result.Results {
		if r.Debug == nil {
			continue
		}
		if *debugPath != "" {
			if err := imgio.Save(*debugPath, *r.Debug); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write overlay: %v\n", err)
			} else {
				fmt.Printf("Overlay written to %s\n", *debugPath)
			}
		}
		r.Debug.Close()
	}
}
