// Command smartcrop crops IC package photos down to the package body.
//
// Single-image mode crops one photo; folder mode mirrors a directory tree
// into "<dir>-cropped" and records every measurement in ic_dimensions.txt.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"ic-gauge/internal/imgio"
	"ic-gauge/internal/scan"
	"ic-gauge/internal/version"
)

// dimensionsFile collects one line per successfully cropped image.
const dimensionsFile = "ic_dimensions.txt"

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func main() {
	imagePath := flag.String("image", "", "Path to a single IC photo to crop")
	outPath := flag.String("out", "", "Output path for the single-image crop (default: <name>-cropped.<ext>)")
	dirPath := flag.String("dir", "", "Process every image under this directory recursively")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of parallel workers in folder mode")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("smartcrop %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
		return
	}

	switch {
	case *imagePath != "":
		if err := cropSingle(*imagePath, *outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Crop failed: %v\n", err)
			os.Exit(1)
		}
	case *dirPath != "":
		if err := cropFolder(*dirPath, *workers); err != nil {
			fmt.Fprintf(os.Stderr, "Folder processing failed: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Usage: smartcrop -image <path> [-out <path>] | -dir <folder> [-workers N]")
		os.Exit(1)
	}
}

func cropSingle(path, out string) error {
	if out == "" {
		ext := filepath.Ext(path)
		out = strings.TrimSuffix(path, ext) + "-cropped" + ext
	}

	img, err := imgio.Load(path)
	if err != nil {
		return err
	}
	defer img.Close()

	svc := scan.NewService()
	outcome, err := svc.Crop(context.Background(), img, out)
	if err != nil {
		return err
	}
	defer outcome.Image.Close()

	fmt.Printf("Cropped %s -> %s\n", path, out)
	fmt.Printf("Body: %.2f x %.2f px at %.2f deg (rect %.1f x %.1f with pins)\n",
		outcome.Width, outcome.Height, outcome.Angle,
		outcome.OriginalWidth, outcome.OriginalHeight)
	return nil
}

// record is one ic_dimensions.txt line, keyed by the path relative to the
// input folder.
type record struct {
	rel    string
	width  float64
	height float64
	angle  float64
}

func cropFolder(dir string, workers int) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", dir)
	}

	outDir := strings.TrimSuffix(filepath.Clean(dir), string(filepath.Separator)) + "-cropped"
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("clearing output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && imageExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning input directory: %w", err)
	}
	fmt.Printf("Found %d images\n", len(files))

	if workers < 1 {
		workers = 1
	}

	svc := scan.NewService()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		records   []record
		succeeded int64
	)
	jobs := make(chan string)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					continue
				}
				rec, err := cropOne(svc, path, filepath.Join(outDir, rel))
				if err != nil {
					fmt.Printf("Processing %s... failed (%v)\n", rel, err)
					continue
				}
				rec.rel = rel
				fmt.Printf("Processing %s... done (%.1fx%.1f)\n", rel, rec.width, rec.height)
				atomic.AddInt64(&succeeded, 1)
				mu.Lock()
				records = append(records, rec)
				mu.Unlock()
			}
		}()
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	sort.Slice(records, func(i, j int) bool { return records[i].rel < records[j].rel })

	dimsPath := filepath.Join(outDir, dimensionsFile)
	f, err := os.Create(dimsPath)
	if err != nil {
		return fmt.Errorf("creating dimensions file: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Filename, Width, Height, Angle\n")
	for _, rec := range records {
		fmt.Fprintf(f, "%s, %.2f, %.2f, %.2f\n", rec.rel, rec.width, rec.height, rec.angle)
	}

	fmt.Printf("\nProcessing complete.\n")
	fmt.Printf("Total images: %d\n", len(files))
	fmt.Printf("Successfully cropped: %d\n", succeeded)
	fmt.Printf("Dimensions saved to: %s\n", dimsPath)
	return nil
}

func cropOne(svc *scan.Service, path, dest string) (record, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return record{}, err
	}

	img, err := imgio.Load(path)
	if err != nil {
		return record{}, err
	}
	defer img.Close()

	outcome, err := svc.Crop(context.Background(), img, dest)
	if err != nil {
		return record{}, err
	}
	outcome.Image.Close()

	return record{
		width:  outcome.Width,
		height: outcome.Height,
		angle:  outcome.Angle,
	}, nil
}
