package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/visagelab/faceanalysis/internal/align"
	"github.com/visagelab/faceanalysis/internal/analyser"
	"github.com/visagelab/faceanalysis/internal/backend"
	"github.com/visagelab/faceanalysis/internal/cache"
	"github.com/visagelab/faceanalysis/internal/face"
	"github.com/visagelab/faceanalysis/internal/registry"
	"github.com/visagelab/faceanalysis/pkg/imgutil"
)

// AnalyzeOptions holds the analyze command flags.
type AnalyzeOptions struct {
	InputPath     string
	ReferencePath string
	MaxDistance   float64
	Position      int
	Direction     string
	Age           string
	Gender        string
}

var analyzeOpts AnalyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect and embed faces in a frame",
	Long: `Detect faces in an image, compute identity embeddings and print one
JSON record per face. With --reference, only faces similar to the reference
image's primary face are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(analyzeOpts)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOpts.InputPath, "input", "i", "", "Path to the frame image")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.ReferencePath, "reference", "r", "", "Path to a reference face image")
	analyzeCmd.Flags().Float64VarP(&analyzeOpts.MaxDistance, "distance", "t", 0.85, "Maximum cosine distance to the reference face")
	analyzeCmd.Flags().IntVarP(&analyzeOpts.Position, "position", "p", 0, "Which face of the reference image to use")
	analyzeCmd.Flags().StringVar(&analyzeOpts.Direction, "direction", "", "Sort faces by direction (left-right, right-left, top-bottom, bottom-top, small-large, large-small)")
	analyzeCmd.Flags().StringVar(&analyzeOpts.Age, "age", "", "Keep only faces in an age class (child, teen, adult, senior)")
	analyzeCmd.Flags().StringVar(&analyzeOpts.Gender, "gender", "", "Keep only faces of a gender (male, female)")

	analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

// faceRecord is the JSON shape printed per detected face.
type faceRecord struct {
	BBox     [4]float64 `json:"bbox"`
	Score    float64    `json:"score"`
	Age      int        `json:"age"`
	Gender   int        `json:"gender"`
	Distance *float64   `json:"distance,omitempty"`
}

func runAnalyze(opts AnalyzeOptions) error {
	a, err := newAnalyser(opts)
	if err != nil {
		return err
	}

	frame, err := loadFrame(opts.InputPath)
	if err != nil {
		return err
	}

	var faces []face.Face
	var reference *face.Face
	if opts.ReferencePath != "" {
		refFrame, err := loadFrame(opts.ReferencePath)
		if err != nil {
			return err
		}
		reference, err = a.GetOneFace(refFrame, opts.Position)
		if err != nil {
			return err
		}
		if reference == nil {
			return fmt.Errorf("no face found in reference image %s", opts.ReferencePath)
		}
		faces, err = a.FindSimilarFaces(frame, *reference, opts.MaxDistance)
		if err != nil {
			return err
		}
	} else {
		faces, err = a.GetManyFaces(frame)
		if err != nil {
			return err
		}
	}

	log.Infof("Found %d face(s) in %s", len(faces), opts.InputPath)

	encoder := json.NewEncoder(os.Stdout)
	for _, f := range faces {
		record := faceRecord{
			BBox:   [4]float64{f.BBox.X1, f.BBox.Y1, f.BBox.X2, f.BBox.Y2},
			Score:  f.Score,
			Age:    f.Age,
			Gender: f.Gender,
		}
		if reference != nil && f.HasEmbedding() && reference.HasEmbedding() {
			distance := face.CosineDistance(f.NormedEmbedding, reference.NormedEmbedding)
			record.Distance = &distance
		}
		if err := encoder.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

// loadFrame reads an image file as a frame, applying EXIF orientation.
func loadFrame(path string) (image.Image, error) {
	frame, err := imgutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return frame, nil
}

// newAnalyser wires the registry-backed capability factory, the crop aligner
// and a fresh frame cache into an analyser configured from the CLI flags.
func newAnalyser(opts AnalyzeOptions) (*analyser.Analyser, error) {
	cfg := analyser.DefaultConfig()
	cfg.Direction = analyser.Direction(opts.Direction)
	cfg.Age = analyser.AgeClass(opts.Age)
	cfg.Gender = analyser.GenderClass(opts.Gender)

	reg := registry.New(modelsDir, skipDownload)
	return analyser.New(cfg, backend.NewHandleFactory(reg), align.NewCropAligner(), cache.New())
}
