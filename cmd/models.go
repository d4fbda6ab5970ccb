package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/visagelab/faceanalysis/internal/registry"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage model files",
}

var modelsDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download all model files up front",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.New(modelsDir, skipDownload)
		if err := reg.PreCheck(); err != nil {
			return err
		}
		log.Info("All models available")
		return nil
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known models and their local paths",
	Run: func(cmd *cobra.Command, args []string) {
		reg := registry.New(modelsDir, skipDownload)
		for _, name := range []string{registry.FaceDetectionYuNet, registry.FaceRecognitionArcFace} {
			if model, ok := reg.Lookup(name); ok {
				fmt.Printf("%s\t%s\n", model.Name, model.Path)
			}
		}
	},
}

func init() {
	modelsCmd.AddCommand(modelsDownloadCmd)
	modelsCmd.AddCommand(modelsListCmd)
	rootCmd.AddCommand(modelsCmd)
}
