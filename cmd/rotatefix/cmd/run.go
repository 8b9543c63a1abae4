package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yunesj/picture-rotation-fixer/internal/batch"
	"github.com/yunesj/picture-rotation-fixer/internal/config"
	"github.com/yunesj/picture-rotation-fixer/internal/detect"
	"github.com/yunesj/picture-rotation-fixer/internal/models"
)

// runRotateCommand wires flags and config into a batch run over the given
// directory (or the configured default when omitted).
func runRotateCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	root := cfg.DefaultRoot
	if root == "" {
		root = config.DefaultRootDir()
	}
	if len(args) == 1 {
		root = args[0]
	}

	batchConfig := configToBatchConfig(cfg, cmd)
	batchConfig.RootDir = root

	summary, err := batch.ProcessBatch(batchConfig)
	if err != nil {
		return err
	}

	return summary.SaveSummary(batchConfig.Format, batchConfig.OutputFile, batchConfig.Quiet)
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	batchConfig := &batch.Config{}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	batchConfig.DryRun = cfg.Batch.DryRun
	if cmd.Flags().Changed("dry-run") {
		batchConfig.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}

	batchConfig.ShowProgress = cfg.Batch.ShowProgress
	if cmd.Flags().Changed("progress") {
		batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	}

	batchConfig.Quiet = cfg.Batch.Quiet
	if cmd.Flags().Changed("quiet") {
		batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	}

	batchConfig.Format = cfg.Output.Format
	if cmd.Flags().Changed("format") {
		batchConfig.Format, _ = cmd.Flags().GetString("format")
	}

	batchConfig.OutputFile = cfg.Output.File
	if cmd.Flags().Changed("output") {
		batchConfig.OutputFile, _ = cmd.Flags().GetString("output")
	}

	batchConfig.Detect = configToDetectConfig(cfg, cmd)
	return batchConfig
}

// configToDetectConfig resolves detector settings and model paths.
func configToDetectConfig(cfg *config.Config, cmd *cobra.Command) detect.Config {
	face := detect.DefaultFaceConfig()
	object := detect.DefaultObjectConfig()

	cascadePath := cfg.Detect.FaceCascadePath
	if cmd.Flags().Changed("face-cascade") {
		cascadePath, _ = cmd.Flags().GetString("face-cascade")
	}
	if cascadePath != "" {
		face.CascadePath = cascadePath
	} else if cfg.ModelsDir != "" {
		face.CascadePath = models.GetFaceCascadePath(cfg.ModelsDir)
	}

	faceQuality := cfg.Detect.FaceQuality
	if cmd.Flags().Changed("face-quality") {
		faceQuality, _ = cmd.Flags().GetFloat64("face-quality")
	}
	if faceQuality > 0 {
		face.Quality = faceQuality
	}

	modelPath := cfg.Detect.ObjectModelPath
	if cmd.Flags().Changed("object-model") {
		modelPath, _ = cmd.Flags().GetString("object-model")
	}
	if modelPath != "" {
		object.ModelPath = modelPath
	} else if cfg.ModelsDir != "" {
		object.ModelPath = models.GetObjectModelPath(cfg.ModelsDir)
	}

	confidence := cfg.Detect.Confidence
	if cmd.Flags().Changed("confidence") {
		confidence, _ = cmd.Flags().GetFloat64("confidence")
	}
	if confidence > 0 {
		object.Confidence = confidence
	}

	disableObject := cfg.Detect.DisableObject
	if cmd.Flags().Changed("no-object") {
		disableObject, _ = cmd.Flags().GetBool("no-object")
	}

	return detect.Config{
		Face:          face,
		Object:        object,
		DisableObject: disableObject,
	}
}
