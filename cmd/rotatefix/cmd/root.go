package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yunesj/picture-rotation-fixer/internal/config"
	"github.com/yunesj/picture-rotation-fixer/internal/models"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "rotatefix [directory]",
	Short: "Rotate scanned photos to upright orientation using face detection",
	Long: `rotatefix walks a directory tree of scanned photos and rotates each image
to its upright orientation. Every image is probed at 0/90/180/270 degrees;
the first rotation showing a detectable face wins, with a generic object
detector as fallback for photos without people. Files are rewritten in place
only when a better orientation is found.

Supported formats: JPEG, PNG

Examples:
  rotatefix ~/Pictures/Scanned
  rotatefix ~/Pictures/Scanned --workers 8 --dry-run
  rotatefix --no-object --confidence 0.6
  rotatefix ~/Pictures/Scanned --format json --output report.json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:         runRotateCommand,
}

// Execute runs the root command. Per-file failures never change the exit
// code; only configuration errors or an invalid root directory do.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/rotatefix, /etc/rotatefix)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	defaultModelsDir := models.DefaultModelsDir
	if envDir := os.Getenv(models.EnvModelsDir); envDir != "" {
		defaultModelsDir = envDir
	}
	rootCmd.PersistentFlags().String("models-dir", defaultModelsDir,
		"directory containing detection models (can also be set via ROTATEFIX_MODELS_DIR)")

	rootCmd.Flags().IntP("workers", "w", 0, "parallel workers (0 = number of CPU cores)")
	rootCmd.Flags().Float64("confidence", 0.5, "object detection confidence threshold")
	rootCmd.Flags().Float64("face-quality", 5.0, "minimum face cascade quality score")
	rootCmd.Flags().String("face-cascade", "", "path to the face cascade binary")
	rootCmd.Flags().String("object-model", "", "path to the object detection ONNX model")
	rootCmd.Flags().Bool("no-object", false, "disable the object detection fallback")
	rootCmd.Flags().Bool("dry-run", false, "report rotations without rewriting files")
	rootCmd.Flags().Bool("progress", true, "show a live progress bar")
	rootCmd.Flags().BoolP("quiet", "q", false, "suppress per-file output and progress")
	rootCmd.Flags().StringP("format", "f", "text", "summary format (text, json)")
	rootCmd.Flags().StringP("output", "o", "", "write summary to file instead of stdout")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("models_dir", rootCmd.PersistentFlags().Lookup("models-dir"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration with CLI flag overrides applied.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	// Reload so flag bindings registered after the initial load take effect.
	loader := GetConfigLoader()
	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}

	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
