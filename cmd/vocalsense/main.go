package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vocalsense/vocalsense/analysis"
	"github.com/vocalsense/vocalsense/emotion"
	"github.com/vocalsense/vocalsense/logging"
	"github.com/vocalsense/vocalsense/quality"
	"github.com/vocalsense/vocalsense/transcode"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "vocalsense",
		Short:         "Voice quality scoring and emotion inference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(v, cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("log-level", "info", "log level (debug|info|warn|error)")
	flags.Int("frame-size", 1024, "analysis frame length in samples")
	flags.Int("hop-size", 512, "stride between frame starts in samples")

	root.AddCommand(newAnalyzeCmd(v), newQualityCmd(v))
	return root
}

// setup loads the optional config file, binds flags, and installs the
// logrus-backed global logger. Flags override file values.
func setup(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	logging.SetGlobalLogger(logging.NewLogrusLogger(log))
	return nil
}

func extractionConfig(v *viper.Viper) *analysis.Config {
	config := analysis.DefaultConfig()
	config.FrameSize = v.GetInt("frame-size")
	config.HopSize = v.GetInt("hop-size")
	return config
}

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.wav>",
		Short: "Infer the emotional state of a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := transcode.NewDecoder(nil).DecodeFile(args[0])
			if err != nil {
				return err
			}

			engine, err := emotion.NewEngine(extractionConfig(v))
			if err != nil {
				return err
			}

			result, err := engine.AnalyzeEmotion(data)
			if err != nil {
				return err
			}

			// The full feature vector is too noisy for CLI output
			result.Features = nil
			return printJSON(cmd, result)
		},
	}
}

func newQualityCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "quality <file.wav>",
		Short: "Score the recording quality of a sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := transcode.NewDecoder(nil).DecodeFile(args[0])
			if err != nil {
				return err
			}

			report, err := quality.AnalyzeBuffer(data, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
