package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/temcen/songmatch/internal/app"
	"github.com/temcen/songmatch/internal/config"
)

var (
	cfgFile          string
	cfgCatalogPath   string
	cfgMinPopularity int
	cfgVerbose       bool
	outputJSON       bool
)

var rootCmd = &cobra.Command{
	Use:   "songmatch",
	Short: "Songmatch - song recommendations from audio features",
	Long: `Songmatch recommends songs from a catalog by comparing danceability,
energy, tempo and valence.

Recommendations can start from a song you like, a mood within a genre,
a raw feature tuple, or a track looked up on Spotify.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: ./config/app.yaml)")
	rootCmd.PersistentFlags().StringVar(&cfgCatalogPath, "catalog", "", "Catalog CSV or SQLite path (overrides catalog.path)")
	rootCmd.PersistentFlags().IntVar(&cfgMinPopularity, "min-popularity", 0, "Drop songs below this popularity (overrides catalog.min_popularity)")
	rootCmd.PersistentFlags().BoolVarP(&cfgVerbose, "verbose", "v", false, "Log catalog loading and lookups")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(moodsCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFrom(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfgCatalogPath != "" {
		cfg.Catalog.Path = cfgCatalogPath
	}
	if cmd.Flags().Changed("min-popularity") {
		cfg.Catalog.MinPopularity = cfgMinPopularity
	}

	return cfg, cfg.Validate()
}

// openCore loads configuration and the catalog. Callers must Close the core.
func openCore(cmd *cobra.Command) (*app.Core, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := app.SetupLogger(cfg)
	logger.SetOutput(cmd.ErrOrStderr())
	if !cfgVerbose {
		logger.SetLevel(logrus.WarnLevel)
	}

	core, err := app.NewCore(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return core, nil
}
