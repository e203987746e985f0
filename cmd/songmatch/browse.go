package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temcen/songmatch/internal/similarity"
	"github.com/temcen/songmatch/pkg/models"
)

var topCmd = &cobra.Command{
	Use:   "top <genre>",
	Short: "Show the most energetic songs of a genre",
	Long: `List a genre's songs ordered by energy, then danceability, tempo and valence.

Example:
  songmatch top rock -n 10`,
	Args: cobra.ExactArgs(1),
	RunE: runTop,
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List catalog genres",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Show a few catalog songs to try with \"similar\"",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog feature statistics",
	Long: `Display catalog size, genre composition and the distribution and
correlation of the audio features.

Example:
  songmatch stats
  songmatch stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List the available moods",
	Args:  cobra.NoArgs,
	RunE:  runMoods,
}

var listCount int

func init() {
	topCmd.Flags().IntVarP(&listCount, "count", "n", 0, "Number of songs (default: recommendation.default_count)")
	sampleCmd.Flags().IntVarP(&listCount, "count", "n", 0, "Number of songs (default: recommendation.sample_size)")
}

func runTop(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	chart, err := core.Services.Recommendation.TopInGenre(cmd.Context(), args[0], listCount)
	if err != nil {
		return err
	}
	if outputJSON {
		return outputAsJSON(cmd, chart)
	}

	rows := make([][]string, len(chart.Songs))
	for i, s := range chart.Songs {
		rows[i] = []string{
			fmt.Sprint(s.Position), s.Title, s.Artist,
			fmt.Sprintf("%.2f", s.Features.Energy),
			fmt.Sprintf("%.2f", s.Features.Danceability),
			fmt.Sprintf("%.0f", s.Features.Tempo),
			fmt.Sprintf("%.2f", s.Features.Valence),
		}
	}
	printInfo(cmd.OutOrStdout(), "Top %s", chart.Genre)
	printTable(cmd.OutOrStdout(), []string{"#", "Title", "Artist", "Energy", "Dance", "Tempo", "Valence"}, rows)
	return nil
}

func runGenres(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	genres, err := core.Services.Recommendation.Genres(cmd.Context())
	if err != nil {
		return err
	}
	if outputJSON {
		return outputAsJSON(cmd, genres)
	}

	out := cmd.OutOrStdout()
	for _, g := range genres {
		fmt.Fprintln(out, g)
	}
	printMuted(out, fmt.Sprintf("%d genres", len(genres)))
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	songs, err := core.Services.Recommendation.Sample(cmd.Context(), listCount)
	if err != nil {
		return err
	}
	if outputJSON {
		return outputAsJSON(cmd, songs)
	}

	rows := make([][]string, len(songs))
	for i, s := range songs {
		rows[i] = []string{s.Title, s.Artist, s.Genre}
	}
	printTable(cmd.OutOrStdout(), []string{"Title", "Artist", "Genre"}, rows)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	stats, err := core.Services.Recommendation.Stats(cmd.Context())
	if err != nil {
		return err
	}
	if outputJSON {
		return outputAsJSON(cmd, stats)
	}
	return outputStatsHuman(cmd, stats)
}

func runMoods(cmd *cobra.Command, args []string) error {
	profiles := similarity.Moods()
	moods := make([]models.MoodInfo, len(profiles))
	for i, p := range profiles {
		moods[i] = models.MoodInfo{Name: p.Name, Energy: p.Energy, Valence: p.Valence}
	}
	if outputJSON {
		return outputAsJSON(cmd, moods)
	}

	rows := make([][]string, len(moods))
	for i, m := range moods {
		rows[i] = []string{m.Name, fmt.Sprintf("%.1f", m.Energy), fmt.Sprintf("%.1f", m.Valence)}
	}
	printTable(cmd.OutOrStdout(), []string{"Mood", "Energy", "Valence"}, rows)
	return nil
}
