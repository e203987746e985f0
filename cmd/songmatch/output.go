package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temcen/songmatch/internal/services"
	"github.com/temcen/songmatch/pkg/models"
)

// outputAsJSON writes any value as formatted JSON to the command's stdout.
func outputAsJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputRecommendations prints a ranked list in the configured format.
func outputRecommendations(cmd *cobra.Command, title string, resp *models.RecommendationResponse) error {
	if outputJSON {
		return outputAsJSON(cmd, resp)
	}

	out := cmd.OutOrStdout()
	if len(resp.Recommendations) == 0 {
		printWarning(out, "No recommendations found.")
		return nil
	}

	rows := make([][]string, len(resp.Recommendations))
	for i, r := range resp.Recommendations {
		rows[i] = []string{
			fmt.Sprint(r.Position),
			r.Title,
			r.Artist,
			r.Genre,
			fmt.Sprintf("%.3f", r.Similarity),
		}
	}

	printInfo(out, "%s", title)
	printTable(out, []string{"#", "Title", "Artist", "Genre", "Similarity"}, rows)
	return nil
}

func outputStatsHuman(cmd *cobra.Command, stats *services.CatalogStats) error {
	out := cmd.OutOrStdout()
	s := stats.Summary

	printInfo(out, "Catalog")
	fmt.Fprintf(out, "Songs:          %d\n", s.TotalSongs)
	fmt.Fprintf(out, "Genres:         %d\n", s.Genres)
	fmt.Fprintf(out, "Average tempo:  %.1f BPM\n", s.AvgTempo)
	if s.AvgPopularity != nil {
		fmt.Fprintf(out, "Popularity:     %.1f average\n", *s.AvgPopularity)
	}
	fmt.Fprintf(out, "Rows read:      %d (dropped %d incomplete, %d out of range, %d unpopular)\n",
		stats.Load.Read, stats.Load.Incomplete, stats.Load.OutOfRange, stats.Load.Unpopular)
	fmt.Fprintln(out)

	featureRows := make([][]string, len(s.Features))
	for i, f := range s.Features {
		featureRows[i] = []string{
			f.Name,
			fmt.Sprintf("%.3f", f.Mean),
			fmt.Sprintf("%.3f", f.StdDev),
			fmt.Sprintf("%.3f", f.Min),
			fmt.Sprintf("%.3f", f.Max),
		}
	}
	printInfo(out, "Features")
	printTable(out, []string{"Feature", "Mean", "Std", "Min", "Max"}, featureRows)

	corrRows := make([][]string, len(s.Correlation))
	for i, row := range s.Correlation {
		cells := []string{models.FeatureNames[i]}
		for _, v := range row {
			cells = append(cells, fmt.Sprintf("%+.2f", v))
		}
		corrRows[i] = cells
	}
	printInfo(out, "Correlation")
	printTable(out, append([]string{""}, models.FeatureNames...), corrRows)

	genreRows := make([][]string, len(s.TopGenres))
	for i, g := range s.TopGenres {
		genreRows[i] = []string{g.Genre, fmt.Sprint(g.Songs)}
	}
	printInfo(out, "Top genres")
	printTable(out, []string{"Genre", "Songs"}, genreRows)

	printMuted(out, "Loaded "+stats.LoadedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

// describeFeatures renders features the way they are entered on the
// command line.
func describeFeatures(f models.AudioFeatures) string {
	parts := []string{
		fmt.Sprintf("danceability=%.2f", f.Danceability),
		fmt.Sprintf("energy=%.2f", f.Energy),
		fmt.Sprintf("tempo=%.0f", f.Tempo),
		fmt.Sprintf("valence=%.2f", f.Valence),
	}
	return strings.Join(parts, " ")
}
