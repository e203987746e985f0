package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/temcen/songmatch/pkg/models"
)

var similarCmd = &cobra.Command{
	Use:   "similar <title>",
	Short: "Recommend songs similar to a catalog song",
	Long: `Find the catalog songs whose audio features are closest to a song you like.
The song itself is never recommended back.

Example:
  songmatch similar "Blinding Lights"
  songmatch similar "Hurt" --artist "Johnny Cash" -n 10`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var moodCmd = &cobra.Command{
	Use:   "mood <mood> <genre>",
	Short: "Recommend songs in a genre that fit a mood",
	Long: `Rank the songs of a genre against a mood profile. Run "songmatch moods"
for the available moods.

Example:
  songmatch mood happy pop
  songmatch mood chill acoustic -n 3`,
	Args: cobra.ExactArgs(2),
	RunE: runMood,
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Recommend songs close to a raw feature tuple",
	Long: `Rank the whole catalog against explicit audio features.

Example:
  songmatch features --danceability 0.8 --energy 0.7 --tempo 120 --valence 0.9`,
	Args: cobra.NoArgs,
	RunE: runFeatures,
}

var liveCmd = &cobra.Command{
	Use:   "live <search terms>",
	Short: "Recommend songs similar to a track found on Spotify",
	Long: `Search Spotify for a track, fetch its audio features and rank the catalog
against them. Requires spotify.enabled with client credentials.

Example:
  songmatch live "never gonna give you up"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLive,
}

var (
	resultCount   int
	similarArtist string
	rawFeatures   models.AudioFeatures
)

func init() {
	for _, cmd := range []*cobra.Command{similarCmd, moodCmd, featuresCmd, liveCmd} {
		cmd.Flags().IntVarP(&resultCount, "count", "n", 0, "Number of recommendations (default: recommendation.default_count)")
	}

	similarCmd.Flags().StringVar(&similarArtist, "artist", "", "Artist, to pick between songs with the same title")

	featuresCmd.Flags().Float64Var(&rawFeatures.Danceability, "danceability", 0, "Danceability in [0, 1]")
	featuresCmd.Flags().Float64Var(&rawFeatures.Energy, "energy", 0, "Energy in [0, 1]")
	featuresCmd.Flags().Float64Var(&rawFeatures.Tempo, "tempo", 0, "Tempo in BPM")
	featuresCmd.Flags().Float64Var(&rawFeatures.Valence, "valence", 0, "Valence in [0, 1]")
	for _, name := range []string{"danceability", "energy", "tempo", "valence"} {
		_ = featuresCmd.MarkFlagRequired(name)
	}
}

func runSimilar(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	id := models.Identity{Title: args[0], Artist: similarArtist}
	resp, err := core.Services.Recommendation.SimilarTo(cmd.Context(), id, resultCount)
	if err != nil {
		return err
	}
	return outputRecommendations(cmd, "Songs like "+resp.Seed.String(), resp)
}

func runMood(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	resp, err := core.Services.Recommendation.ByMood(cmd.Context(), args[0], args[1], resultCount)
	if err != nil {
		return err
	}
	return outputRecommendations(cmd, "Feeling "+args[0]+" in "+args[1], resp)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	resp, err := core.Services.Recommendation.ByFeatures(cmd.Context(), rawFeatures, resultCount)
	if err != nil {
		return err
	}
	return outputRecommendations(cmd, "Closest to "+describeFeatures(rawFeatures), resp)
}

func runLive(cmd *cobra.Command, args []string) error {
	core, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	resp, err := core.Services.Recommendation.FromLive(cmd.Context(), strings.Join(args, " "), resultCount)
	if err != nil {
		return err
	}
	if outputJSON {
		return outputAsJSON(cmd, resp)
	}

	printInfo(cmd.OutOrStdout(), "Matched %s - %s", resp.Track.Title, resp.Track.Artist)
	if resp.Track.URL != "" {
		printMuted(cmd.OutOrStdout(), resp.Track.URL)
	}
	return outputRecommendations(cmd, "Catalog songs like "+resp.Track.Title, &resp.RecommendationResponse)
}
