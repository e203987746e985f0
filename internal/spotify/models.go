package spotify

import "github.com/temcen/songmatch/pkg/models"

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type spotifyAudioFeatures struct {
	Danceability float64 `json:"danceability"`
	Energy       float64 `json:"energy"`
	Tempo        float64 `json:"tempo"`
	Valence      float64 `json:"valence"`
}

func mapTrack(t spotifyTrack) models.LiveTrack {
	live := models.LiveTrack{
		ID:    t.ID,
		Title: t.Name,
		Album: t.Album.Name,
		URL:   t.ExternalURLs.Spotify,
	}
	if len(t.Artists) > 0 {
		live.Artist = t.Artists[0].Name
	}
	if len(t.Album.Images) > 0 {
		live.ImageURL = t.Album.Images[0].URL
	}
	if live.URL == "" && t.ID != "" {
		live.URL = "https://open.spotify.com/track/" + t.ID
	}
	return live
}
