// Command catalogctl creates the catalog database and seeds it with the demo
// movie set when the movies table is empty.
package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"vod-coordinator/internal/catalog"
	"vod-coordinator/internal/platform/config"
	"vod-coordinator/internal/platform/logger"
)

func main() {
	_ = config.Load()

	dbPath := config.GetEnv("CATALOG_DB", "movies_database.db")
	assetDir := config.GetEnv("ASSET_DIR", "assets")
	log := logger.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_FORMAT", "text"))

	cat, err := catalog.OpenSQLite(dbPath)
	if err != nil {
		log.Error("open catalog", "error", err)
		os.Exit(1)
	}
	defer cat.Close()

	ctx := context.Background()

	empty, err := cat.Empty(ctx)
	if err != nil {
		log.Error("inspect catalog", "error", err)
		os.Exit(1)
	}
	if !empty {
		log.Info("catalog already seeded", "db", dbPath)
		return
	}

	for _, a := range demoAssets(assetDir) {
		if err := cat.InsertAsset(ctx, a); err != nil {
			log.Error("seed movie", "title", a.Title, "error", err)
			os.Exit(1)
		}
	}
	log.Info("catalog seeded", "db", dbPath, "movies", len(demoAssets(assetDir)))
}

func demoAssets(assetDir string) []catalog.Asset {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	ref := func(name string) string {
		return filepath.Join(assetDir, name)
	}

	return []catalog.Asset{
		{
			Title:       "Cargo",
			ReleaseDate: date("2017-05-22"),
			Length:      "00:01:01",
			Genre:       "Action",
			Description: "Cargo boat carrying containers.",
			Rating:      1,
			PosterRef:   ref("Cargo.png"),
			SourceRef:   ref("Cargo.mp4"),
		},
		{
			Title:       "Cooking",
			ReleaseDate: date("2020-04-27"),
			Length:      "00:01:29",
			Genre:       "Romance",
			Description: "A chef slicing a red bell pepper with a knife.",
			Rating:      4,
			PosterRef:   ref("Cooking.png"),
			SourceRef:   ref("Cooking.mp4"),
		},
		{
			Title:       "Dogs",
			ReleaseDate: date("2020-04-15"),
			Length:      "00:00:49",
			Genre:       "Adventure",
			Description: "Dogs enjoying the snow.",
			Rating:      3,
			PosterRef:   ref("Dogs.png"),
			SourceRef:   ref("Dogs.mp4"),
		},
		{
			Title:       "Rickroll",
			ReleaseDate: date("1987-07-27"),
			Length:      "00:02:59",
			Genre:       "Comedy",
			Description: "Rickrolling is when you troll someone on the internet by linking to the music video for Rick Astley's 1987 hit song \"Never Gonna Give You Up.\"",
			Rating:      5,
			PosterRef:   ref("Rickroll.png"),
			SourceRef:   ref("Rickroll.mp4"),
		},
		{
			Title:       "Rocket",
			ReleaseDate: date("1987-07-27"),
			Length:      "00:01:03",
			Genre:       "Action",
			Description: "Countdown to rocket launching.",
			Rating:      4,
			PosterRef:   ref("Rocket.png"),
			SourceRef:   ref("Rocket.mp4"),
		},
		{
			Title:       "Traffic",
			ReleaseDate: date("2019-04-05"),
			Length:      "00:01:00",
			Genre:       "Thriller",
			Description: "Traffic Flow In The Highway",
			Rating:      1,
			PosterRef:   ref("Traffic.png"),
			SourceRef:   ref("Traffic.mp4"),
		},
	}
}
