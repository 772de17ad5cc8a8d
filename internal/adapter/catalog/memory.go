// Package catalog is the song lookup collaborator. The in-memory
// implementation stands in for an external data store and ships a fixed
// three-record table.
package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/songcast/internal/domain"
	"github.com/seu-repo/songcast/internal/ports"
)

// MemoryCatalog implements ports.SongCatalog over a fixed table keyed by
// lowercased title. Safe for concurrent use: the table is never mutated
// after construction.
type MemoryCatalog struct {
	songs      map[string]domain.Song
	defaultKey string
	log        *zap.Logger
}

// NewMemoryCatalog builds the hardcoded catalog.
func NewMemoryCatalog(log *zap.Logger) ports.SongCatalog {
	songs := map[string]domain.Song{
		"one song": {
			Title:       "one song",
			Author:      "Aog",
			ImageURL:    "https://images-na.ssl-images-amazon.com/images/M/MV5BMjM4NDM5NDI1OV5BMl5BanBnXkFtZTgwMDQ4NjE0MzE@._V1_UX182_CR0,0,182,268_AL_.jpg",
			AudioURL:    "http://a.tumblr.com/tumblr_lmjk3pJTcz1qjm9mso1.mp3",
			Description: "the first song",
		},
		"shape of view": {
			Title:       "Shape of View",
			Author:      "Ed Sheeran",
			ImageURL:    "https://i.ytimg.com/vi/JGwWNGJdvx8/hqdefault.jpg",
			AudioURL:    "http://a.tumblr.com/tumblr_lmjk3pJTcz1qjm9mso1.mp3",
			Description: "Ed Sheeran - Shape of View",
		},
		"gangnam style": {
			Title:       "Gangnam Style",
			Author:      "Psy",
			ImageURL:    "https://i.ytimg.com/vi/9bZkp7q19f0/maxresdefault.jpg",
			AudioURL:    "http://a.tumblr.com/tumblr_lmjk3pJTcz1qjm9mso1.mp3",
			Description: "Psy - Gangnam Style",
		},
	}

	log.Info("In-memory song catalog initialized", zap.Int("songs", len(songs)))

	return &MemoryCatalog{
		songs:      songs,
		defaultKey: "one song",
		log:        log,
	}
}

// Lookup resolves a free-text song name with a case-insensitive exact
// match. A miss falls back to the default record, never an error.
func (c *MemoryCatalog) Lookup(ctx context.Context, name string) domain.Song {
	key := strings.ToLower(strings.TrimSpace(name))
	if song, ok := c.songs[key]; ok {
		return song
	}

	c.log.Debug("Song lookup miss, using default", zap.String("name", name))
	return c.songs[c.defaultKey]
}

// Default returns the fallback record.
func (c *MemoryCatalog) Default(ctx context.Context) domain.Song {
	return c.songs[c.defaultKey]
}
