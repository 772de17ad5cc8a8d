package mocks

import (
	"context"

	"github.com/seu-repo/songcast/internal/domain"
)

// MockSongCatalog is a mock implementation of SongCatalog interface
type MockSongCatalog struct {
	DefaultSong domain.Song
	Songs       map[string]domain.Song
	LookupFunc  func(ctx context.Context, name string) domain.Song
	DefaultFunc func(ctx context.Context) domain.Song
}

func NewMockSongCatalog() *MockSongCatalog {
	def := domain.Song{
		Title:       "one song",
		Author:      "Aog",
		Description: "the first song",
		AudioURL:    "http://example.com/one-song.mp3",
		ImageURL:    "http://example.com/one-song.jpg",
	}
	return &MockSongCatalog{
		DefaultSong: def,
		Songs:       make(map[string]domain.Song),
	}
}

func (m *MockSongCatalog) Lookup(ctx context.Context, name string) domain.Song {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, name)
	}
	if song, ok := m.Songs[name]; ok {
		return song
	}
	return m.DefaultSong
}

func (m *MockSongCatalog) Default(ctx context.Context) domain.Song {
	if m.DefaultFunc != nil {
		return m.DefaultFunc(ctx)
	}
	return m.DefaultSong
}
