package response

import (
	"fmt"

	"github.com/seu-repo/songcast/internal/domain"
)

// Follow-on suggestion chips attached to a continuing media response.
const (
	SuggestPlayAnother = "Play another"
	SuggestShareSong   = "Share a song"
	SuggestSendDaily   = "Send me daily"
)

func mediaSuggestions() []string {
	return []string{SuggestPlayAnother, SuggestShareSong, SuggestSendDaily}
}

// Media builds an audio playback directive for the given song. When
// continueConversation is true the directive keeps the conversation open
// and carries the follow-on suggestion chips; otherwise the conversation
// ends after playback. A non-empty comments string replaces the song's
// own description (never its title or author).
func Media(song domain.Song, continueConversation bool, comments string) *domain.Response {
	description := song.Description
	if comments != "" {
		description = comments
	}

	directive := &domain.MediaDirective{
		Song:                 song,
		ContinueConversation: continueConversation,
		Description:          description,
	}
	if continueConversation {
		directive.Suggestions = mediaSuggestions()
	}

	line := mediaSpokenLine(song)
	return &domain.Response{
		Kind:            domain.KindMedia,
		Speech:          line,
		DisplayText:     line,
		EndConversation: !continueConversation,
		Media:           directive,
	}
}

func mediaSpokenLine(song domain.Song) string {
	return fmt.Sprintf("%s from %s", song.Title, song.Author)
}
