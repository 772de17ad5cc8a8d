package domain

import "errors"

var (
	// ErrUnrecognizedSchema means the payload is neither a v1 nor a v2
	// webhook request. The transport answers HTTP 400 and no handler runs.
	ErrUnrecognizedSchema = errors.New("unrecognized webhook schema")

	// ErrEmptyResponse means a rich response was built with neither spoken
	// nor displayed text. This is a handler defect, not a runtime condition.
	ErrEmptyResponse = errors.New("response has neither speech nor display text")
)

// ResponseKind discriminates the response union. Exactly one variant is
// populated per response.
type ResponseKind int

const (
	KindSimple ResponseKind = iota + 1
	KindRich
	KindMedia
	KindDirective
)

func (k ResponseKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindRich:
		return "rich"
	case KindMedia:
		return "media"
	case KindDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// DirectiveKind names the platform system intent a directive response asks
// the assistant to run.
type DirectiveKind int

const (
	DirectiveNewSurface DirectiveKind = iota + 1
	DirectiveRegisterUpdate
	DirectivePermission
)

// Directive is a structured request for a platform-side action: handing
// the conversation to another surface, registering recurring updates, or
// asking for the notification permission.
type Directive struct {
	Kind DirectiveKind

	// NewSurface fields.
	Context           string
	NotificationTitle string
	Capabilities      []Capability

	// RegisterUpdate / Permission fields.
	UpdateIntent string
	Frequency    string
}

// MediaDirective instructs the platform to play an audio track.
type MediaDirective struct {
	Song Song

	// ContinueConversation keeps the mic open after playback and attaches
	// follow-on suggestions; false ends the conversation.
	ContinueConversation bool

	// Description resolved from the song or an override comment.
	Description string

	Suggestions []string
}

// Card is a basic display card attached to a rich response on screen
// surfaces.
type Card struct {
	Title    string
	Subtitle string
	Text     string
	ImageURL string
	ImageAlt string
	Buttons  []CardButton
}

// CardButton is a tappable link on a card.
type CardButton struct {
	Title string
	URL   string
}

// Response is the outbound payload union. Speech/DisplayText apply to the
// simple and rich variants; Media and Directive carry their own content.
type Response struct {
	Kind ResponseKind

	Speech      string
	DisplayText string

	Suggestions []string
	Card        *Card

	OutputContexts []Context

	// EndConversation closes the conversation after this turn instead of
	// prompting for more input.
	EndConversation bool

	Media     *MediaDirective
	Directive *Directive
}
