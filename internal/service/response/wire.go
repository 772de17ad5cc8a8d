package response

// Wire types for the two outbound payload shapes. Everything is built
// field-by-field and serialized by the transport; user-controlled strings
// (song titles, descriptions) never pass through a text template.

// WirePayload is the generic fulfillment reply. Requests from the
// assistant integration additionally carry the native envelope under
// Data.Google.
type WirePayload struct {
	Speech      string           `json:"speech"`
	DisplayText string           `json:"displayText"`
	Data        *WireData        `json:"data,omitempty"`
	ContextOut  []WireContextOut `json:"contextOut,omitempty"`
}

type WireData struct {
	Google *GoogleEnvelope `json:"google,omitempty"`
}

type WireContextOut struct {
	Name       string            `json:"name"`
	Lifespan   int               `json:"lifespan"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// GoogleEnvelope is the assistant-native response container.
type GoogleEnvelope struct {
	ConversationToken  string          `json:"conversationToken,omitempty"`
	ExpectUserResponse bool            `json:"expectUserResponse"`
	IsSSML             bool            `json:"isSsml,omitempty"`
	RichResponse       *RichResponse   `json:"richResponse,omitempty"`
	ExpectedInputs     []ExpectedInput `json:"expectedInputs,omitempty"`
	FinalResponse      *FinalResponse  `json:"finalResponse,omitempty"`
	SystemIntent       *SystemIntent   `json:"systemIntent,omitempty"`
}

type ExpectedInput struct {
	PossibleIntents []PossibleIntent `json:"possibleIntents"`
	InputPrompt     *InputPrompt     `json:"inputPrompt"`
}

type PossibleIntent struct {
	Intent string `json:"intent"`
}

type InputPrompt struct {
	RichInitialPrompt *RichResponse `json:"richInitialPrompt"`
}

type FinalResponse struct {
	RichResponse *RichResponse `json:"richResponse"`
}

type RichResponse struct {
	Items       []Item       `json:"items"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

type Item struct {
	SimpleResponse *SimpleResponse `json:"simpleResponse,omitempty"`
	BasicCard      *BasicCard      `json:"basicCard,omitempty"`
	MediaResponse  *MediaResponse  `json:"mediaResponse,omitempty"`
}

type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech"`
	DisplayText  string `json:"displayText,omitempty"`
}

type Suggestion struct {
	Title string `json:"title"`
}

type BasicCard struct {
	Title         string       `json:"title,omitempty"`
	Subtitle      string       `json:"subtitle,omitempty"`
	FormattedText string       `json:"formattedText,omitempty"`
	Image         *Image       `json:"image,omitempty"`
	Buttons       []CardButton `json:"buttons,omitempty"`
}

type Image struct {
	URL               string `json:"url"`
	AccessibilityText string `json:"accessibilityText,omitempty"`
}

type CardButton struct {
	Title         string         `json:"title"`
	OpenURLAction *OpenURLAction `json:"openUrlAction,omitempty"`
}

type OpenURLAction struct {
	URL string `json:"url"`
}

type MediaResponse struct {
	MediaType    string        `json:"mediaType"`
	MediaObjects []MediaObject `json:"mediaObjects"`
}

type MediaObject struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LargeImage  *Image `json:"large_image,omitempty"`
	ContentURL  string `json:"contentUrl"`
}

// SystemIntent asks the assistant to run a platform-side helper.
type SystemIntent struct {
	Intent string            `json:"intent"`
	Data   *SystemIntentData `json:"data,omitempty"`
}

type SystemIntentData struct {
	Type string `json:"@type"`

	// NewSurfaceValueSpec
	Context           string   `json:"context,omitempty"`
	NotificationTitle string   `json:"notificationTitle,omitempty"`
	Capabilities      []string `json:"capabilities,omitempty"`

	// RegisterUpdateValueSpec
	Intent         string          `json:"intent,omitempty"`
	TriggerContext *TriggerContext `json:"triggerContext,omitempty"`

	// PermissionValueSpec
	OptContext                string                     `json:"optContext,omitempty"`
	Permissions               []string                   `json:"permissions,omitempty"`
	UpdatePermissionValueSpec *UpdatePermissionValueSpec `json:"updatePermissionValueSpec,omitempty"`
}

type TriggerContext struct {
	TimeContext *TimeContext `json:"timeContext,omitempty"`
}

type TimeContext struct {
	Frequency string `json:"frequency"`
}

type UpdatePermissionValueSpec struct {
	Intent string `json:"intent"`
}
