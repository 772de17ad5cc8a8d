package response

import (
	"github.com/seu-repo/songcast/internal/domain"
)

const (
	intentText           = "assistant.intent.action.TEXT"
	intentNewSurface     = "actions.intent.NEW_SURFACE"
	intentRegisterUpdate = "actions.intent.REGISTER_UPDATE"
	intentPermission     = "actions.intent.PERMISSION"

	typeNewSurfaceSpec     = "type.googleapis.com/google.actions.v2.NewSurfaceValueSpec"
	typeRegisterUpdateSpec = "type.googleapis.com/google.actions.v2.RegisterUpdateValueSpec"
	typePermissionSpec     = "type.googleapis.com/google.actions.v2.PermissionValueSpec"

	mediaTypeAudio = "AUDIO"

	// Opaque token echoed through media envelopes.
	conversationToken = "{}"
)

// Render encodes a response for the wire. source selects the shape: the
// assistant integration (domain.SourceGoogle) gets the native envelope
// under data.google, everything else the plain {speech, displayText,
// data, contextOut} form. This is the single place presentation depends
// on the originating surface.
func Render(resp *domain.Response, source string) *WirePayload {
	payload := &WirePayload{
		Speech:      resp.Speech,
		DisplayText: resp.DisplayText,
		ContextOut:  renderContexts(resp.OutputContexts),
	}

	switch resp.Kind {
	case domain.KindMedia:
		// Media always travels in the native envelope; only the assistant
		// surface can play it.
		payload.Data = &WireData{Google: mediaEnvelope(resp)}
	case domain.KindDirective:
		payload.Data = &WireData{Google: directiveEnvelope(resp)}
	default:
		if source == domain.SourceGoogle {
			payload.Data = &WireData{Google: richEnvelope(resp)}
		}
	}

	return payload
}

func richEnvelope(resp *domain.Response) *GoogleEnvelope {
	rich := &RichResponse{
		Items: []Item{{
			SimpleResponse: &SimpleResponse{
				TextToSpeech: resp.Speech,
				DisplayText:  resp.DisplayText,
			},
		}},
	}

	for _, s := range resp.Suggestions {
		rich.Suggestions = append(rich.Suggestions, Suggestion{Title: s})
	}

	if resp.Card != nil {
		rich.Items = append(rich.Items, Item{BasicCard: renderCard(resp.Card)})
	}

	env := &GoogleEnvelope{ExpectUserResponse: !resp.EndConversation}
	if resp.EndConversation {
		env.FinalResponse = &FinalResponse{RichResponse: rich}
	} else {
		env.RichResponse = rich
	}
	return env
}

func renderCard(card *domain.Card) *BasicCard {
	out := &BasicCard{
		Title:         card.Title,
		Subtitle:      card.Subtitle,
		FormattedText: card.Text,
	}
	if card.ImageURL != "" {
		out.Image = &Image{URL: card.ImageURL, AccessibilityText: card.ImageAlt}
	}
	for _, b := range card.Buttons {
		out.Buttons = append(out.Buttons, CardButton{
			Title:         b.Title,
			OpenURLAction: &OpenURLAction{URL: b.URL},
		})
	}
	return out
}

func mediaEnvelope(resp *domain.Response) *GoogleEnvelope {
	media := resp.Media
	rich := &RichResponse{
		Items: []Item{
			{SimpleResponse: &SimpleResponse{TextToSpeech: resp.Speech}},
			{MediaResponse: &MediaResponse{
				MediaType: mediaTypeAudio,
				MediaObjects: []MediaObject{{
					Name:        media.Song.Title,
					Description: media.Description,
					LargeImage:  &Image{URL: media.Song.ImageURL},
					ContentURL:  media.Song.AudioURL,
				}},
			}},
		},
	}
	for _, s := range media.Suggestions {
		rich.Suggestions = append(rich.Suggestions, Suggestion{Title: s})
	}

	env := &GoogleEnvelope{ConversationToken: conversationToken}
	if media.ContinueConversation {
		env.ExpectUserResponse = true
		env.ExpectedInputs = []ExpectedInput{{
			PossibleIntents: []PossibleIntent{{Intent: intentText}},
			InputPrompt:     &InputPrompt{RichInitialPrompt: rich},
		}}
	} else {
		env.FinalResponse = &FinalResponse{RichResponse: rich}
	}
	return env
}

func directiveEnvelope(resp *domain.Response) *GoogleEnvelope {
	d := resp.Directive
	intent := &SystemIntent{}

	switch d.Kind {
	case domain.DirectiveNewSurface:
		caps := make([]string, 0, len(d.Capabilities))
		for _, c := range d.Capabilities {
			caps = append(caps, string(c))
		}
		intent.Intent = intentNewSurface
		intent.Data = &SystemIntentData{
			Type:              typeNewSurfaceSpec,
			Context:           d.Context,
			NotificationTitle: d.NotificationTitle,
			Capabilities:      caps,
		}
	case domain.DirectiveRegisterUpdate:
		intent.Intent = intentRegisterUpdate
		intent.Data = &SystemIntentData{
			Type:           typeRegisterUpdateSpec,
			Intent:         d.UpdateIntent,
			TriggerContext: &TriggerContext{TimeContext: &TimeContext{Frequency: d.Frequency}},
		}
	case domain.DirectivePermission:
		intent.Intent = intentPermission
		intent.Data = &SystemIntentData{
			Type:                      typePermissionSpec,
			OptContext:                d.Context,
			Permissions:               []string{"UPDATE"},
			UpdatePermissionValueSpec: &UpdatePermissionValueSpec{Intent: d.UpdateIntent},
		}
	}

	return &GoogleEnvelope{
		ExpectUserResponse: true,
		SystemIntent:       intent,
	}
}

func renderContexts(contexts []domain.Context) []WireContextOut {
	if len(contexts) == 0 {
		return nil
	}
	out := make([]WireContextOut, 0, len(contexts))
	for _, c := range contexts {
		out = append(out, WireContextOut{
			Name:       c.Name,
			Lifespan:   c.Lifespan,
			Parameters: c.Parameters,
		})
	}
	return out
}
