package domain

// SchemaVersion identifies which webhook schema generation an inbound
// request was decoded from. It is fixed at decode time and all field
// access downstream goes through the normalized InboundRequest.
type SchemaVersion int

const (
	SchemaV1 SchemaVersion = iota + 1
	SchemaV2
)

func (v SchemaVersion) String() string {
	switch v {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	default:
		return "unknown"
	}
}

// SourceGoogle is the source tag carried by requests that originate from
// the Google Assistant integration. Any other (or absent) source gets the
// generic JSON wire format.
const SourceGoogle = "google"

// Capability is a device surface capability flag.
type Capability string

const (
	CapabilityScreenOutput Capability = "actions.capability.SCREEN_OUTPUT"
	CapabilityAudioOutput  Capability = "actions.capability.AUDIO_OUTPUT"
)

// Context is a named, lifespan-bounded piece of conversation state echoed
// between turns by the platform. Opaque to this service.
type Context struct {
	Name       string            `json:"name"`
	Lifespan   int               `json:"lifespan"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// InboundRequest is the normalized view of a webhook call, produced by the
// protocol version adapter. Handlers operate only on this type and never
// on the raw v1/v2 payloads.
type InboundRequest struct {
	IntentKey  string
	Parameters map[string]string
	Contexts   []Context
	Version    SchemaVersion

	// Source is the raw originating integration tag ("google" for the
	// assistant integration, empty when the call came from elsewhere).
	Source string

	// Capabilities of the device handling the current turn.
	Capabilities []Capability

	// AvailableCapabilities across every surface in the user's session.
	AvailableCapabilities []Capability

	// MediaStatus carries the playback status argument (e.g. "FINISHED")
	// on media status callbacks, empty otherwise.
	MediaStatus string

	// Result flags supplied by the platform on follow-up intents.
	NewSurfaceAccepted bool
	UpdateRegistered   bool
	PermissionGranted  bool
}

// FromGoogle reports whether the request originated from the Google
// Assistant integration.
func (r *InboundRequest) FromGoogle() bool {
	return r.Source == SourceGoogle
}

// HasCapability reports whether the current device carries the capability.
func (r *InboundRequest) HasCapability(c Capability) bool {
	for _, have := range r.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// HasAvailableCapability reports whether any surface in the session
// carries the capability.
func (r *InboundRequest) HasAvailableCapability(c Capability) bool {
	for _, have := range r.AvailableCapabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Parameter returns the named slot value, or empty when absent.
func (r *InboundRequest) Parameter(name string) string {
	return r.Parameters[name]
}
