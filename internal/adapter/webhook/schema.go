package webhook

import "encoding/json"

// Raw wire shapes for the two supported webhook schema generations. Only
// the fields the normalizer reads are declared; everything else in the
// payload is ignored.

type envelope struct {
	// v1 marker
	Result *v1Result `json:"result"`
	// v2 marker
	QueryResult *v2QueryResult `json:"queryResult"`

	OriginalRequest             *originalRequest `json:"originalRequest"`
	OriginalDetectIntentRequest *originalRequest `json:"originalDetectIntentRequest"`
}

type v1Result struct {
	Action     string                     `json:"action"`
	Parameters map[string]json.RawMessage `json:"parameters"`
	Contexts   []wireContext              `json:"contexts"`
}

type v2QueryResult struct {
	Action         string                     `json:"action"`
	Parameters     map[string]json.RawMessage `json:"parameters"`
	OutputContexts []wireContext              `json:"outputContexts"`
	Intent         *v2Intent                  `json:"intent"`
}

type v2Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type wireContext struct {
	Name          string                     `json:"name"`
	Lifespan      int                        `json:"lifespan"`
	LifespanCount int                        `json:"lifespanCount"`
	Parameters    map[string]json.RawMessage `json:"parameters"`
}

// originalRequest carries the assistant-specific portion. v1 nests it
// under "data", v2 under "payload"; both hold the same shape.
type originalRequest struct {
	Source  string       `json:"source"`
	Data    *sourcePayload `json:"data"`
	Payload *sourcePayload `json:"payload"`
}

type sourcePayload struct {
	Surface           *wireSurface  `json:"surface"`
	AvailableSurfaces []wireSurface `json:"availableSurfaces"`
	Inputs            []wireInput   `json:"inputs"`
}

type wireSurface struct {
	Capabilities []wireCapability `json:"capabilities"`
}

type wireCapability struct {
	Name string `json:"name"`
}

type wireInput struct {
	Intent    string         `json:"intent"`
	Arguments []wireArgument `json:"arguments"`
}

type wireArgument struct {
	Name      string                     `json:"name"`
	TextValue string                     `json:"textValue"`
	BoolValue bool                       `json:"boolValue"`
	Extension map[string]json.RawMessage `json:"extension"`
}
