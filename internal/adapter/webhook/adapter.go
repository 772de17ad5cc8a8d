package webhook

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/seu-repo/songcast/internal/domain"
)

// Argument names sent by the assistant on follow-up intents.
const (
	argMediaStatus    = "MEDIA_STATUS"
	argNewSurface     = "NEW_SURFACE"
	argRegisterUpdate = "REGISTER_UPDATE"
	argPermission     = "PERMISSION"

	statusOK = "OK"
)

// Decode classifies a raw webhook body as schema v1 (top-level "result")
// or v2 (top-level "queryResult") and normalizes it into a
// domain.InboundRequest. A body matching neither shape fails with
// domain.ErrUnrecognizedSchema.
func Decode(body []byte) (*domain.InboundRequest, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnrecognizedSchema, err)
	}

	switch {
	case env.Result != nil:
		return decodeV1(&env), nil
	case env.QueryResult != nil:
		return decodeV2(&env), nil
	default:
		return nil, domain.ErrUnrecognizedSchema
	}
}

func decodeV1(env *envelope) *domain.InboundRequest {
	req := &domain.InboundRequest{
		IntentKey:  env.Result.Action,
		Parameters: normalizeParameters(env.Result.Parameters),
		Contexts:   normalizeContexts(env.Result.Contexts, false),
		Version:    domain.SchemaV1,
	}
	applyOriginalRequest(req, env.OriginalRequest)
	return req
}

func decodeV2(env *envelope) *domain.InboundRequest {
	key := env.QueryResult.Action
	if key == "" && env.QueryResult.Intent != nil {
		key = env.QueryResult.Intent.DisplayName
	}

	req := &domain.InboundRequest{
		IntentKey:  key,
		Parameters: normalizeParameters(env.QueryResult.Parameters),
		Contexts:   normalizeContexts(env.QueryResult.OutputContexts, true),
		Version:    domain.SchemaV2,
	}
	applyOriginalRequest(req, env.OriginalDetectIntentRequest)
	return req
}

func applyOriginalRequest(req *domain.InboundRequest, orig *originalRequest) {
	if orig == nil {
		return
	}
	req.Source = orig.Source

	payload := orig.Data
	if payload == nil {
		payload = orig.Payload
	}
	if payload == nil {
		return
	}

	if payload.Surface != nil {
		req.Capabilities = capabilities(payload.Surface.Capabilities)
	}
	for _, s := range payload.AvailableSurfaces {
		req.AvailableCapabilities = append(req.AvailableCapabilities, capabilities(s.Capabilities)...)
	}

	for _, in := range payload.Inputs {
		for _, arg := range in.Arguments {
			applyArgument(req, arg)
		}
	}
}

func applyArgument(req *domain.InboundRequest, arg wireArgument) {
	switch arg.Name {
	case argMediaStatus:
		req.MediaStatus = extensionStatus(arg)
	case argNewSurface:
		req.NewSurfaceAccepted = extensionStatus(arg) == statusOK
	case argRegisterUpdate:
		req.UpdateRegistered = extensionStatus(arg) == statusOK
	case argPermission:
		req.PermissionGranted = arg.BoolValue || arg.TextValue == "true"
	}
}

func extensionStatus(arg wireArgument) string {
	raw, ok := arg.Extension["status"]
	if !ok {
		return arg.TextValue
	}
	var status string
	if err := json.Unmarshal(raw, &status); err != nil {
		return arg.TextValue
	}
	return status
}

func capabilities(caps []wireCapability) []domain.Capability {
	out := make([]domain.Capability, 0, len(caps))
	for _, c := range caps {
		out = append(out, domain.Capability(c.Name))
	}
	return out
}

// normalizeParameters flattens slot values to strings. Scalar slots keep
// their textual form; structured slot values are kept as compact JSON so
// no information is lost for handlers that want to dig in.
func normalizeParameters(params map[string]json.RawMessage) map[string]string {
	out := make(map[string]string, len(params))
	for name, raw := range params {
		out[name] = flattenValue(raw)
	}
	return out
}

func flattenValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return strings.TrimSpace(string(raw))
}

func normalizeContexts(contexts []wireContext, v2 bool) []domain.Context {
	out := make([]domain.Context, 0, len(contexts))
	for _, c := range contexts {
		lifespan := c.Lifespan
		if v2 {
			lifespan = c.LifespanCount
		}
		out = append(out, domain.Context{
			Name:       c.Name,
			Lifespan:   lifespan,
			Parameters: normalizeParameters(c.Parameters),
		})
	}
	return out
}
