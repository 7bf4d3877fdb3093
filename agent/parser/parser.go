// Package parser extracts a structured response from raw model output.
//
// The upstream model is prompted to answer in JSON but is not guaranteed to
// comply, so extraction is tiered: parse the whole text, then the outermost
// brace-delimited slice, then fall back to treating the text as a plain reply.
// Parse never fails; leniency stops here — everything past the parser is typed.
package parser

import (
	"encoding/json"
	"strings"

	contractx "github.com/Samilincoln/ai-customer-chat/agent/contract"
)

// Parse converts raw model text into a ParsedResponse. The returned
// ResponseText is never empty for non-empty input: when no structure can be
// extracted it is the input verbatim.
func Parse(raw string) contractx.ParsedResponse {
	if resp, ok := decode(raw, raw); ok {
		return resp
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if resp, ok := decode(raw[start:end+1], raw); ok {
			return resp
		}
	}

	return contractx.ParsedResponse{ResponseText: raw}
}

// envelope mirrors the wire shape the model is prompted to produce:
// {"response_to_user": "...", "function_call": {...} | null}.
type envelope struct {
	ResponseText *string         `json:"response_to_user"`
	FunctionCall json.RawMessage `json:"function_call"`
}

// decode requires candidate to be exactly one JSON value; text with trailing
// garbage falls through to the next tier instead of being half-parsed.
func decode(candidate, raw string) (contractx.ParsedResponse, bool) {
	var env envelope
	if err := json.Unmarshal([]byte(candidate), &env); err != nil {
		return contractx.ParsedResponse{}, false
	}

	resp := contractx.ParsedResponse{ResponseText: raw}
	if env.ResponseText != nil {
		resp.ResponseText = *env.ResponseText
	}
	resp.IntentCall = decodeCall(env.FunctionCall)
	return resp, true
}

// decodeCall extracts a usable IntentCall, or nil. A call without a non-empty
// intent is dropped entirely rather than propagated malformed; parameters
// that are not a JSON object are coerced to an empty map.
func decodeCall(rawCall json.RawMessage) *contractx.IntentCall {
	trimmed := strings.TrimSpace(string(rawCall))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawCall, &fields); err != nil {
		return nil
	}

	var intent string
	if err := json.Unmarshal(fields["intent"], &intent); err != nil || strings.TrimSpace(intent) == "" {
		return nil
	}

	params := map[string]any{}
	if rawParams, ok := fields["parameters"]; ok {
		if err := json.Unmarshal(rawParams, &params); err != nil || params == nil {
			params = map[string]any{}
		}
	}

	return &contractx.IntentCall{
		Intent:     intent,
		Parameters: params,
	}
}
