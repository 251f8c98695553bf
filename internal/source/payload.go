package source

import (
	"encoding/json"

	"github.com/transformlabs/pulse/internal/pipeline"
)

// Payload is the raw upstream snapshot handed to the aggregation
// layer: a list of raw event records and a content payload, either of
// which may be empty.
type Payload struct {
	Events  []map[string]interface{}
	Content ContentPayload
}

// ContentPayload is the raw content half of a snapshot. Exactly one of
// Items or Summary is populated: Items when the upstream delivered raw
// records, Summary when it delivered a pre-aggregated object.
type ContentPayload struct {
	Items   []map[string]interface{}
	Summary *pipeline.Summary
}

func (c ContentPayload) IsEmpty() bool {
	return len(c.Items) == 0 && c.Summary == nil
}

// IsEmpty reports whether the payload carries no usable data. A chain
// strategy that fetches successfully but yields an empty payload does
// not win; the chain moves on to the next strategy.
func (p *Payload) IsEmpty() bool {
	return p == nil || (len(p.Events) == 0 && p.Content.IsEmpty())
}

// DecodePayload interprets a raw upstream body against the known
// payload shapes:
//
//   - an object with "events" and/or "content" keys
//   - a bare array of content records
//   - an n8n item wrapper: an array whose first element carries the
//     "events"/"content" object
//
// The content value itself may be a record array, a {"results": [...]}
// wrapper, or a pre-aggregated summary object.
func DecodePayload(data []byte) (*Payload, error) {
	var top interface{}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	switch v := top.(type) {
	case []interface{}:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]interface{}); ok {
				_, hasEvents := first["events"]
				_, hasContent := first["content"]
				if hasEvents || hasContent {
					return decodeEnvelope(first), nil
				}
			}
		}
		// A bare array is a list of content records.
		return &Payload{Content: ContentPayload{Items: toRecords(v)}}, nil
	case map[string]interface{}:
		return decodeEnvelope(v), nil
	default:
		return &Payload{}, nil
	}
}

func decodeEnvelope(envelope map[string]interface{}) *Payload {
	p := &Payload{}
	if rawEvents, ok := envelope["events"].([]interface{}); ok {
		p.Events = toRecords(rawEvents)
	}
	if rawContent, ok := envelope["content"]; ok {
		p.Content = decodeContent(rawContent)
	}
	return p
}

func decodeContent(raw interface{}) ContentPayload {
	switch v := raw.(type) {
	case []interface{}:
		return ContentPayload{Items: toRecords(v)}
	case map[string]interface{}:
		if results, ok := v["results"].([]interface{}); ok {
			return ContentPayload{Items: toRecords(results)}
		}
		if _, ok := v["recentActivity"]; ok {
			return ContentPayload{Summary: decodeSummary(v)}
		}
		return ContentPayload{}
	default:
		return ContentPayload{}
	}
}

// decodeSummary round-trips the already-unmarshaled map through JSON
// into the typed summary. Fields that do not fit are dropped, which
// matches the tolerant read posture of the rest of the pipeline.
func decodeSummary(m map[string]interface{}) *pipeline.Summary {
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var s pipeline.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

func toRecords(items []interface{}) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records
}
