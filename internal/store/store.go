// Package store holds the attributes a conversation keeps between turns.
//
// The platform carries the attribute bag from one request to the next, so a
// Session lives exactly as long as the conversation and nothing is kept in
// process memory across requests.
package store

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	KeyEndpointID = "endpointId"
	KeySpeed      = "speed"

	DefaultSpeed = 100
)

// Session is the typed view of the conversation attributes.
type Session struct {
	endpointID *string
	speed      *int

	// attributes this skill does not interpret are passed through untouched
	extra map[string]json.RawMessage
}

// Load decodes the attribute bag sent with a request. Values of the wrong
// shape are treated as absent.
func Load(attrs map[string]json.RawMessage) *Session {
	s := &Session{}

	for k, raw := range attrs {
		switch k {
		case KeyEndpointID:
			var id string
			if err := json.Unmarshal(raw, &id); err == nil && id != "" {
				s.endpointID = &id
			}
		case KeySpeed:
			if v, ok := decodeInt(raw); ok {
				s.speed = &v
			}
		default:
			if s.extra == nil {
				s.extra = make(map[string]json.RawMessage)
			}
			s.extra[k] = raw
		}
	}

	return s
}

func decodeInt(raw json.RawMessage) (int, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Endpoint returns the stored device endpoint id.
func (s *Session) Endpoint() (string, bool) {
	if s.endpointID == nil {
		return "", false
	}
	return *s.endpointID, true
}

func (s *Session) SetEndpoint(id string) {
	s.endpointID = &id
}

// Speed returns the stored speed percentage.
func (s *Session) Speed() (int, bool) {
	if s.speed == nil {
		return 0, false
	}
	return *s.speed, true
}

// SpeedOrDefault returns the stored speed or DefaultSpeed when none was set.
func (s *Session) SpeedOrDefault() int {
	if v, ok := s.Speed(); ok {
		return v
	}
	return DefaultSpeed
}

func (s *Session) SetSpeed(v int) {
	s.speed = &v
}

// Attributes encodes the session for the response envelope. It returns nil
// when there is nothing to carry over.
func (s *Session) Attributes() map[string]any {
	attrs := make(map[string]any, len(s.extra)+2)
	for k, v := range s.extra {
		attrs[k] = v
	}
	if s.endpointID != nil {
		attrs[KeyEndpointID] = *s.endpointID
	}
	if s.speed != nil {
		attrs[KeySpeed] = *s.speed
	}

	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
