// Package directive builds the custom directives sent to the EV3 brick.
package directive

import "bitbucket.org/sotavant/dolly-skill/internal/models"

const (
	// Namespace of the custom interface implemented by the gadget.
	Namespace = "Custom.Mindstorms.Gadget"
	// NameControl is the only directive the gadget understands.
	NameControl = "control"
)

const (
	TypePitch    = "pitch"
	TypePosition = "position"
	TypeStop     = "stop"
	TypeMove     = "move"
)

// Payload is the command-specific part of a control directive.
type Payload map[string]any

// Build assembles a control directive addressed to endpointID. An empty
// endpointID leaves the endpoint unset.
func Build(endpointID string, payload Payload) models.Directive {
	if payload == nil {
		payload = Payload{}
	}

	return models.Directive{
		Type: models.TypeSendDirective,
		Header: models.DirectiveHeader{
			Namespace: Namespace,
			Name:      NameControl,
		},
		Endpoint: models.DirectiveEndpoint{EndpointID: endpointID},
		Payload:  payload,
	}
}

// Pitch tilts the camera. Empty fields are left out.
func Pitch(direction, angle string) Payload {
	p := Payload{"type": TypePitch}
	setString(p, "direction", direction)
	setString(p, "angle", angle)
	return p
}

// Position drives the dolly, optionally until it reaches the named colour.
func Position(direction string, speed int, position string) Payload {
	return Payload{
		"type":      TypePosition,
		"direction": direction,
		"speed":     speed,
		"position":  position,
	}
}

// Stop halts every motor.
func Stop() Payload {
	return Payload{"type": TypeStop}
}

// Move is understood by the gadget protocol but not issued by any intent yet.
func Move(direction string, duration, speed int) Payload {
	p := Payload{
		"type":     TypeMove,
		"duration": duration,
		"speed":    speed,
	}
	setString(p, "direction", direction)
	return p
}

func setString(p Payload, key, value string) {
	if value != "" {
		p[key] = value
	}
}
