package skill

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/dolly-skill/internal/directive"
	"bitbucket.org/sotavant/dolly-skill/internal/logger"
	"bitbucket.org/sotavant/dolly-skill/internal/models"
)

const (
	IntentSetSpeed          = "SetSpeedIntent"
	IntentSetCameraPitch    = "SetCameraPitchIntent"
	IntentSetCameraPosition = "SetCameraPositionIntent"
	IntentHelp              = "AMAZON.HelpIntent"
	IntentCancel            = "AMAZON.CancelIntent"
	IntentStop              = "AMAZON.StopIntent"

	SlotSpeed     = "Speed"
	SlotDirection = "Direction"
	SlotAngle     = "Angle"
	SlotPosition  = "Position"
)

const (
	MinSpeed = 1
	MaxSpeed = 100

	defaultDirection = "forward"
	noPosition       = "none"
)

const (
	textNoGadget        = "I couldn't find an EV3 Brick connected to this Echo device. Please check to make sure your EV3 Brick is connected, and try again."
	textWelcome         = "Welcome, you can start issuing move commands"
	textWelcomeReprompt = "Awaiting commands"
	textAwaiting        = "awaiting command"
	textBadSpeed        = "I didn't catch the speed. Say a number between 1 and 100."
	textGoodbye         = "Goodbye!"
)

func isIntent(in *Input, names ...string) bool {
	name := in.Request.IntentName()
	if name == "" {
		return false
	}
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}

// launchHandler discovers the brick and remembers it for the rest of the session.
type launchHandler struct{}

func (launchHandler) CanHandle(in *Input) bool {
	return in.Request.Request.Type == models.TypeLaunchRequest
}

func (launchHandler) Handle(ctx context.Context, in *Input) (*Response, error) {
	sys := in.Request.Context.System

	endpoints, err := in.Endpoints.ListEndpoints(ctx, sys.APIEndpoint, sys.APIAccessToken)
	if err != nil {
		return nil, fmt.Errorf("discover gadget: %w", err)
	}

	if len(endpoints) == 0 {
		logger.Log.Info("no gadget connected", zap.String("device", sys.Device.DeviceID))
		return NewResponse().Speak(textNoGadget), nil
	}

	if id := endpoints[0].EndpointID; id != "" {
		in.Session.SetEndpoint(id)
	}
	logger.Log.Debug("gadget discovered",
		zap.String("endpoint", endpoints[0].EndpointID),
		zap.Int("connected", len(endpoints)),
	)

	return NewResponse().
		Speak(textWelcome).
		Reprompt(textWelcomeReprompt), nil
}

// setSpeedHandler stores the speed used by later position commands.
type setSpeedHandler struct{}

func (setSpeedHandler) CanHandle(in *Input) bool {
	return isIntent(in, IntentSetSpeed)
}

func (setSpeedHandler) Handle(_ context.Context, in *Input) (*Response, error) {
	raw, _ := in.Request.SlotValue(SlotSpeed)

	speed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Log.Debug("speed slot is not a number", zap.String("value", raw))
		return NewResponse().
			Speak(textBadSpeed).
			Reprompt(textAwaiting), nil
	}

	speed = ClampSpeed(speed)
	in.Session.SetSpeed(speed)

	return NewResponse().
		Speak(fmt.Sprintf("speed set to %d percent.", speed)).
		Reprompt(textAwaiting).
		WithShouldEndSession(false), nil
}

// ClampSpeed saturates v to the range the motors accept.
func ClampSpeed(v int) int {
	return max(MinSpeed, min(MaxSpeed, v))
}

// setCameraPitchHandler tilts the camera up or down.
type setCameraPitchHandler struct{}

func (setCameraPitchHandler) CanHandle(in *Input) bool {
	return isIntent(in, IntentSetCameraPitch)
}

func (setCameraPitchHandler) Handle(_ context.Context, in *Input) (*Response, error) {
	direction, _ := in.Request.SlotValue(SlotDirection)
	angle, _ := in.Request.SlotValue(SlotAngle)

	endpointID, _ := in.Session.Endpoint()
	d := directive.Build(endpointID, directive.Pitch(direction, angle))

	return NewResponse().
		Speak(fmt.Sprintf("pitching camera %s %s degrees", direction, angle)).
		WithShouldEndSession(false).
		AddDirective(d), nil
}

// setCameraPositionHandler moves the dolly, optionally to a coloured marker.
type setCameraPositionHandler struct{}

func (setCameraPositionHandler) CanHandle(in *Input) bool {
	return isIntent(in, IntentSetCameraPosition)
}

func (setCameraPositionHandler) Handle(_ context.Context, in *Input) (*Response, error) {
	position, ok := in.Request.SlotValue(SlotPosition)
	if ok {
		position = capitalize(position)
	} else {
		position = noPosition
	}

	direction, ok := in.Request.SlotValue(SlotDirection)
	if !ok {
		direction = defaultDirection
	}

	endpointID, _ := in.Session.Endpoint()
	d := directive.Build(endpointID, directive.Position(direction, in.Session.SpeedOrDefault(), position))

	return NewResponse().
		Speak(fmt.Sprintf("moving the camera %s", direction)).
		AddDirective(d).
		WithShouldEndSession(false), nil
}

// capitalize upper-cases the first letter; the gadget compares it with colour sensor names.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// cancelAndStopHandler halts the motors and says goodbye.
type cancelAndStopHandler struct{}

func (cancelAndStopHandler) CanHandle(in *Input) bool {
	return isIntent(in, IntentCancel, IntentStop)
}

func (cancelAndStopHandler) Handle(_ context.Context, in *Input) (*Response, error) {
	endpointID, _ := in.Session.Endpoint()
	d := directive.Build(endpointID, directive.Stop())

	return NewResponse().
		Speak(textGoodbye).
		AddDirective(d), nil
}
