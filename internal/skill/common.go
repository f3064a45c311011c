package skill

import (
	"context"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/dolly-skill/internal/logger"
	"bitbucket.org/sotavant/dolly-skill/internal/models"
)

const (
	textHelp         = "Try saying pitch the camera up 30 degrees, or move the camera forward to red."
	textHelpReprompt = "What would you like to do?"
	textApology      = "Sorry, I had trouble doing what you asked. Please try again."
)

type helpHandler struct{}

func (helpHandler) CanHandle(in *Input) bool {
	return isIntent(in, IntentHelp)
}

func (helpHandler) Handle(_ context.Context, _ *Input) (*Response, error) {
	return NewResponse().
		Speak(textHelp).
		Reprompt(textHelpReprompt), nil
}

// sessionEndedHandler only logs; the platform discards any response body.
type sessionEndedHandler struct{}

func (sessionEndedHandler) CanHandle(in *Input) bool {
	return in.Request.Request.Type == models.TypeSessionEndedRequest
}

func (sessionEndedHandler) Handle(_ context.Context, in *Input) (*Response, error) {
	fields := []zap.Field{
		zap.String("session", in.Request.Session.SessionID),
		zap.String("reason", in.Request.Request.Reason),
	}
	if e := in.Request.Request.Error; e != nil {
		fields = append(fields, zap.String("error_type", e.Type), zap.String("error", e.Message))
	}
	logger.Log.Info("session ended", fields...)

	return NewResponse(), nil
}

// intentReflectorHandler answers anything the handlers before it did not take.
// It must stay last in the chain.
type intentReflectorHandler struct{}

func (intentReflectorHandler) CanHandle(*Input) bool {
	return true
}

func (intentReflectorHandler) Handle(_ context.Context, in *Input) (*Response, error) {
	name := in.Request.IntentName()
	if name == "" {
		name = in.Request.Request.Type
	}
	logger.Log.Debug("unhandled request reflected", zap.String("name", name))

	return NewResponse().Speak("You just triggered " + name), nil
}

// requestLogger logs every inbound request before it is routed.
type requestLogger struct{}

func (requestLogger) Process(_ context.Context, in *Input) {
	logger.Log.Debug("skill request",
		zap.String("type", in.Request.Request.Type),
		zap.String("intent", in.Request.IntentName()),
		zap.String("request_id", in.Request.Request.RequestID),
		zap.String("session", in.Request.Session.SessionID),
		zap.Bool("new_session", in.Request.Session.New),
	)
}

// apologyHandler is the last stop for any failure in the chain.
type apologyHandler struct{}

func (apologyHandler) Handle(_ context.Context, in *Input, err error) *Response {
	logger.Log.Error("cannot handle request",
		zap.String("type", in.Request.Request.Type),
		zap.String("intent", in.Request.IntentName()),
		zap.Error(err),
	)

	return NewResponse().
		Speak(textApology).
		Reprompt(textApology)
}
