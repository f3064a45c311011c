// Package skill routes platform requests through an ordered handler chain.
package skill

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/dolly-skill/internal/gadget"
	"bitbucket.org/sotavant/dolly-skill/internal/logger"
	"bitbucket.org/sotavant/dolly-skill/internal/models"
	"bitbucket.org/sotavant/dolly-skill/internal/store"
)

var errNoHandler = errors.New("no handler can serve the request")

// Input is everything a handler may look at while serving one request.
type Input struct {
	Request   *models.Request
	Session   *store.Session
	Endpoints gadget.EndpointLister
}

// Handler serves the requests its CanHandle accepts.
type Handler interface {
	CanHandle(in *Input) bool
	Handle(ctx context.Context, in *Input) (*Response, error)
}

// Interceptor runs before routing on every request.
type Interceptor interface {
	Process(ctx context.Context, in *Input)
}

// ErrorHandler turns a failed request into a response.
type ErrorHandler interface {
	Handle(ctx context.Context, in *Input, err error) *Response
}

// Skill holds the handler chain. It is built once and never modified.
type Skill struct {
	handlers     []Handler
	interceptors []Interceptor
	errorHandler ErrorHandler
	endpoints    gadget.EndpointLister
}

// New builds the dolly skill. The order of the handlers matters: the first
// handler accepting a request serves it, and the reflector must stay last.
func New(endpoints gadget.EndpointLister) *Skill {
	return &Skill{
		handlers: []Handler{
			launchHandler{},
			setSpeedHandler{},
			setCameraPitchHandler{},
			setCameraPositionHandler{},
			helpHandler{},
			cancelAndStopHandler{},
			sessionEndedHandler{},
			intentReflectorHandler{},
		},
		interceptors: []Interceptor{requestLogger{}},
		errorHandler: apologyHandler{},
		endpoints:    endpoints,
	}
}

// Route returns the first handler whose CanHandle accepts the input.
func (s *Skill) Route(in *Input) Handler {
	for _, h := range s.handlers {
		if h.CanHandle(in) {
			return h
		}
	}
	return nil
}

// Dispatch serves one request envelope. It always produces a response:
// handler errors and panics are answered by the error handler.
func (s *Skill) Dispatch(ctx context.Context, req *models.Request) *models.Response {
	in := &Input{
		Request:   req,
		Session:   store.Load(req.Session.Attributes),
		Endpoints: s.endpoints,
	}

	resp, err := s.handle(ctx, in)
	if err != nil {
		resp = s.errorHandler.Handle(ctx, in, err)
	}

	return resp.Envelope(in.Session)
}

func (s *Skill) handle(ctx context.Context, in *Input) (resp *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("handler panicked", zap.Any("panic", r), zap.Stack("stack"))
			resp, err = nil, fmt.Errorf("handler panic: %v", r)
		}
	}()

	for _, ic := range s.interceptors {
		ic.Process(ctx, in)
	}

	h := s.Route(in)
	if h == nil {
		return nil, errNoHandler
	}

	resp, err = h.Handle(ctx, in)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		resp = NewResponse()
	}
	return resp, nil
}
