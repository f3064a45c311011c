package main

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/dolly-skill/internal/logger"
	"bitbucket.org/sotavant/dolly-skill/internal/models"
)

type dispatcher interface {
	Dispatch(ctx context.Context, req *models.Request) *models.Response
}

type app struct {
	skill   dispatcher
	skillID string
}

func newApp(s dispatcher, skillID string) *app {
	return &app{skill: s, skillID: skillID}
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))

		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// запросы к чужому навыку не обрабатываем
	if a.skillID != "" && req.ApplicationID() != a.skillID {
		logger.Log.Debug("request for another skill", zap.String("application", req.ApplicationID()))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	resp := a.skill.Dispatch(ctx, &req)

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
		return
	}
	logger.Log.Debug("sending HTTP 200 response")
}
