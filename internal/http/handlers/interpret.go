package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/history"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/interpreter"
)

type interpretRequest struct {
	Prompt        string           `json:"prompt"`
	Constraints   string           `json:"constraints,omitempty"`
	PreviousScene *blueprint.Scene `json:"previous_scene,omitempty"`
}

type interpretBatchRequest struct {
	Prompt      string `json:"prompt"`
	Count       int    `json:"count"`
	Constraints string `json:"constraints,omitempty"`
}

func (a *App) Interpret(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt required")
		return
	}

	scene, err := a.Interpreter.Interpret(r.Context(), interpreter.Request{
		Prompt:      req.Prompt,
		Constraints: req.Constraints,
		Previous:    req.PreviousScene,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("interpretation failed")
		a.error(w, http.StatusBadGateway, "interpretation_failed", err.Error())
		return
	}

	a.History.Append(scene, history.KindManual, nil)
	a.json(w, http.StatusOK, map[string]any{"scene": scene})
}

func (a *App) InterpretBatch(w http.ResponseWriter, r *http.Request) {
	var req interpretBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt required")
		return
	}
	count := req.Count
	if count <= 0 {
		count = a.BatchSize
	}

	scenes, err := a.Interpreter.InterpretBatch(r.Context(), req.Prompt, count, req.Constraints)
	if err != nil {
		if errors.Is(err, domain.ErrBatchEmpty) {
			a.error(w, http.StatusBadGateway, "batch_empty", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("batch interpretation failed")
		a.error(w, http.StatusBadGateway, "interpretation_failed", err.Error())
		return
	}

	a.json(w, http.StatusOK, map[string]any{"scenes": scenes})
}
