package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/history"
)

type historyAppendRequest struct {
	Scene blueprint.Scene `json:"scene"`
	Kind  history.Kind    `json:"kind,omitempty"`
}

func (a *App) HistoryList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.History.Items()})
}

func (a *App) HistoryAppend(w http.ResponseWriter, r *http.Request) {
	var req historyAppendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = history.KindManual
	}
	if !kind.Valid() {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown history kind")
		return
	}
	entry := a.History.Append(req.Scene, kind, nil)
	a.json(w, http.StatusCreated, entry)
}

func (a *App) HistoryGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := a.History.Get(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown version")
		return
	}
	a.json(w, http.StatusOK, entry)
}
