package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/history"
)

type generateRequest struct {
	Scene blueprint.Scene `json:"scene"`
}

// Generate runs one synchronous render. The request blocks until the
// primary or fallback path settles, which can take minutes for a polled job.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	result, err := a.Generator.Generate(r.Context(), req.Scene)
	if err != nil {
		a.Logger.Error().Err(err).Msg("generation failed")
		a.error(w, http.StatusBadGateway, "generation_failed", err.Error())
		return
	}

	a.History.Append(req.Scene, history.KindGeneration, &result)
	a.json(w, http.StatusOK, map[string]any{"result": result})
}
