package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/batch"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/history"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/interpreter"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/image"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/transport"
)

// App bundles the collaborators every handler needs.
type App struct {
	Logger      *infra.Logger
	Interpreter interpreter.Interpreter
	Generator   image.Generator
	Scheduler   *batch.Scheduler
	History     *history.Store
	Fetcher     *transport.Client
	BatchSize   int
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}
