package handlers

import (
	"net/http"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/library"
)

func (a *App) LibraryList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"blueprints": library.Blueprints()})
}

func (a *App) WorkflowList(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"workflows": library.Workflows()})
}

func (a *App) DefaultScene(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"scene": library.DefaultScene()})
}
