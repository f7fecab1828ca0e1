package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/batch"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/history"
)

type roundCreateRequest struct {
	Scenes []blueprint.Scene `json:"scenes"`
}

type roundResponse struct {
	RoundID  string       `json:"round_id"`
	Complete bool         `json:"complete"`
	Slots    []batch.Slot `json:"slots"`
}

// RoundCreate starts a staggered batch render and returns immediately with
// the round token. The work is detached from the request context so closing
// the browser tab does not kill in-flight renders.
func (a *App) RoundCreate(w http.ResponseWriter, r *http.Request) {
	var req roundCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Scenes) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one scene required")
		return
	}
	if len(req.Scenes) > a.BatchSize {
		req.Scenes = req.Scenes[:a.BatchSize]
	}

	round := a.Scheduler.Start(context.WithoutCancel(r.Context()), req.Scenes)
	go a.recordRound(round)

	a.json(w, http.StatusAccepted, map[string]any{
		"round_id": round.ID(),
		"slots":    len(req.Scenes),
	})
}

func (a *App) RoundStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "round_id")
	round, ok := a.Scheduler.Round(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown round")
		return
	}
	a.json(w, http.StatusOK, roundResponse{
		RoundID:  round.ID(),
		Complete: round.Complete(),
		Slots:    round.Snapshot(),
	})
}

// recordRound appends finished batch slots to the history once the round
// settles. Superseded rounds are skipped; their results belong to an
// abandoned generation and would clutter the version log.
func (a *App) recordRound(round *batch.Round) {
	<-round.Done()
	if !a.Scheduler.IsActive(round) {
		return
	}
	for _, slot := range round.Snapshot() {
		if slot.Result == nil || slot.Result.Failed() {
			continue
		}
		a.History.Append(slot.Scene, history.KindBatch, slot.Result)
	}
}
