package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Prasannaverse13/FIBO-Studio-OS/pkg/zip"
)

const (
	exportFetchTimeout = 30 * time.Second
	exportMaxItems     = 16
	exportMaxAssetSize = 32 << 20
)

type exportRequest struct {
	URLs []string `json:"urls"`
}

// Export fetches the rendered images concurrently and streams them back as
// one zip archive. A single unreachable asset fails the whole export; a
// partial archive would silently lose renders the user asked for.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.URLs) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one url required")
		return
	}
	if len(req.URLs) > exportMaxItems {
		a.error(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("at most %d urls per export", exportMaxItems))
		return
	}

	assets := make([]zip.Asset, len(req.URLs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(r.Context())
	for i, rawURL := range req.URLs {
		i, rawURL := i, rawURL
		g.Go(func() error {
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
			if err != nil {
				return fmt.Errorf("asset %d: %w", i+1, err)
			}
			resp, err := a.Fetcher.Do(httpReq, exportFetchTimeout)
			if err != nil {
				return fmt.Errorf("asset %d: %w", i+1, err)
			}
			defer func() {
				_ = resp.Body.Close()
			}()
			if resp.StatusCode >= 300 {
				return fmt.Errorf("asset %d: status %d", i+1, resp.StatusCode)
			}
			data, err := io.ReadAll(io.LimitReader(resp.Body, exportMaxAssetSize))
			if err != nil {
				return fmt.Errorf("asset %d: %w", i+1, err)
			}
			mu.Lock()
			assets[i] = zip.Asset{
				Filename: fmt.Sprintf("render-%02d", i+1),
				MIME:     resp.Header.Get("Content-Type"),
				Data:     data,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.Logger.Error().Err(err).Msg("export fetch failed")
		a.error(w, http.StatusBadGateway, "export_failed", err.Error())
		return
	}

	archive := zip.ArchiveAssets(assets)
	if archive == nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="fibo-studio-export.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
