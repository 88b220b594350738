package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/Dosada05/swiss-tournament/services"
)

type SnapshotHandler struct {
	snapshotService services.SnapshotService
}

func NewSnapshotHandler(ss services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: ss}
}

func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.Export(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Delete an exported snapshot
// @Tags standings
// @Param key path string true "Object key, e.g. snapshots/spring-open/20261019T120000Z-<id>.json"
// @Success 204
// @Failure 422 {object} map[string]string "Key outside the snapshot prefix"
// @Security BearerAuth
// @Router /standings/snapshots/{key} [delete]
func (h *SnapshotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if err := h.snapshotService.Delete(r.Context(), key); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
