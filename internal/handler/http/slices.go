package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
	"github.com/MKhiriev/go-slice-keeper/models"
)

func (h *Handler) createSlice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var slice models.Slice
	if err := json.NewDecoder(r.Body).Decode(&slice); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	slice.UserID = userID

	saved, err := h.services.SliceService.UploadSlice(ctx, slice)
	if err != nil {
		log.Err(err).Str("client_side_id", slice.ClientSideID).Msg("slice creation failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) updateSlice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var slice models.Slice
	if err := json.NewDecoder(r.Body).Decode(&slice); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	slice.UserID = userID

	updated, err := h.services.SliceService.UpdateSlice(ctx, slice)
	if err != nil {
		log.Err(err).Str("client_side_id", slice.ClientSideID).Msg("slice update failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteSlice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	clientSideID := chi.URLParam(r, "clientSideID")

	deleted, err := h.services.SliceService.DeleteSlices(ctx, models.DeleteRequest{
		UserID:        userID,
		ClientSideIDs: []string{clientSideID},
	})
	if err != nil {
		log.Err(err).Str("client_side_id", clientSideID).Msg("slice deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if deleted == 0 {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listSlices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	slices, err := h.services.SliceService.GetAllSlices(ctx, userID)
	if err != nil {
		log.Err(err).Msg("slice listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SlicesResponse{Slices: slices, Length: len(slices)}, http.StatusOK)
}

func (h *Handler) searchSlices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var search models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&search); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	search.UserID = userID

	found, err := h.services.SliceService.SearchSlices(ctx, search)
	if err != nil {
		log.Err(err).Int("tokens count", len(search.SearchTokens)).Msg("slice search failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SlicesResponse{Slices: found, Length: len(found)}, http.StatusOK)
}
