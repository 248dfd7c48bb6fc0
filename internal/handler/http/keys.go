// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/service"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
	"github.com/MKhiriev/go-slice-keeper/models"
)

func (h *Handler) contentSample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var sample models.SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	sample.UserID = userID

	contents, err := h.services.SliceService.GetContentSample(ctx, sample)
	if err != nil {
		log.Err(err).Msg("content sampling failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SampleResponse{Contents: contents}, http.StatusOK)
}

// rotateKey drives a whole-corpus key rotation. Unlike the other handlers
// it always answers with a models.RotateKeyResponse body, success or not,
// so the client can surface the server's reason. Error details never
// include content - only counts and slice IDs.
func (h *Handler) rotateKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	if h.rotationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.rotationTimeout)
		defer cancel()
	}

	var rotate models.RotateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&rotate); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	rotate.UserID = userID

	updated, err := h.services.KeyRotationService.RotateKey(ctx, rotate)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("key rotation failed")
		utils.WriteJSON(w, rotationFailureResponse(err), rotationStatus(err))
		return
	}

	utils.WriteJSON(w, models.RotateKeyResponse{
		Success:       true,
		SlicesUpdated: updated,
	}, http.StatusOK)
}

func rotationStatus(err error) int {
	var integrityErr *service.CorpusIntegrityError
	var incompleteErr *service.RotationIncompleteError
	if errors.As(err, &integrityErr) || errors.As(err, &incompleteErr) {
		return http.StatusConflict
	}
	return statusFromError(err)
}

func rotationFailureResponse(err error) models.RotateKeyResponse {
	response := models.RotateKeyResponse{Success: false}

	var integrityErr *service.CorpusIntegrityError
	var incompleteErr *service.RotationIncompleteError
	switch {
	case errors.Is(err, service.ErrOldKeyMismatch):
		response.Error = service.ErrOldKeyMismatch.Error()
	case errors.Is(err, service.ErrRotationInProgress):
		response.Error = service.ErrRotationInProgress.Error()
	case errors.Is(err, service.ErrInvalidDataProvided):
		response.Error = service.ErrInvalidDataProvided.Error()
	case errors.As(err, &integrityErr):
		response.Error = "corpus integrity check failed"
		response.Details = integrityErr.Error()
	case errors.As(err, &incompleteErr):
		response.Error = "rotation incomplete, rolled back"
		response.Details = incompleteErr.Error()
	default:
		response.Error = "key rotation failed"
	}

	return response
}
