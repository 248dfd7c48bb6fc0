package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
)

const hashHeader = "HashSHA256"

// rotationHashing verifies the keyed hash of the rotation request body.
// Rotation rewrites every slice a user owns, so a corrupted or tampered
// request must be refused before the service layer ever sees it. The body
// is read in full for hashing and restored for the next handler.
func (h *Handler) rotationHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		receivedHash := r.Header.Get(hashHeader)
		if receivedHash == "" {
			log.Error().Msg("rotation request without integrity hash")
			http.Error(w, "Integrity hash is required", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Msg("error reading request body")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		computedHash := hex.EncodeToString(utils.Hash(body))
		if !hmac.Equal([]byte(receivedHash), []byte(computedHash)) {
			log.Error().Msg("rotation request integrity check failed")
			http.Error(w, "Integrity check failed", http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
