// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-slice-keeper/internal/config"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/utils"
	"github.com/MKhiriev/go-slice-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	// rotationClient carries no timeout. A rotation rewrites the whole
	// corpus server-side and must never be abandoned by an impatient client.
	rotationClient *utils.HTTPClient

	hashKey string
	token   string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from clientCfg.ServerAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and initialises the shared HMAC hasher pool used for transport
// integrity hashes.
//
// Returns an error if clientCfg.ServerAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(clientCfg config.Client, appCfg config.App, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(clientCfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(clientCfg.RequestTimeout)

	rotationClient := utils.NewHTTPClient()
	rotationClient.SetBaseURL(baseURL)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpServerAdapter{
		client:         client,
		rotationClient: rotationClient,
		hashKey:        appCfg.HashKey,
		logger:         logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/user/register. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token cannot
// be parsed.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	var registered models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&registered).
		Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	h.SetToken(token)
	return registered, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	var foundUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&foundUser).
		Post("/api/user/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return foundUser, nil
}

// UploadSlice implements [ServerAdapter]. It POSTs the slice to
// POST /api/slices/. Requires a valid bearer token.
func (h *httpServerAdapter) UploadSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	var saved models.Slice

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(slice).
		SetResult(&saved).
		Post("/api/slices/")
	if err != nil {
		return models.Slice{}, fmt.Errorf("upload slice request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Slice{}, err
	}

	return saved, nil
}

// UpdateSlice implements [ServerAdapter]. It PUTs the slice to
// PUT /api/slices/. Returns [ErrNotFound] (wrapped) on HTTP 404. Requires a
// valid bearer token.
func (h *httpServerAdapter) UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error) {
	var updated models.Slice

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(slice).
		SetResult(&updated).
		Put("/api/slices/")
	if err != nil {
		return models.Slice{}, fmt.Errorf("update slice request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Slice{}, err
	}

	return updated, nil
}

// DeleteSlice implements [ServerAdapter]. It sends
// DELETE /api/slices/{clientSideID}. Requires a valid bearer token.
func (h *httpServerAdapter) DeleteSlice(ctx context.Context, clientSideID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("clientSideID", clientSideID).
		Delete("/api/slices/{clientSideID}")
	if err != nil {
		return fmt.Errorf("delete slice request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListSlices implements [ServerAdapter]. It GETs /api/slices/ and decodes the
// response list. Requires a valid bearer token.
func (h *httpServerAdapter) ListSlices(ctx context.Context) ([]models.Slice, error) {
	resp, err := h.authedRequest(ctx).Get("/api/slices/")
	if err != nil {
		return nil, fmt.Errorf("list slices request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var listResponse models.SlicesResponse
	if err = json.Unmarshal(resp.Body(), &listResponse); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	return listResponse.Slices, nil
}

// SearchSlices implements [ServerAdapter]. It POSTs the search criteria to
// POST /api/slices/search and decodes the candidate list. Requires a valid
// bearer token.
func (h *httpServerAdapter) SearchSlices(ctx context.Context, search models.SearchRequest) ([]models.Slice, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(search).
		Post("/api/slices/search")
	if err != nil {
		return nil, fmt.Errorf("search slices request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var searchResponse models.SlicesResponse
	if err = json.Unmarshal(resp.Body(), &searchResponse); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return searchResponse.Slices, nil
}

// FetchContentSample implements [ServerAdapter]. It POSTs the sample request
// to POST /api/keys/sample and decodes the content list. Requires a valid
// bearer token.
func (h *httpServerAdapter) FetchContentSample(ctx context.Context, limit int) ([]string, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SampleRequest{Limit: limit}).
		Post("/api/keys/sample")
	if err != nil {
		return nil, fmt.Errorf("content sample request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var sampleResponse models.SampleResponse
	if err = json.Unmarshal(resp.Body(), &sampleResponse); err != nil {
		return nil, fmt.Errorf("decode sample response: %w", err)
	}

	return sampleResponse.Contents, nil
}

// RotateKey implements [ServerAdapter]. It POSTs the encoded key pair to
// POST /api/keys/rotate with a body-integrity hash in the HashSHA256 header,
// using the untimed rotation client. The decoded [models.RotateKeyResponse]
// is returned for both success and failure statuses so callers can read the
// server's error detail; the mapped transport error accompanies failures.
func (h *httpServerAdapter) RotateKey(ctx context.Context, oldKeyEncoded, newKeyEncoded string) (models.RotateKeyResponse, error) {
	body, err := json.Marshal(models.RotateKeyRequest{
		OldKey: oldKeyEncoded,
		NewKey: newKeyEncoded,
	})
	if err != nil {
		return models.RotateKeyResponse{}, fmt.Errorf("encode rotate request: %w", err)
	}

	resp, err := h.rotationClient.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetHeader("Content-Type", "application/json").
		SetHeader("HashSHA256", hex.EncodeToString(utils.Hash(body))).
		SetBody(body).
		Post("/api/keys/rotate")
	if err != nil {
		return models.RotateKeyResponse{}, fmt.Errorf("rotate key request: %w", err)
	}

	var rotateResponse models.RotateKeyResponse
	if decodeErr := json.Unmarshal(resp.Body(), &rotateResponse); decodeErr != nil && resp.StatusCode() < 300 {
		return models.RotateKeyResponse{}, fmt.Errorf("decode rotate response: %w", decodeErr)
	}

	if err = mapHTTPError(resp); err != nil {
		return rotateResponse, err
	}

	return rotateResponse, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token)
}
