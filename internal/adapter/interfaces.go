// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the slice-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-slice-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the slice-keeper
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
//
// Content crosses this boundary exactly as it will be stored: already
// encrypted (or plaintext when encryption is disabled), with the token index
// already computed. The adapter never sees key material except inside an
// explicit RotateKey call.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login, or when restoring a persisted session.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account. On success the bearer token from the
	// Authorization response header is stored via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates an existing account. On success the bearer token
	// from the Authorization response header is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.User, error)

	// UploadSlice sends one new slice to the server and returns it with
	// server-assigned timestamps.
	UploadSlice(ctx context.Context, slice models.Slice) (models.Slice, error)

	// UpdateSlice replaces the content, token index, and type of an existing
	// slice. Returns [ErrNotFound] (wrapped) when the slice does not exist.
	UpdateSlice(ctx context.Context, slice models.Slice) (models.Slice, error)

	// DeleteSlice removes the slice identified by clientSideID.
	DeleteSlice(ctx context.Context, clientSideID string) error

	// ListSlices retrieves the owner's full slice list, newest first.
	ListSlices(ctx context.Context) ([]models.Slice, error)

	// SearchSlices runs a server-side search. With SearchTokens set, the
	// server filters on the token index and returns candidates the caller
	// must re-filter after decryption; with Query set it substring-matches
	// unprotected content.
	SearchSlices(ctx context.Context, search models.SearchRequest) ([]models.Slice, error)

	// FetchContentSample retrieves the raw content column of the most
	// recent slices, for key validation only.
	FetchContentSample(ctx context.Context, limit int) ([]string, error)

	// RotateKey asks the server to re-encrypt the whole corpus. Keys are
	// encoded (base64, empty = none). The request carries a body-integrity
	// hash and runs without a client-side timeout: abandoning a rotation
	// midway is worse than waiting.
	RotateKey(ctx context.Context, oldKeyEncoded, newKeyEncoded string) (models.RotateKeyResponse, error)
}
