package service

import (
	"github.com/MKhiriev/go-slice-keeper/internal/adapter"
	"github.com/MKhiriev/go-slice-keeper/internal/crypto"
	"github.com/MKhiriev/go-slice-keeper/internal/logger"
	"github.com/MKhiriev/go-slice-keeper/internal/store"
)

type ClientServices struct {
	AuthService  ClientAuthService
	KeyService   ClientKeyService
	SliceService ClientSliceService
	KeyJob       ClientKeyJob
}

// NewClientServices wires the client service graph. onKeyInvalid is invoked
// by the background key job when the held key stops matching the server-side
// corpus; it may be nil.
func NewClientServices(localStore store.LocalKeyStore, serverAdapter adapter.ServerAdapter, log *logger.Logger, onKeyInvalid func(error)) *ClientServices {
	keySvc := NewClientKeyService(serverAdapter, localStore, crypto.NewCipherEngine(), crypto.NewSearchTokenizer(), log)

	return &ClientServices{
		AuthService:  NewClientAuthService(serverAdapter, localStore, log),
		KeyService:   keySvc,
		SliceService: NewClientSliceService(serverAdapter, keySvc, log),
		KeyJob:       NewClientKeyJob(keySvc, onKeyInvalid),
	}
}
