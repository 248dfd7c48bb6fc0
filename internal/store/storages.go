package store

import "github.com/MKhiriev/go-slice-keeper/internal/logger"

// Storages aggregates the server-side repositories behind one constructor.
type Storages struct {
	UserRepository  UserRepository
	SliceRepository SliceRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		SliceRepository: NewSliceRepository(db, log),
	}
}
