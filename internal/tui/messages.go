package tui

import (
	"github.com/MKhiriev/go-slice-keeper/models"
)

type authDoneMsg struct {
	err error
}

type listLoadedMsg struct {
	items    []models.Slice
	searched bool
	err      error
}

type sliceSavedMsg struct {
	err error
}

type sliceDeletedMsg struct {
	err error
}

type keyUnlockedMsg struct {
	valid bool
	err   error
}

type keyChangedMsg struct {
	updated int64
	err     error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
