package model

import "time"

// ReleaseVersion is one uploaded installer build.
// Pure domain model with no database-specific dependencies or tags;
// it can be used across layers (HTTP, service, storage) without coupling to persistence.
type ReleaseVersion struct {
	ID           string    `json:"id"`
	Version      string    `json:"version"`
	Filename     string    `json:"filename"`
	FilePath     string    `json:"file_path"`
	IsLatest     bool      `json:"is_latest"`
	ReleaseNotes string    `json:"release_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
