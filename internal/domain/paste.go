// Package domain contains domain models for the paste service.
package domain

import "time"

// CreatePasteRequestDTO is the request body for creating a paste.
// Content length is checked by the service against the configured maximum.
type CreatePasteRequestDTO struct {
	Content string `json:"content" binding:"required"`
}

// CreatePasteResponseDTO is returned after a paste has been stored.
type CreatePasteResponseDTO struct {
	Message string `json:"message"`
	PasteID string `json:"pasteId"`
}

// PasteResponseDTO is the public view of a live paste.
type PasteResponseDTO struct {
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// Paste is a stored text blob addressable by a short public identifier.
// A Paste is never modified after it has been created.
type Paste struct {
	ID        string    `json:"pasteId" bson:"pasteId"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expireAt"`
}

// IsLive reports whether the paste is still retrievable at now.
func (p Paste) IsLive(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}
