// Package models contains database model definitions.
package models

import "time"

// Setting is one named slot holding an opaque value, usually a JSON blob.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:191;not null"`
	Value     []byte
	UpdatedAt time.Time
}
