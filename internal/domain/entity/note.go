package entity

import "time"

// Note representa una observación cargada sobre un documento.
type Note struct {
	ID         int64
	DocumentID int64
	Text       string
	CreatedBy  string
	CreatedAt  time.Time
}
