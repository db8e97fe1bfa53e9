package entity

import "time"

// Attachment representa un archivo adjunto a un documento. El contenido vive en el storage.
type Attachment struct {
	ID          int64
	DocumentID  int64
	FileName    string
	ContentType string
	Size        int64
	StorageKey  string
	CreatedBy   string
	CreatedAt   time.Time
	DeletedAt   *time.Time
}
