// Package repository define los puertos de persistencia del dominio (DIP).
// Las implementaciones viven en infrastructure (postgres, memory).
//
// Convención: los Get* devuelven (nil, nil) cuando el registro no existe; los List*
// devuelven además el total de registros que cumplen el criterio, sin paginar.
package repository

import "context"

// ListParams paginación y búsqueda libre para los catálogos simples.
type ListParams struct {
	Search string
	Limit  int
	Offset int
}

// Repositories agrupa los repositorios ligados a una misma transacción.
type Repositories struct {
	Documents      DocumentRepository
	Attachments    AttachmentRepository
	Notes          NoteRepository
	PurchaseOrders PurchaseOrderRepository
}

// UnitOfWork ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(r Repositories) error) error
}
