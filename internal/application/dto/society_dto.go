package dto

import "time"

// SocietyRequest alta o modificación de una sociedad.
type SocietyRequest struct {
	Code        string `json:"code" validate:"required,max=10,code"`
	CUIT        string `json:"cuit" validate:"required,cuit"`
	Description string `json:"description" validate:"required,max=200"`
}

// SocietyResponse salida de una sociedad.
type SocietyResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	CUIT        string    `json:"cuit"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SocietyListResponse lista paginada de sociedades.
type SocietyListResponse = ListResponse[SocietyResponse]

// AssignSocietyRequest habilita a un usuario a operar una sociedad.
type AssignSocietyRequest struct {
	UserID    string `json:"user_id" validate:"required,max=100"`
	SocietyID int64  `json:"society_id" validate:"required,gt=0"`
}

// AssignmentResponse salida de una asignación usuario-sociedad.
type AssignmentResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	SocietyID int64     `json:"society_id"`
	CreatedAt time.Time `json:"created_at"`
}
