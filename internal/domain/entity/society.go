package entity

import "time"

// Society representa una sociedad (empresa del grupo) receptora de comprobantes.
type Society struct {
	ID          int64
	Code        string // código de sociedad en SAP, único
	CUIT        string // único, solo dígitos
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// UserSocietyAssignment vincula un usuario (sujeto del token) con una sociedad que puede operar.
type UserSocietyAssignment struct {
	ID        int64
	UserID    string
	SocietyID int64
	CreatedAt time.Time
}
