package entity

import "time"

// PaymentType representa una condición o medio de pago.
type PaymentType struct {
	ID          int64
	Code        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
