package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/validation"
)

// now es la fuente de tiempo de los casos de uso (UTC).
var now = func() time.Time { return time.Now().UTC() }

// preparePage aplica los valores por defecto y valida los límites de la página.
func preparePage(v *validation.Validator, p *dto.PageRequest) error {
	p.DefaultPage()
	return v.Struct(p)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "debe tener el formato "+dto.DateLayout)
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseDateRange interpreta un rango inclusivo; from posterior a to es un error de validación.
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	f, err := parseOptionalDate("from", from)
	if err != nil {
		return nil, nil, err
	}
	t, err := parseOptionalDate("to", to)
	if err != nil {
		return nil, nil, err
	}
	if f != nil && t != nil && f.After(*t) {
		return nil, nil, domain.NewValidationError("from", "no puede ser posterior a to")
	}
	return f, t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// requirePositive valida que un importe sea mayor a cero.
func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewValidationError(field, "debe ser mayor a 0")
	}
	return nil
}
