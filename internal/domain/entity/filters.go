package entity

// ProviderFilter criterios de búsqueda de proveedores.
type ProviderFilter struct {
	Search string // razón social, sin distinguir mayúsculas ni acentos
	CUIT   string
	Active *bool
	Limit  int
	Offset int
}

// SapAccountFilter criterios de búsqueda de cuentas SAP.
type SapAccountFilter struct {
	SocietyCode string
	Search      string
	Limit       int
	Offset      int
}
