package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
)

// ProviderHandler maneja las peticiones HTTP para el recurso Provider.
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler inyectando el caso de uso.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de proveedor
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProviderRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProviderResponse
// @Failure      400   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/providers [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProviderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         providers
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.ProviderResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/providers/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByCUIT godoc
// @Summary      Buscar proveedor por CUIT
// @Tags         providers
// @Produce      json
// @Param        cuit  path  string  true  "CUIT (con o sin guiones)"
// @Success      200   {object}  dto.ProviderResponse
// @Failure      400   {object}  dto.ProblemDetails
// @Failure      404   {object}  dto.ProblemDetails
// @Router       /api/v1/providers/by-cuit/{cuit} [get]
func (h *ProviderHandler) GetByCUIT(c *fiber.Ctx) error {
	out, err := h.uc.GetByCUIT(c.UserContext(), c.Params("cuit"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         providers
// @Produce      json
// @Param        search     query  string  false  "Razón social"
// @Param        cuit       query  string  false  "CUIT exacto"
// @Param        active     query  bool    false  "Solo activos / inactivos"
// @Param        page       query  int     false  "Página"     default(1)
// @Param        page_size  query  int     false  "Tamaño"     default(20)
// @Success      200  {object}  dto.ProviderListResponse
// @Router       /api/v1/providers [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	var q dto.ProviderListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q, page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar proveedor
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del proveedor"
// @Param        body  body  dto.UpdateProviderRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.ProviderResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/providers/{id} [put]
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateProviderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Baja lógica de proveedor
// @Tags         providers
// @Param        id   path  int  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/providers/{id} [delete]
func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
