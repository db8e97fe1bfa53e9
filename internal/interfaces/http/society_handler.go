package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
)

// SocietyHandler sociedades y asignaciones usuario-sociedad.
type SocietyHandler struct {
	uc          *usecase.SocietyUseCase
	assignments *usecase.UserSocietyUseCase
}

// NewSocietyHandler construye el handler.
func NewSocietyHandler(uc *usecase.SocietyUseCase, assignments *usecase.UserSocietyUseCase) *SocietyHandler {
	return &SocietyHandler{uc: uc, assignments: assignments}
}

// Create godoc
// @Summary      Alta de sociedad
// @Tags         societies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SocietyRequest  true  "Datos de la sociedad"
// @Success      201   {object}  dto.SocietyResponse
// @Failure      400   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/societies [post]
func (h *SocietyHandler) Create(c *fiber.Ctx) error {
	var in dto.SocietyRequest
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
// @Summary      Obtener sociedad por ID
// @Tags         societies
// @Produce      json
// @Param        id   path  int  true  "ID de la sociedad"
// @Success      200  {object}  dto.SocietyResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/societies/{id} [get]
func (h *SocietyHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Buscar sociedad por CUIT
// @Tags         societies
// @Produce      json
// @Param        cuit  path  string  true  "CUIT"
// @Success      200   {object}  dto.SocietyResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Router       /api/v1/societies/by-cuit/{cuit} [get]
func (h *SocietyHandler) GetByCUIT(c *fiber.Ctx) error {
	out, err := h.uc.GetByCUIT(c.UserContext(), c.Params("cuit"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sociedades
// @Tags         societies
// @Produce      json
// @Param        search     query  string  false  "Código o descripción"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        page_size  query  int     false  "Tamaño"  default(20)
// @Success      200  {object}  dto.SocietyListResponse
// @Router       /api/v1/societies [get]
func (h *SocietyHandler) List(c *fiber.Ctx) error {
	var q dto.CatalogListQuery
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
// @Summary      Modificar sociedad
// @Tags         societies
// @Accept       json
// @Produce      json
// @Param        id    path  int                 true  "ID de la sociedad"
// @Param        body  body  dto.SocietyRequest  true  "Datos de la sociedad"
// @Success      200   {object}  dto.SocietyResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/societies/{id} [put]
func (h *SocietyHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.SocietyRequest
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
// @Summary      Baja lógica de sociedad
// @Tags         societies
// @Param        id   path  int  true  "ID de la sociedad"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/societies/{id} [delete]
func (h *SocietyHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Assign godoc
// @Summary      Asignar sociedad a usuario
// @Tags         societies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignSocietyRequest  true  "Usuario y sociedad"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/assignments [post]
func (h *SocietyHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignSocietyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.assignments.Assign(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAssignments godoc
// @Summary      Asignaciones por usuario o por sociedad
// @Tags         societies
// @Produce      json
// @Param        user_id     query  string  false  "Usuario"
// @Param        society_id  query  int     false  "Sociedad"
// @Success      200  {array}  dto.AssignmentResponse
// @Failure      400  {object}  dto.ProblemDetails
// @Router       /api/v1/assignments [get]
func (h *SocietyHandler) ListAssignments(c *fiber.Ctx) error {
	var q struct {
		UserID    string `query:"user_id"`
		SocietyID int64  `query:"society_id"`
	}
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	var (
		out []dto.AssignmentResponse
		err error
	)
	if q.SocietyID > 0 {
		out, err = h.assignments.ListBySociety(c.UserContext(), q.SocietyID)
	} else {
		out, err = h.assignments.ListByUser(c.UserContext(), q.UserID)
	}
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RemoveAssignment godoc
// @Summary      Quitar asignación
// @Tags         societies
// @Param        id   path  int  true  "ID de la asignación"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/assignments/{id} [delete]
func (h *SocietyHandler) RemoveAssignment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.assignments.Remove(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MySocieties godoc
// @Summary      Sociedades del usuario autenticado
// @Tags         societies
// @Produce      json
// @Success      200  {array}  dto.SocietyResponse
// @Router       /api/v1/me/societies [get]
func (h *SocietyHandler) MySocieties(c *fiber.Ctx) error {
	out, err := h.assignments.MySocieties(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
