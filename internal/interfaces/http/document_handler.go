package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
)

// DocumentHandler maneja las peticiones HTTP para el recurso Document.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler inyectando el caso de uso.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Precargar documento
// @Description  Crea el documento en estado PEN. La nota y las órdenes de compra opcionales se graban en la misma transacción.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Cabecera del documento"
// @Success      201   {object}  dto.DocumentDetailResponse
// @Failure      400   {object}  dto.ProblemDetails
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	c.Location("/api/v1/documents/" + strconv.FormatInt(out.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con adjuntos, notas y órdenes de compra
// @Tags         documents
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {object}  dto.DocumentDetailResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Param        provider_id       query  int     false  "Proveedor"
// @Param        society_id        query  int     false  "Sociedad"
// @Param        state_id          query  int     false  "Estado"
// @Param        document_type_id  query  int     false  "Tipo de documento"
// @Param        provider_cuit     query  string  false  "CUIT del proveedor"
// @Param        number            query  string  false  "Número"
// @Param        from              query  string  false  "Fecha de emisión desde (YYYY-MM-DD)"
// @Param        to                query  string  false  "Fecha de emisión hasta (YYYY-MM-DD)"
// @Param        pending           query  bool    false  "Solo pendientes"
// @Param        page              query  int     false  "Página"  default(1)
// @Param        page_size         query  int     false  "Tamaño"  default(20)
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      400  {object}  dto.ProblemDetails
// @Router       /api/v1/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentListQuery
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

// ListBySociety godoc
// @Summary      Documentos de una sociedad
// @Tags         documents
// @Produce      json
// @Param        id         path   int  true   "ID de la sociedad"
// @Param        page       query  int  false  "Página"  default(1)
// @Param        page_size  query  int  false  "Tamaño"  default(20)
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      403  {object}  dto.ProblemDetails
// @Router       /api/v1/societies/{id}/documents [get]
func (h *DocumentHandler) ListBySociety(c *fiber.Ctx) error {
	societyID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var q dto.DocumentListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	q.SocietyID = societyID
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

// ListPendingByProvider godoc
// @Summary      Documentos pendientes de un proveedor
// @Tags         documents
// @Produce      json
// @Param        id         path   int  true   "ID del proveedor"
// @Param        page       query  int  false  "Página"  default(1)
// @Param        page_size  query  int  false  "Tamaño"  default(20)
// @Success      200  {object}  dto.DocumentListResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/providers/{id}/pending-documents [get]
func (h *DocumentHandler) ListPendingByProvider(c *fiber.Ctx) error {
	providerID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListPendingByProvider(c.UserContext(), providerID, page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar cabecera del documento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID del documento"
// @Param        body  body  dto.UpdateDocumentRequest  true  "Cabecera"
// @Success      200   {object}  dto.DocumentDetailResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateDocumentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ChangeState godoc
// @Summary      Cambiar estado del documento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del documento"
// @Param        body  body  dto.ChangeStateRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.DocumentDetailResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/state [patch]
func (h *DocumentHandler) ChangeState(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.ChangeStateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ChangeState(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Baja lógica del documento y sus adjuntos
// @Tags         documents
// @Param        id   path  int  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Voucher godoc
// @Summary      Constancia PDF del documento
// @Tags         documents
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/voucher [get]
func (h *DocumentHandler) Voucher(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pdf, filename, err := h.uc.Voucher(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
