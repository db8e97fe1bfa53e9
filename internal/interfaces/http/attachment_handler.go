package http

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
)

// AttachmentHandler adjuntos, notas y órdenes de compra de un documento.
type AttachmentHandler struct {
	attachments *usecase.AttachmentUseCase
	notes       *usecase.NoteUseCase
	orders      *usecase.PurchaseOrderUseCase
}

// NewAttachmentHandler construye el handler.
func NewAttachmentHandler(attachments *usecase.AttachmentUseCase, notes *usecase.NoteUseCase, orders *usecase.PurchaseOrderUseCase) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, notes: notes, orders: orders}
}

// Upload godoc
// @Summary      Adjuntar archivo al documento
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "ID del documento"
// @Param        file  formData  file  true  "Archivo"
// @Success      201   {object}  dto.AttachmentResponse
// @Failure      400   {object}  dto.ProblemDetails
// @Failure      404   {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewValidationError("file", "se espera un archivo en el campo multipart 'file'")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	meta := dto.UploadAttachmentRequest{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
	out, err := h.attachments.Upload(c.UserContext(), GetUserID(c), documentID, meta, f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAttachments godoc
// @Summary      Adjuntos del documento
// @Tags         attachments
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {array}   dto.AttachmentResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/attachments [get]
func (h *AttachmentHandler) ListAttachments(c *fiber.Ctx) error {
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.attachments.List(c.UserContext(), documentID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar adjunto
// @Tags         attachments
// @Produce      octet-stream
// @Param        id            path  int  true  "ID del documento"
// @Param        attachmentID  path  int  true  "ID del adjunto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/attachments/{attachmentID} [get]
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	documentID, id, err := childIDs(c, "attachmentID")
	if err != nil {
		return err
	}
	meta, rc, err := h.attachments.Download(c.UserContext(), documentID, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, meta.ContentType)
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": meta.FileName}))
	// fasthttp cierra rc al terminar de escribir el cuerpo.
	return c.SendStream(rc, int(meta.Size))
}

// DeleteAttachment godoc
// @Summary      Quitar adjunto
// @Tags         attachments
// @Param        id            path  int  true  "ID del documento"
// @Param        attachmentID  path  int  true  "ID del adjunto"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/attachments/{attachmentID} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *fiber.Ctx) error {
	documentID, id, err := childIDs(c, "attachmentID")
	if err != nil {
		return err
	}
	if err := h.attachments.Delete(c.UserContext(), documentID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddNote godoc
// @Summary      Agregar nota al documento
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path  int              true  "ID del documento"
// @Param        body  body  dto.NoteRequest  true  "Texto"
// @Success      201   {object}  dto.NoteResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/notes [post]
func (h *AttachmentHandler) AddNote(c *fiber.Ctx) error {
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.NoteRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.notes.Add(c.UserContext(), GetUserID(c), documentID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNotes godoc
// @Summary      Notas del documento (más nuevas primero)
// @Tags         notes
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {array}   dto.NoteResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/notes [get]
func (h *AttachmentHandler) ListNotes(c *fiber.Ctx) error {
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.notes.List(c.UserContext(), documentID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteNote godoc
// @Summary      Borrar nota
// @Tags         notes
// @Param        id      path  int  true  "ID del documento"
// @Param        noteID  path  int  true  "ID de la nota"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/notes/{noteID} [delete]
func (h *AttachmentHandler) DeleteNote(c *fiber.Ctx) error {
	documentID, id, err := childIDs(c, "noteID")
	if err != nil {
		return err
	}
	if err := h.notes.Delete(c.UserContext(), documentID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPurchaseOrder godoc
// @Summary      Asociar posición de OC SAP
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del documento"
// @Param        body  body  dto.PurchaseOrderRequest  true  "OC y posición"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Failure      409   {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/purchase-orders [post]
func (h *AttachmentHandler) AddPurchaseOrder(c *fiber.Ctx) error {
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in dto.PurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.Add(c.UserContext(), documentID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPurchaseOrders godoc
// @Summary      OC asociadas al documento
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {array}   dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/purchase-orders [get]
func (h *AttachmentHandler) ListPurchaseOrders(c *fiber.Ctx) error {
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.orders.List(c.UserContext(), documentID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RemovePurchaseOrder godoc
// @Summary      Quitar OC asociada
// @Tags         purchase-orders
// @Param        id       path  int  true  "ID del documento"
// @Param        orderID  path  int  true  "ID de la asociación"
// @Success      204
// @Failure      404  {object}  dto.ProblemDetails
// @Router       /api/v1/documents/{id}/purchase-orders/{orderID} [delete]
func (h *AttachmentHandler) RemovePurchaseOrder(c *fiber.Ctx) error {
	documentID, id, err := childIDs(c, "orderID")
	if err != nil {
		return err
	}
	if err := h.orders.Remove(c.UserContext(), documentID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// childIDs lee el id del documento y el del recurso hijo.
func childIDs(c *fiber.Ctx, child string) (int64, int64, error) {
	documentID, err := paramID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	id, err := paramID(c, child)
	if err != nil {
		return 0, 0, err
	}
	return documentID, id, nil
}
