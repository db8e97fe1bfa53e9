package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
)

// catalogService operaciones comunes de monedas, tipos de documento, tipos de pago y estados.
type catalogService[Req, Resp any] interface {
	Create(ctx context.Context, in Req) (*Resp, error)
	GetByID(ctx context.Context, id int64) (*Resp, error)
	List(ctx context.Context, q dto.CatalogListQuery, page dto.PageRequest) (*dto.ListResponse[Resp], error)
	Update(ctx context.Context, id int64, in Req) (*Resp, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogHandler CRUD HTTP de un catálogo.
//
//	GET    /{catalog}        listado paginado (?search=)
//	GET    /{catalog}/:id
//	POST   /{catalog}        admin
//	PUT    /{catalog}/:id    admin
//	DELETE /{catalog}/:id    admin (409 IN_USE si hay documentos que lo referencian)
type CatalogHandler[Req, Resp any] struct {
	svc catalogService[Req, Resp]
}

// NewCatalogHandler construye el handler sobre el caso de uso del catálogo.
func NewCatalogHandler[Req, Resp any](svc catalogService[Req, Resp]) *CatalogHandler[Req, Resp] {
	return &CatalogHandler[Req, Resp]{svc: svc}
}

// Register monta las rutas sobre el grupo; mutate protege las escrituras.
func (h *CatalogHandler[Req, Resp]) Register(r fiber.Router, mutate fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
	r.Post("/", mutate, h.Create)
	r.Put("/:id", mutate, h.Update)
	r.Delete("/:id", mutate, h.Delete)
}

func (h *CatalogHandler[Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler[Req, Resp]) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) List(c *fiber.Ctx) error {
	var q dto.CatalogListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	out, err := h.svc.List(c.UserContext(), q, page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in Req
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
