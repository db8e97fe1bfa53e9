package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
)

// SapHandler consulta de la réplica SAP (solo lectura).
type SapHandler struct {
	uc *usecase.SapUseCase
}

// NewSapHandler construye el handler.
func NewSapHandler(uc *usecase.SapUseCase) *SapHandler {
	return &SapHandler{uc: uc}
}

// ListAccounts godoc
// @Summary      Cuentas SAP
// @Tags         sap
// @Produce      json
// @Param        society_code  query  string  false  "Sociedad SAP"
// @Param        search        query  string  false  "Código o descripción"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        page_size     query  int     false  "Tamaño"  default(20)
// @Success      200  {object}  dto.SapAccountListResponse
// @Router       /api/v1/sap/accounts [get]
func (h *SapHandler) ListAccounts(c *fiber.Ctx) error {
	var q dto.SapAccountQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListAccounts(c.UserContext(), q, page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetAccount godoc
// @Summary      Cuenta SAP por código
// @Tags         sap
// @Produce      json
// @Param        code  path  string  true  "Código de cuenta"
// @Success      200   {object}  dto.SapAccountResponse
// @Failure      404   {object}  dto.ProblemDetails
// @Router       /api/v1/sap/accounts/{code} [get]
func (h *SapHandler) GetAccount(c *fiber.Ctx) error {
	out, err := h.uc.GetAccount(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListPurchaseOrders godoc
// @Summary      Órdenes de compra SAP de un proveedor
// @Tags         sap
// @Produce      json
// @Param        provider_cuit  query  string  true   "CUIT del proveedor"
// @Param        society_code   query  string  false  "Sociedad SAP"
// @Param        from           query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to             query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        page_size      query  int     false  "Tamaño"  default(20)
// @Success      200  {object}  dto.SapPurchaseOrderListResponse
// @Failure      400  {object}  dto.ProblemDetails
// @Router       /api/v1/sap/purchase-orders [get]
func (h *SapHandler) ListPurchaseOrders(c *fiber.Ctx) error {
	var q dto.SapPurchaseOrderQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListPurchaseOrders(c.UserContext(), q, page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetPurchaseOrder godoc
// @Summary      Posiciones de una OC SAP
// @Tags         sap
// @Produce      json
// @Param        number  path  string  true  "Número de OC"
// @Success      200     {array}   dto.SapPurchaseOrderResponse
// @Failure      404     {object}  dto.ProblemDetails
// @Router       /api/v1/sap/purchase-orders/{number} [get]
func (h *SapHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchaseOrder(c.UserContext(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
