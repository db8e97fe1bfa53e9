package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/jwt"
)

// Pinger verifica la conexión a la base (lo implementa *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CurrencyUC      *usecase.CurrencyUseCase
	DocumentTypeUC  *usecase.DocumentTypeUseCase
	PaymentTypeUC   *usecase.PaymentTypeUseCase
	StateUC         *usecase.StateUseCase
	ProviderUC      *usecase.ProviderUseCase
	SocietyUC       *usecase.SocietyUseCase
	UserSocietyUC   *usecase.UserSocietyUseCase
	DocumentUC      *usecase.DocumentUseCase
	AttachmentUC    *usecase.AttachmentUseCase
	NoteUC          *usecase.NoteUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	SapUC           *usecase.SapUseCase
	DB              Pinger
	JWTSecret       string
	JWTIssuer       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Health (público)
	app.Get("/health", healthHandler(deps.DB))

	// Todo /api/v1 requiere Bearer Token
	api := app.Group("/api/v1", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	adminOnly := RequireRole(jwt.RoleAdmin)
	societyAccess := RequireSocietyAccess("id", deps.UserSocietyUC)

	// Catálogos: lectura para todos, escritura solo admin
	NewCatalogHandler[dto.CurrencyRequest, dto.CurrencyResponse](deps.CurrencyUC).Register(api.Group("/currencies"), adminOnly)
	NewCatalogHandler[dto.DocumentTypeRequest, dto.DocumentTypeResponse](deps.DocumentTypeUC).Register(api.Group("/document-types"), adminOnly)
	NewCatalogHandler[dto.PaymentTypeRequest, dto.PaymentTypeResponse](deps.PaymentTypeUC).Register(api.Group("/payment-types"), adminOnly)
	NewCatalogHandler[dto.StateRequest, dto.StateResponse](deps.StateUC).Register(api.Group("/states"), adminOnly)

	documentHandler := NewDocumentHandler(deps.DocumentUC)

	// Providers
	providers := api.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Get("/", providerHandler.List)
	providers.Get("/by-cuit/:cuit", providerHandler.GetByCUIT)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Get("/:id/pending-documents", documentHandler.ListPendingByProvider)
	providers.Post("/", adminOnly, providerHandler.Create)
	providers.Put("/:id", adminOnly, providerHandler.Update)
	providers.Delete("/:id", adminOnly, providerHandler.Delete)

	// Societies
	societies := api.Group("/societies")
	societyHandler := NewSocietyHandler(deps.SocietyUC, deps.UserSocietyUC)
	societies.Get("/", societyHandler.List)
	societies.Get("/by-cuit/:cuit", societyHandler.GetByCUIT)
	societies.Get("/:id", societyHandler.GetByID)
	societies.Get("/:id/documents", societyAccess, documentHandler.ListBySociety)
	societies.Post("/", adminOnly, societyHandler.Create)
	societies.Put("/:id", adminOnly, societyHandler.Update)
	societies.Delete("/:id", adminOnly, societyHandler.Delete)

	// Asignaciones usuario-sociedad (admin)
	assignments := api.Group("/assignments", adminOnly)
	assignments.Get("/", societyHandler.ListAssignments)
	assignments.Post("/", societyHandler.Assign)
	assignments.Delete("/:id", societyHandler.RemoveAssignment)

	api.Get("/me/societies", societyHandler.MySocieties)

	// Documents
	documents := api.Group("/documents")
	documents.Get("/", RequireSocietyAccess("", deps.UserSocietyUC), documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", documentHandler.Update)
	documents.Patch("/:id/state", documentHandler.ChangeState)
	documents.Delete("/:id", documentHandler.Delete)
	documents.Get("/:id/voucher", documentHandler.Voucher)

	// Adjuntos, notas y OC del documento
	attachmentHandler := NewAttachmentHandler(deps.AttachmentUC, deps.NoteUC, deps.PurchaseOrderUC)
	documents.Get("/:id/attachments", attachmentHandler.ListAttachments)
	documents.Post("/:id/attachments", attachmentHandler.Upload)
	documents.Get("/:id/attachments/:attachmentID", attachmentHandler.Download)
	documents.Delete("/:id/attachments/:attachmentID", attachmentHandler.DeleteAttachment)
	documents.Get("/:id/notes", attachmentHandler.ListNotes)
	documents.Post("/:id/notes", attachmentHandler.AddNote)
	documents.Delete("/:id/notes/:noteID", attachmentHandler.DeleteNote)
	documents.Get("/:id/purchase-orders", attachmentHandler.ListPurchaseOrders)
	documents.Post("/:id/purchase-orders", attachmentHandler.AddPurchaseOrder)
	documents.Delete("/:id/purchase-orders/:orderID", attachmentHandler.RemovePurchaseOrder)

	// SAP (solo lectura)
	sap := api.Group("/sap")
	sapHandler := NewSapHandler(deps.SapUC)
	sap.Get("/accounts", sapHandler.ListAccounts)
	sap.Get("/accounts/:code", sapHandler.GetAccount)
	sap.Get("/purchase-orders", sapHandler.ListPurchaseOrders)
	sap.Get("/purchase-orders/:number", sapHandler.GetPurchaseOrder)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func healthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(dto.HealthResponse{Status: "ok", Database: "n/a"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Database: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Database: "up"})
	}
}
