package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/dto"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/logger"
)

// ProblemContentType media type de los errores (RFC 7807).
const ProblemContentType = "application/problem+json"

// Códigos de error estables para los clientes.
const (
	CodeValidation   = "VALIDATION"
	CodeInvalidBody  = "INVALID_BODY"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeDuplicate    = "DUPLICATE"
	CodeInUse        = "IN_USE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL"
)

const internalDetail = "error interno del servidor"

// errInvalidBody cuerpo JSON que no se puede decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

// problemFor traduce un error de dominio (o de Fiber) a un Problem Details.
func problemFor(err error) dto.ProblemDetails {
	var ve *domain.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &ve):
		return newProblem(fiber.StatusBadRequest, CodeValidation, "la solicitud contiene errores de validación", ve.Fields)
	case errors.Is(err, errInvalidBody):
		return newProblem(fiber.StatusBadRequest, CodeInvalidBody, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput):
		return newProblem(fiber.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return newProblem(fiber.StatusNotFound, CodeNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrDuplicate):
		return newProblem(fiber.StatusConflict, CodeDuplicate, err.Error(), nil)
	case errors.Is(err, domain.ErrInUse):
		return newProblem(fiber.StatusConflict, CodeInUse, err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return newProblem(fiber.StatusConflict, CodeConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		return newProblem(fiber.StatusUnauthorized, CodeUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		return newProblem(fiber.StatusForbidden, CodeForbidden, err.Error(), nil)
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			return newProblem(fe.Code, CodeInternal, internalDetail, nil)
		}
		return newProblem(fe.Code, fiberCode(fe.Code), fe.Message, nil)
	default:
		return newProblem(fiber.StatusInternalServerError, CodeInternal, internalDetail, nil)
	}
}

func newProblem(status int, code, detail string, fields map[string]string) dto.ProblemDetails {
	return dto.ProblemDetails{
		Type:   "about:blank",
		Title:  utils.StatusMessage(status),
		Status: status,
		Detail: detail,
		Code:   code,
		Errors: fields,
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	default:
		return "HTTP_" + strconv.Itoa(status)
	}
}

// writeProblem responde con un Problem Details construido a mano (middlewares).
func writeProblem(c *fiber.Ctx, status int, code, detail string) error {
	p := newProblem(status, code, detail, nil)
	p.Instance = c.OriginalURL()
	return c.Status(status).JSON(p, ProblemContentType)
}

// ErrorHandler es el fiber.ErrorHandler de la API: todo error que devuelve un handler
// termina acá. Los 5xx se registran con el request id; los 4xx no.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		p := problemFor(err)
		p.Instance = c.OriginalURL()
		if p.Status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", GetRequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}
		return c.Status(p.Status).JSON(p, ProblemContentType)
	}
}
