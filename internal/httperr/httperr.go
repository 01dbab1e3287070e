// Package httperr defines the caller-visible error taxonomy and its mapping
// onto HTTP responses. Services return plain sentinel errors; handlers wrap
// them into one of the kinds below at the operation boundary.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an error for status mapping.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindIntegrity
	KindValidation
	KindInternal
)

// Error carries a kind, a caller-safe message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Unauthenticated marks a request carrying no valid credential.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden marks an authenticated caller lacking rights for the action.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound marks a missing referenced entity.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Integrity marks a write that would break cross-entity consistency.
func Integrity(msg string) *Error {
	return &Error{Kind: KindIntegrity, Message: msg}
}

// Validation marks malformed input rejected before business logic.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Internal wraps a storage or unexpected failure. The cause is logged but
// never leaked to the external caller.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: err}
}

func (k Kind) status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindIntegrity:
		return http.StatusUnprocessableEntity
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Handler returns the Fiber error handler for the application. Taxonomy errors
// map to their status; anything unrecognized becomes an opaque 500.
func Handler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var he *Error
		if errors.As(err, &he) {
			msg := he.Message
			if he.Kind == KindInternal || he.Kind == KindUnknown {
				logger.Error("internal error", slog.String("path", c.Path()), slog.Any("error", he.cause))
				msg = "internal server error"
			}
			return c.Status(he.Kind.status()).JSON(fiber.Map{"message": msg})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		logger.Error("unhandled error", slog.String("path", c.Path()), slog.Any("error", err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}
}
