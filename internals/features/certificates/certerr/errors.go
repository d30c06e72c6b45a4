// Package certerr holds the error taxonomy shared by the certificate
// template store, generator, preparer and verifier.
package certerr

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"academy_backend/internals/constants"
	helper "academy_backend/internals/helpers"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrNotEligible      = errors.New("not eligible")
	ErrTemplateNotFound = errors.New("certificate template not found")
)

// Error carries a user-facing message in English and Arabic.
// Kind is one of the sentinels above so callers can use errors.Is.
type Error struct {
	Kind      error
	Message   string
	MessageAr string
	Language  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg, msgAr string) *Error {
	return &Error{Kind: ErrValidation, Message: msg, MessageAr: msgAr}
}

func NotFound(msg, msgAr string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg, MessageAr: msgAr}
}

func NotEligible(msg, msgAr string) *Error {
	return &Error{Kind: ErrNotEligible, Message: msg, MessageAr: msgAr}
}

// TemplateNotFound names the language code and its display name.
func TemplateNotFound(lang string) *Error {
	return &Error{
		Kind: ErrTemplateNotFound,
		Message: fmt.Sprintf("No default active certificate template found for language %s (%s)",
			lang, constants.LanguageName(lang, false)),
		MessageAr: fmt.Sprintf("لا يوجد قالب شهادة افتراضي نشط للغة %s (%s)",
			constants.LanguageName(lang, true), lang),
		Language: lang,
	}
}

/* =========================
   HTTP mapping
   ========================= */

func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotEligible):
		return "NOT_ELIGIBLE"
	case errors.Is(err, ErrTemplateNotFound):
		return "TEMPLATE_NOT_FOUND"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	}
	return "INTERNAL_ERROR"
}

// Status maps an error kind to the default HTTP status. Handlers that need a
// different status for ErrTemplateNotFound (generate → 500) pass it to RespondWith.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotEligible):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTemplateNotFound):
		return fiber.StatusNotFound
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Respond writes the standard error envelope for err.
func Respond(c *fiber.Ctx, err error) error {
	return RespondWith(c, err, Status(err))
}

func RespondWith(c *fiber.Ctx, err error, status int) error {
	var ce *Error
	if errors.As(err, &ce) {
		if errors.Is(err, ErrTemplateNotFound) {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		}
		return helper.JsonErrorCode(c, status, Code(err), ce.Message, ce.MessageAr)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
