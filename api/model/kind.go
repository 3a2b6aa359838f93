package model

import (
	"github.com/gofiber/fiber/v2"
)

// Kind classifies a pipeline failure. Status codes are derived from the
// kind, never from message text.
type Kind struct {
	s string
}

var (
	MissingInput             = Kind{"missing_input"}
	MissingURL               = Kind{"missing_url"}
	PayloadTooLarge          = Kind{"payload_too_large"}
	BadImageFormat           = Kind{"bad_image_format"}
	SourceExpired            = Kind{"source_expired"}
	RateLimited              = Kind{"rate_limited"}
	UpstreamServerError      = Kind{"upstream_server_error"}
	UpstreamError            = Kind{"upstream_error"}
	UpstreamHostingInvalid   = Kind{"upstream_hosting_invalid"}
	UpstreamBadResponse      = Kind{"upstream_bad_response"}
	UpstreamProcessingFailed = Kind{"upstream_processing_failed"}
	UpstreamInvalidResult    = Kind{"upstream_invalid_result"}
	FetchFailed              = Kind{"fetch_failed"}
	NetworkUnreachable       = Kind{"network_unreachable"}
	Uncategorized            = Kind{"uncategorized"}
)

func (k Kind) String() string {
	return k.s
}

func (k Kind) Status() int {
	switch k {
	case MissingInput, MissingURL, PayloadTooLarge, BadImageFormat:
		return fiber.StatusBadRequest
	case SourceExpired:
		return fiber.StatusNotFound
	case RateLimited:
		return fiber.StatusTooManyRequests
	case NetworkUnreachable:
		return fiber.StatusServiceUnavailable
	}

	return fiber.StatusInternalServerError
}

// Error is the single failure shape crossing service boundaries. It is
// converted to exactly one JSON body + status at the fiber error handler.
type Error struct {
	Kind    Kind
	Message string
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}
