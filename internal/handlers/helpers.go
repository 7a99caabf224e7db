package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "financetracker/internal/errors"
	"financetracker/internal/middleware"
	"financetracker/internal/respond"
	"financetracker/internal/services"
)

// anonymousActor is recorded in the audit trail when no role is present.
const anonymousActor = "anonymous"

// getActor returns the authenticated role for audit entries.
func getActor(c *gin.Context) string {
	if role := middleware.GetRole(c); role != "" {
		return role
	}
	return anonymousActor
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// bindError converts a binding or validation failure into ErrInvalidInput.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// parseDate parses a calendar date (YYYY-MM-DD). Full RFC 3339 timestamps
// are accepted and truncated to their date.
func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is required")
	}
	if t, err := time.Parse(services.DateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" must be a date in YYYY-MM-DD format")
}

// parseOptionalDate parses a date that may be absent.
func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseNullableDate converts a nullable date string into a nullable date.
// An empty string clears the field like an explicit null.
func parseNullableDate(field string, value services.Nullable[string]) (services.Nullable[time.Time], error) {
	if !value.Set {
		return services.Nullable[time.Time]{}, nil
	}
	t, err := parseOptionalDate(field, value.Value)
	if err != nil {
		return services.Nullable[time.Time]{}, err
	}
	if t == nil {
		return services.Null[time.Time](), nil
	}
	return services.Some(*t), nil
}

// respondWithError writes the failure envelope for err.
func respondWithError(c *gin.Context, err error) {
	respond.Error(c, err)
}

// auditEntry describes the current request for the audit trail.
func auditEntry(c *gin.Context, action, resourceType string, resourceID uint, changes map[string]any) services.AuditEntry {
	return services.AuditEntry{
		Actor:        getActor(c),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		RequestID:    middleware.GetRequestID(c),
		IPAddress:    c.ClientIP(),
		Changes:      changes,
	}
}

// hasBody reports whether r carries a request body. Chunked bodies have an
// unknown length of -1.
func hasBody(r *http.Request) bool {
	return r.ContentLength != 0 && r.Body != nil && r.Body != http.NoBody
}
