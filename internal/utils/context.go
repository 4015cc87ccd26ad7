// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JWT token
// generation and validation, HTTP response writing, and UUID generation.
package utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkamel/corsite-backend/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated account id in the
// request context. Used together with GetUserIDFromContext for type-safe
// retrieval.
var UserIDCtxKey = contextKey("userID")

// RoleCtxKey is the key used to store the authenticated account role in the
// request context.
var RoleCtxKey = contextKey("role")

// LocaleCtxKey is the key used to store the negotiated response locale in
// the request context.
var LocaleCtxKey = contextKey("locale")

// BypassLocalizationCtxKey is the key marking requests that asked for the
// raw, unlocalized response payload.
var BypassLocalizationCtxKey = contextKey("bypassLocalization")

// GetUserIDFromContext retrieves the authenticated account id from the
// context.
//
// Returns the id and an ok flag:
//   - ok == true  — value is found and has the correct uuid.UUID type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext retrieves the authenticated account role from the
// context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	return role, ok
}

// GetLocaleFromContext retrieves the negotiated response locale from the
// context. Falls back to [models.DefaultLocale] when the middleware has not
// run.
func GetLocaleFromContext(ctx context.Context) models.Locale {
	locale, ok := ctx.Value(LocaleCtxKey).(models.Locale)
	if !ok {
		return models.DefaultLocale
	}
	return locale
}

// LocalizationBypassed reports whether the request asked for the raw,
// unlocalized payload.
func LocalizationBypassed(ctx context.Context) bool {
	bypass, ok := ctx.Value(BypassLocalizationCtxKey).(bool)
	return ok && bypass
}
