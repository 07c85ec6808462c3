package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidToken     = errors.New("invalid access token")
	ErrExpiredToken     = errors.New("expired access token")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrForbidden        = errors.New("operation not allowed")
)

func NewUnauthenticatedError() *ApiErr {
	return newSentinelErr(http.StatusUnauthorized, ErrUnauthenticated,
		"Not authorized to access this route - No token provided")
}

// NewUnauthorizedError is a 401 for a token that could not be turned into a
// usable identity for reasons other than its signature or expiry.
func NewUnauthorizedError(message string) *ApiErr {
	return newSentinelErr(http.StatusUnauthorized, ErrUnauthenticated, message)
}

func NewInvalidTokenError() *ApiErr {
	return newSentinelErr(http.StatusUnauthorized, ErrInvalidToken, "Invalid token")
}

func NewExpiredTokenError() *ApiErr {
	return newSentinelErr(http.StatusUnauthorized, ErrExpiredToken, "Token expired")
}

func NewIdentityNotFoundError() *ApiErr {
	return newSentinelErr(http.StatusNotFound, ErrIdentityNotFound, "User not found")
}

func NewForbiddenRoleError(role, method, route string) *ApiErr {
	return newSentinelErr(http.StatusForbidden, ErrForbidden,
		fmt.Sprintf("User role '%s' is not authorized to access %s %s", role, method, route))
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsIdentityNotFound(err error) bool {
	return errors.Is(err, ErrIdentityNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
