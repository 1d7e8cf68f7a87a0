package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Authentication related errors
var (
	ErrUserNotFound       = errors.Wrap(NotFoundError, "user not found")
	ErrUserAlreadyExists  = errors.Wrap(ConflictError, "user with this username already exists")
	ErrInvalidCredentials = errors.Wrap(UnAuthorizedError, "invalid credentials")
	ErrWrongPassword      = errors.Wrap(BadParameterError, "current password is incorrect")
)

// Decision flow related errors
var (
	ErrDecisionNotFound  = errors.Wrap(NotFoundError, "decision not found")
	ErrPromptNotFound    = errors.Wrap(NotFoundError, "prompt not found")
	ErrResponseNotFound  = errors.Wrap(NotFoundError, "response not found")
	ErrDuplicateResponse = errors.Wrap(ConflictError, "prompt already answered for this decision")
	ErrPromptSlugTaken   = errors.Wrap(ConflictError, "prompt slug already exists")
	ErrInvalidQuadrant   = errors.Wrap(BadParameterError, "invalid quadrant")
)

// Listing related errors
var (
	ErrInvalidPage    = errors.Wrap(BadParameterError, "invalid page number")
	ErrPageOutOfRange = errors.Wrap(NotFoundError, "invalid page")
)
