package cloud

import "errors"

// Error values for APIDOG Cloud responses
var (
	ErrMissingCredentials = errors.New("missing APIDOG project id or token")
	ErrUnauthorized       = errors.New("unauthorized - invalid token")
	ErrForbidden          = errors.New("forbidden - token lacks access to this project")
	ErrProjectNotFound    = errors.New("project not found - check project ID")
	ErrVersionConflict    = errors.New("version conflict - cloud project changed since last sync")
	ErrServerError        = errors.New("APIDOG Cloud server error")
)
