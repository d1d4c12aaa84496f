package organization

import "errors"

// Organization domain errors
var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationInactive = errors.New("organization is not active")
	ErrContactEmailExists   = errors.New("contact email already registered")
	ErrContactPhoneExists   = errors.New("contact phone already registered")
	ErrLocationNotSet       = errors.New("organization location is not configured")
)
