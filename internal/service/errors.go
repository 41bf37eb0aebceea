package service

import "errors"

var (
	// ErrHomeyNotFound is raised when a requested Homey ID is not present
	// in the directory.
	ErrHomeyNotFound = errors.New("homey not found")

	// ErrHomeyNoLongerExists is raised when the persisted active selection
	// references a Homey that has since been removed from the account.
	ErrHomeyNoLongerExists = errors.New("selected homey no longer exists")

	// ErrInvalidSelection is raised when neither explicit matching nor the
	// interactive prompt yields a Homey.
	ErrInvalidSelection = errors.New("no homey selected")
)

// Fixed settings keys shared by the session manager and the resolver.
const (
	// legacyTokenKey held the plain account token in earlier releases.
	// It is consumed (migrated and erased) at most once.
	legacyTokenKey = "cloud.token"

	// activeSelectionKey stores the persisted (id, name) active selection.
	activeSelectionKey = "homey.active"
)
