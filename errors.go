package pgsourcerer

import (
	"errors"

	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/catalog"
	"github.com/pgsourcerer/pgsourcerer/exec"
	"github.com/pgsourcerer/pgsourcerer/validate"
)

// ErrMissingConfig indicates Generate was called without enough
// configuration to run (see option.go's Config/Option surface).
var ErrMissingConfig = errors.New("pgsourcerer: missing configuration")

// The engine's external error taxonomy (SPEC_FULL.md §6.4) is raised by
// whichever component owns the failure. These aliases let a caller write
// a single errors.As against the pgsourcerer package regardless of which
// internal component actually produced the error.
type (
	CatalogUnavailableError    = catalog.UnavailableError
	NoProviderError            = capability.NoProviderError
	AmbiguousProviderError     = capability.AmbiguousProviderError
	DependencyCycleError       = capability.CycleError
	PluginExecutionFailedError = exec.PluginExecutionFailed
	EmitConflictError          = validate.EmitConflictError
	SymbolCollisionError       = validate.SymbolCollisionError
	UndefinedReferenceError    = validate.UndefinedReferenceError
)

// IsCatalogUnavailable reports whether err is a CatalogUnavailableError.
func IsCatalogUnavailable(err error) bool {
	var e *CatalogUnavailableError
	return errors.As(err, &e)
}

// IsNoProvider reports whether err is a NoProviderError.
func IsNoProvider(err error) bool {
	var e *NoProviderError
	return errors.As(err, &e)
}

// IsAmbiguousProvider reports whether err is an AmbiguousProviderError.
func IsAmbiguousProvider(err error) bool {
	var e *AmbiguousProviderError
	return errors.As(err, &e)
}

// IsDependencyCycle reports whether err is a DependencyCycleError.
func IsDependencyCycle(err error) bool {
	var e *DependencyCycleError
	return errors.As(err, &e)
}

// IsPluginExecutionFailed reports whether err is a
// PluginExecutionFailedError.
func IsPluginExecutionFailed(err error) bool {
	var e *PluginExecutionFailedError
	return errors.As(err, &e)
}

// IsEmitConflict reports whether err is an EmitConflictError.
func IsEmitConflict(err error) bool {
	var e *EmitConflictError
	return errors.As(err, &e)
}

// IsSymbolCollision reports whether err is a SymbolCollisionError.
func IsSymbolCollision(err error) bool {
	var e *SymbolCollisionError
	return errors.As(err, &e)
}

// IsUndefinedReference reports whether err is an UndefinedReferenceError.
func IsUndefinedReference(err error) bool {
	var e *UndefinedReferenceError
	return errors.As(err, &e)
}
