// pattern: Functional Core

package registry

import "errors"

// Sentinel errors for registry operations. Callers match with errors.Is; the
// returned errors wrap these with the offending name or path.
var (
	// ErrProjectNotFound indicates no project carries the requested name.
	ErrProjectNotFound = errors.New("project not found")

	// ErrDuplicatePath indicates a project with the same canonical path is
	// already registered.
	ErrDuplicatePath = errors.New("project already registered")

	// ErrPathNotFound indicates a path could not be resolved.
	ErrPathNotFound = errors.New("path not found")

	// ErrNotADirectory indicates a resolved path is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrPersistenceRead indicates the registry file could not be read or parsed.
	ErrPersistenceRead = errors.New("failed to read registry")

	// ErrPersistenceWrite indicates the registry file could not be written.
	ErrPersistenceWrite = errors.New("failed to write registry")

	// ErrNoTargetProjects indicates an operation needed an explicit target
	// and received none.
	ErrNoTargetProjects = errors.New("no target projects specified")

	// ErrRegistryBusy indicates another prj process holds the registry lock.
	ErrRegistryBusy = errors.New("registry is locked by another prj process")
)
