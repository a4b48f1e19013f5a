package domain

// RepositoryKind identifies the dependency ecosystem of a repository.
type RepositoryKind string

const (
	// KindNodeJS marks repositories managed through a package.json manifest.
	KindNodeJS RepositoryKind = "nodejs"
	// KindGoModule marks repositories managed through a go.mod file.
	KindGoModule RepositoryKind = "gomod"
)

// Repository represents a single repository discovered on the local filesystem.
type Repository struct {
	Path         string         // Path to the repository root
	Name         string         // Display name (git remote basename or directory name)
	Kind         RepositoryKind // Ecosystem this repository belongs to
	ManifestPath string         // Path to package.json or go.mod
	LockPath     string         // Path to package-lock.json or go.sum; empty when absent
}

// DependencyRecord is the classified state of one declared dependency.
type DependencyRecord struct {
	Name           string
	Installed      string // Version currently pinned or declared
	Latest         string // Latest published version; empty when the lookup failed
	Classification Classification
	AutoUpdatable  bool // True only for patch-level differences
}

// ChangedDependency describes one manifest edit that was actually written.
type ChangedDependency struct {
	From       string
	To         string
	UpdateType Classification
	Sections   []string // Manifest sections rewritten (package.json only)
}

// UpdateResult is the per-repository outcome of an update attempt.
type UpdateResult struct {
	Updated       bool
	Changed       map[string]ChangedDependency
	LockRefreshed bool // Whether the follow-up install/tidy step succeeded
}

// CommandResult is the outcome of a best-effort external command.
// Failures are data, not errors: callers degrade a flag and keep going.
type CommandResult struct {
	OK     bool
	Reason string // Populated when OK is false
	Output string
}
