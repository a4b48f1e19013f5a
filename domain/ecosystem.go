package domain

import "context"

// Ecosystem abstracts a dependency ecosystem (Node.js packages, Go modules).
// Each implementation owns the full cycle for its kind: detection, reading
// and classifying the declared dependencies, and applying approved updates.
type Ecosystem interface {
	// Kind returns the repository kind this ecosystem handles.
	Kind() RepositoryKind

	// Detect inspects a directory and, when its manifest is present, returns
	// the Repository describing it.
	Detect(dir string) (Repository, bool)

	// Analyze reads the repository's manifest (and lock artifact when
	// present), resolves the latest known version of every dependency, and
	// returns one classified record per dependency.
	Analyze(ctx context.Context, repo Repository) ([]DependencyRecord, error)

	// ApplyUpdates rewrites the manifest for every approved name->version
	// pair and triggers the ecosystem's lock regeneration as a best-effort
	// follow-up. Rewriting an already-updated manifest is a no-op.
	ApplyUpdates(ctx context.Context, repo Repository, approved map[string]string) (*UpdateResult, error)
}

// Runner executes external commands (npm install, go mod tidy) on behalf of
// an ecosystem. Results are never fatal for the caller.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) CommandResult
}
