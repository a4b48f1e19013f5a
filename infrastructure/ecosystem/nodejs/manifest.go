package nodejs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rios0rios0/depwatch/domain"
)

// Manifest section names, in merge order. When a package is declared in
// more than one section the later section wins.
var sectionOrder = []string{
	sectionDependencies,
	sectionDevDependencies,
	sectionOptionalDependencies,
}

const (
	sectionDependencies         = "dependencies"
	sectionDevDependencies      = "devDependencies"
	sectionOptionalDependencies = "optionalDependencies"
)

// packageManifest is the subset of package.json this tool reads.
type packageManifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// section returns the named dependency section of the manifest.
func (m *packageManifest) section(name string) map[string]string {
	switch name {
	case sectionDependencies:
		return m.Dependencies
	case sectionDevDependencies:
		return m.DevDependencies
	case sectionOptionalDependencies:
		return m.OptionalDependencies
	default:
		return nil
	}
}

// parseManifest decodes a package.json document.
func parseManifest(data []byte) (*packageManifest, error) {
	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	return &manifest, nil
}

// extractDependencies merges the three dependency sections into one map,
// last write wins in section order.
func extractDependencies(manifest *packageManifest) map[string]string {
	declared := make(map[string]string)
	for _, name := range sectionOrder {
		for pkg, rng := range manifest.section(name) {
			declared[pkg] = rng
		}
	}
	return declared
}

// lockEntry is one pinned package inside a package-lock.json.
type lockEntry struct {
	Version string `json:"version"`
}

// lockFile covers both lock formats: the v1 format keys entries directly by
// package name under "dependencies"; v2 and later key them by the
// node_modules path under "packages".
type lockFile struct {
	LockfileVersion int                  `json:"lockfileVersion"`
	Dependencies    map[string]lockEntry `json:"dependencies"`
	Packages        map[string]lockEntry `json:"packages"`
}

const nodeModulesPrefix = "node_modules/"

// parseLockVersions extracts exact pinned versions from a package-lock.json
// document, supporting both lock formats. Nested (transitive) entries under
// a dependency's own node_modules tree are ignored.
func parseLockVersions(data []byte) (map[string]string, error) {
	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse package-lock.json: %w", err)
	}

	versions := make(map[string]string)
	for name, entry := range lock.Dependencies {
		if entry.Version != "" {
			versions[name] = entry.Version
		}
	}
	for path, entry := range lock.Packages {
		name, ok := strings.CutPrefix(path, nodeModulesPrefix)
		if !ok || entry.Version == "" {
			continue // root entry ("") or non-module path
		}
		if strings.Contains(name, nodeModulesPrefix) {
			continue // nested transitive install
		}
		versions[name] = entry.Version
	}
	return versions, nil
}

// resolveInstalledVersions maps each declared package to its exact installed
// version: the lock artifact's pinned version when available, otherwise the
// declared range with its operators stripped.
func resolveInstalledVersions(
	locked map[string]string,
	declared map[string]string,
) map[string]string {
	installed := make(map[string]string, len(declared))
	for name, rng := range declared {
		if pinned, ok := locked[name]; ok && pinned != "" {
			installed[name] = pinned
			continue
		}
		installed[name] = domain.NormalizeVersion(rng)
	}
	return installed
}
