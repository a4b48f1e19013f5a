package nodejs //nolint:testpackage // tests unexported functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDependencies(t *testing.T) {
	t.Parallel()

	t.Run("should merge the three sections with last-write-wins precedence", func(t *testing.T) {
		t.Parallel()

		// given
		manifest, err := parseManifest([]byte(`{
			"name": "fixture",
			"dependencies": {"shared": "^1.0.0", "axios": "^0.21.1"},
			"devDependencies": {"shared": "^2.0.0", "jest": "^29.0.0"},
			"optionalDependencies": {"shared": "^3.0.0", "fsevents": "^2.3.2"}
		}`))
		require.NoError(t, err)

		// when
		declared := extractDependencies(manifest)

		// then
		assert.Len(t, declared, 4)
		assert.Equal(t, "^3.0.0", declared["shared"], "optional overwrites development overwrites direct")
		assert.Equal(t, "^0.21.1", declared["axios"])
		assert.Equal(t, "^29.0.0", declared["jest"])
		assert.Equal(t, "^2.3.2", declared["fsevents"])
	})

	t.Run("should tolerate missing sections", func(t *testing.T) {
		t.Parallel()

		// given
		manifest, err := parseManifest([]byte(`{"name": "fixture"}`))
		require.NoError(t, err)

		// when
		declared := extractDependencies(manifest)

		// then
		assert.Empty(t, declared)
	})

	t.Run("should reject a malformed manifest", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := parseManifest([]byte(`{"dependencies": [`))

		// then
		assert.Error(t, err)
	})
}

func TestParseLockVersions(t *testing.T) {
	t.Parallel()

	t.Run("should read the older format keyed by package name", func(t *testing.T) {
		t.Parallel()

		// given
		lock := []byte(`{
			"lockfileVersion": 1,
			"dependencies": {
				"axios": {"version": "0.21.1"},
				"lodash": {"version": "4.17.21"}
			}
		}`)

		// when
		versions, err := parseLockVersions(lock)

		// then
		require.NoError(t, err)
		assert.Equal(t, "0.21.1", versions["axios"])
		assert.Equal(t, "4.17.21", versions["lodash"])
	})

	t.Run("should read the newer format keyed by node_modules path", func(t *testing.T) {
		t.Parallel()

		// given
		lock := []byte(`{
			"lockfileVersion": 3,
			"packages": {
				"": {"version": "1.0.0"},
				"node_modules/axios": {"version": "0.21.1"},
				"node_modules/@babel/core": {"version": "7.23.0"},
				"node_modules/axios/node_modules/follow-redirects": {"version": "1.14.0"}
			}
		}`)

		// when
		versions, err := parseLockVersions(lock)

		// then
		require.NoError(t, err)
		assert.Equal(t, "0.21.1", versions["axios"])
		assert.Equal(t, "7.23.0", versions["@babel/core"])
		assert.NotContains(t, versions, "", "root entry is not a dependency")
		assert.NotContains(t, versions, "axios/node_modules/follow-redirects")
	})

	t.Run("should reject a malformed lock file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := parseLockVersions([]byte("not json"))

		// then
		assert.Error(t, err)
	})
}

func TestResolveInstalledVersions(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the lock artifact's pinned versions", func(t *testing.T) {
		t.Parallel()

		// given
		declared := map[string]string{"axios": "^0.21.1", "lodash": "~4.17.0"}
		locked := map[string]string{"axios": "0.21.3"}

		// when
		installed := resolveInstalledVersions(locked, declared)

		// then
		assert.Equal(t, "0.21.3", installed["axios"])
		assert.Equal(t, "4.17.0", installed["lodash"], "falls back to the stripped declared range")
	})

	t.Run("should strip range operators without a lock artifact", func(t *testing.T) {
		t.Parallel()

		// given
		declared := map[string]string{
			"a": "^1.0.0",
			"b": "~2.1.0",
			"c": ">=3.0.0",
			"d": "v4.0.0",
		}

		// when
		installed := resolveInstalledVersions(nil, declared)

		// then
		assert.Equal(t, "1.0.0", installed["a"])
		assert.Equal(t, "2.1.0", installed["b"])
		assert.Equal(t, "3.0.0", installed["c"])
		assert.Equal(t, "4.0.0", installed["d"])
	})
}
