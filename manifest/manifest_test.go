package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webup/humprep/domain"
)

var sampleManifest = fmt.Sprintf(`services:
  proxy:
    image: traefik:v3
    command:
      - "--providers.docker=true"
      # - "--certificatesresolvers.le.acme.caserver=%s"
      - "--entrypoints.websecure.address=:443"
    volumes:
      - /srv/humhub/proxy/acme:/acme
  humhub-app:
    image: humhub/humhub:1.16
    volumes:
      - /srv/humhub/uploads:/var/www/html/uploads
`, domain.StagingCAServer)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docker-compose.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestToggleStagingOn(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	found, err := ToggleStaging(path, true)
	require.NoError(t, err)
	assert.True(t, found)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "      - \"--certificatesresolvers.le.acme.caserver=")
	assert.NotContains(t, string(data), "# - \"--certificatesresolvers")
}

func TestToggleStagingRoundTrip(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	found, err := ToggleStaging(path, true)
	require.NoError(t, err)
	require.True(t, found)

	found, err = ToggleStaging(path, false)
	require.NoError(t, err)
	require.True(t, found)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleManifest, string(data), "on-then-off restores the file byte for byte")
}

func TestToggleStagingLeavesOtherLinesAlone(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	_, err := ToggleStaging(path, true)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	before := strings.Split(sampleManifest, "\n")
	after := strings.Split(string(data), "\n")
	require.Len(t, after, len(before))

	diff := 0
	for i := range before {
		if before[i] != after[i] {
			diff++
		}
	}
	assert.Equal(t, 1, diff, "exactly one line may change")
}

func TestToggleStagingNoDirective(t *testing.T) {
	path := writeManifest(t, "services:\n  humhub-app:\n    image: humhub/humhub\n")

	found, err := ToggleStaging(path, true)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBindsPath(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	bound, err := BindsPath(path, "/srv/humhub/uploads")
	require.NoError(t, err)
	assert.True(t, bound)

	bound, err = BindsPath(path, "/srv/humhub/uploads/.humhub-keep")
	require.NoError(t, err)
	assert.False(t, bound)
}

func TestBindsPathLongSyntax(t *testing.T) {
	content := `services:
  humhub-app:
    volumes:
      - type: bind
        source: /srv/humhub/uploads/.humhub-keep
        target: /keep
`
	path := writeManifest(t, content)

	bound, err := BindsPath(path, "/srv/humhub/uploads/.humhub-keep")
	require.NoError(t, err)
	assert.True(t, bound)
}
