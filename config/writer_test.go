package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"webup/humprep/domain"
)

func testConfig() domain.Config {
	c, _ := FromPrior(map[string]string{
		"MYSQL_PASSWORD":  "db-pass",
		"ADMIN_PASSWORD":  "admin-pass",
		"MAILER_PASSWORD": "relay-pass",
	})
	return c
}

func TestWriteEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "humhub.env")

	require.NoError(t, WriteEnvFile(testConfig(), path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	values, err := ParseEnvFile(path)
	require.NoError(t, err)

	// the full fixed key set is written, even for empty values
	for _, pair := range testConfig().EnvPairs() {
		assert.Contains(t, values, pair.Key)
	}
	assert.Equal(t, "db-pass", values["MYSQL_PASSWORD"])
}

func TestWriteEnvFileBacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "humhub.env")

	previous := []byte("TZ=UTC\nMYSQL_PASSWORD=old-pass\n")
	require.NoError(t, os.WriteFile(path, previous, 0640))

	require.NoError(t, WriteEnvFile(testConfig(), path, nil))

	backups, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.Len(t, backups, 1, "exactly one timestamped backup expected")

	content, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, previous, content, "the backup holds the pre-run content, byte for byte")
}

func TestWriteInstallConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoinstall.yml")

	require.NoError(t, WriteInstallConfig(testConfig(), path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc installConfig
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, domain.DBContainer, doc.Database.Host)
	assert.Equal(t, "db-pass", doc.Database.Password)
	assert.Equal(t, "admin", doc.Admin.Username)
	assert.Equal(t, "admin-pass", doc.Admin.Password)
	assert.Equal(t, "Europe/Paris", doc.Site.Timezone)
}

func TestWriteInstallConfigBacksUpExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoinstall.yml")

	previous := []byte("database:\n  password: old\n")
	require.NoError(t, os.WriteFile(path, previous, 0640))

	require.NoError(t, WriteInstallConfig(testConfig(), path, nil))

	backups, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.Len(t, backups, 1)

	content, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, previous, content)
}
