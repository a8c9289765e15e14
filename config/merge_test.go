package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webup/humprep/domain"
)

func TestFromPriorPreservesSecrets(t *testing.T) {
	prior := map[string]string{
		"MYSQL_PASSWORD":  "kept-as-is",
		"MAILER_PASSWORD": "relay-secret",
		"HUMHUB_HOST":     "social.example.org",
	}

	c, err := FromPrior(prior)
	require.NoError(t, err)

	assert.Equal(t, "kept-as-is", c.DBPassword, "a provisioned secret survives a re-run untouched")
	assert.Equal(t, "relay-secret", c.MailerPassword)
	assert.Equal(t, "social.example.org", c.HumhubHost)
}

func TestFromPriorGeneratesMissingSecrets(t *testing.T) {
	c, err := FromPrior(map[string]string{})
	require.NoError(t, err)

	for name, value := range map[string]string{
		"MYSQL_PASSWORD":            c.DBPassword,
		"MYSQL_ROOT_PASSWORD":       c.DBRootPassword,
		"REDIS_PASSWORD":            c.RedisPassword,
		"DOCUMENTSERVER_JWT_SECRET": c.DocserverJWTKey,
		"ADMIN_PASSWORD":            c.AdminPassword,
	} {
		assert.NotEmpty(t, value, "%s should be generated on first run", name)
	}

	// generated values differ from each other
	assert.NotEqual(t, c.DBPassword, c.DBRootPassword)

	// the relay credential belongs to a third party and is never invented
	assert.Empty(t, c.MailerPassword)
}

func TestFromPriorFallsBackToDefaults(t *testing.T) {
	c, err := FromPrior(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "humhub", c.DBName)
	assert.Equal(t, "0 4 * * *", c.BackupSchedule)
	assert.Equal(t, "admin", c.AdminUsername)
}

func TestSetStagingKeepsFlagAndURLConsistent(t *testing.T) {
	var c domain.Config

	SetStaging(&c, true)
	assert.True(t, c.LetsencryptStaging)
	assert.Equal(t, domain.StagingCAServer, c.LetsencryptCAServer)

	SetStaging(&c, false)
	assert.False(t, c.LetsencryptStaging)
	assert.Empty(t, c.LetsencryptCAServer)
}

func TestFromPriorReadsStagingFlag(t *testing.T) {
	c, err := FromPrior(map[string]string{"LETSENCRYPT_STAGING": "true"})
	require.NoError(t, err)

	assert.True(t, c.LetsencryptStaging)
	assert.Equal(t, domain.StagingCAServer, c.LetsencryptCAServer)
}
