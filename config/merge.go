package config

import (
	"fmt"

	"webup/humprep/domain"
	"webup/humprep/system"
)

// Hardcoded fallbacks used when a key is neither in the prior env file nor
// answered by the operator.
var defaults = map[string]string{
	"TZ":                     "Europe/Paris",
	"LETSENCRYPT_EMAIL":      "",
	"HUMHUB_VERSION":         "1.16.2",
	"HUMHUB_HOST":            "humhub.example.org",
	"HUMHUB_BASE_URL":        "https://humhub.example.org",
	"CLIENT_MAX_BODY_SIZE":   "256m",
	"PROXY_TIMEOUT":          "120s",
	"MYSQL_DATABASE":         "humhub",
	"MYSQL_USER":             "humhub",
	"DOCUMENTSERVER_VERSION": "8.0",
	"DOCUMENTSERVER_HOST":    "documents.example.org",
	"MAILER_HOST":            "smtp.example.org",
	"MAILER_PORT":            "587",
	"MAILER_USER":            "",
	"MAILER_HELO":            "",
	"BACKUP_SCHEDULE":        "0 4 * * *",
	"ADMIN_USERNAME":         "admin",
	"ADMIN_EMAIL":            "",
}

// generatedSecrets are the keys that get a random value on first
// provisioning. MAILER_PASSWORD is deliberately not in this list: it belongs
// to a third-party account and can only come from the operator.
var generatedSecrets = []string{
	"MYSQL_PASSWORD",
	"MYSQL_ROOT_PASSWORD",
	"REDIS_PASSWORD",
	"DOCUMENTSERVER_JWT_SECRET",
	"ADMIN_PASSWORD",
}

const secretBytes = 24

// FromPrior builds the working configuration from the parsed prior env file.
// Every key present in the prior file is preserved as-is; missing plain keys
// take the hardcoded fallback and missing secrets are generated. This is the
// merge step the wizard then refines interactively.
func FromPrior(prior map[string]string) (domain.Config, error) {
	pick := func(key string) string {
		if value, ok := prior[key]; ok {
			return value
		}
		return defaults[key]
	}

	c := domain.Config{
		Timezone:          pick("TZ"),
		LetsencryptEmail:  pick("LETSENCRYPT_EMAIL"),
		HumhubVersion:     pick("HUMHUB_VERSION"),
		HumhubHost:        pick("HUMHUB_HOST"),
		BaseURL:           pick("HUMHUB_BASE_URL"),
		ClientMaxBodySize: pick("CLIENT_MAX_BODY_SIZE"),
		ProxyTimeout:      pick("PROXY_TIMEOUT"),
		DBName:            pick("MYSQL_DATABASE"),
		DBUser:            pick("MYSQL_USER"),
		DocserverVersion:  pick("DOCUMENTSERVER_VERSION"),
		DocserverHost:     pick("DOCUMENTSERVER_HOST"),
		MailerHost:        pick("MAILER_HOST"),
		MailerPort:        pick("MAILER_PORT"),
		MailerUser:        pick("MAILER_USER"),
		MailerPassword:    prior["MAILER_PASSWORD"],
		MailerHelo:        pick("MAILER_HELO"),
		BackupSchedule:    pick("BACKUP_SCHEDULE"),
		AdminUsername:     pick("ADMIN_USERNAME"),
		AdminEmail:        pick("ADMIN_EMAIL"),
	}

	SetStaging(&c, prior["LETSENCRYPT_STAGING"] == "true")

	secrets := map[string]*string{
		"MYSQL_PASSWORD":            &c.DBPassword,
		"MYSQL_ROOT_PASSWORD":       &c.DBRootPassword,
		"REDIS_PASSWORD":            &c.RedisPassword,
		"DOCUMENTSERVER_JWT_SECRET": &c.DocserverJWTKey,
		"ADMIN_PASSWORD":            &c.AdminPassword,
	}
	for _, key := range generatedSecrets {
		if value, ok := prior[key]; ok && value != "" {
			*secrets[key] = value
			continue
		}

		value, err := system.GenerateSecret(secretBytes)
		if err != nil {
			return c, fmt.Errorf("unable to generate a value for %s: %w", key, err)
		}
		*secrets[key] = value
	}

	return c, nil
}

// SetStaging keeps the staging flag and the CA server URL consistent: the
// URL is only set while the flag is true.
func SetStaging(c *domain.Config, staging bool) {
	c.LetsencryptStaging = staging
	if staging {
		c.LetsencryptCAServer = domain.StagingCAServer
	} else {
		c.LetsencryptCAServer = ""
	}
}
