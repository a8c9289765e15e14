package config

import (
	"fmt"

	"github.com/Songmu/prompter"

	"webup/humprep/domain"
)

// RunWizard walks the operator through every configuration value, showing
// the merged value as the default so pressing enter keeps it. Secrets are
// prompted without echo; an empty answer keeps the current value.
func RunWizard(c *domain.Config, prior map[string]string) {
	fmt.Printf("\n ▶ ️ Site configuration\n\n")

	c.Timezone = prompter.Prompt("Timezone", c.Timezone)
	c.HumhubVersion = prompter.Prompt("HumHub version", c.HumhubVersion)
	c.HumhubHost = prompter.Prompt("Public hostname", c.HumhubHost)
	c.BaseURL = prompter.Prompt("Base URL", c.BaseURL)
	c.ClientMaxBodySize = prompter.Prompt("Max upload size", c.ClientMaxBodySize)
	c.ProxyTimeout = prompter.Prompt("Proxy timeout", c.ProxyTimeout)

	fmt.Printf("\n ▶ ️ Certificates\n\n")

	c.LetsencryptEmail = prompter.Prompt("Let's Encrypt contact email", c.LetsencryptEmail)
	SetStaging(c, prompter.YN("Use the Let's Encrypt staging CA (for testing)?", c.LetsencryptStaging))

	fmt.Printf("\n ▶ ️ Database and cache\n\n")

	c.DBName = prompter.Prompt("Database name", c.DBName)
	c.DBUser = prompter.Prompt("Database user", c.DBUser)
	promptSecret("Database password", &c.DBPassword, prior["MYSQL_PASSWORD"])
	promptSecret("Database root password", &c.DBRootPassword, prior["MYSQL_ROOT_PASSWORD"])
	promptSecret("Redis password", &c.RedisPassword, prior["REDIS_PASSWORD"])

	fmt.Printf("\n ▶ ️ Document server\n\n")

	c.DocserverVersion = prompter.Prompt("Document server version", c.DocserverVersion)
	c.DocserverHost = prompter.Prompt("Document server hostname", c.DocserverHost)
	promptSecret("Document server JWT secret", &c.DocserverJWTKey, prior["DOCUMENTSERVER_JWT_SECRET"])

	fmt.Printf("\n ▶ ️ Outbound mail\n\n")

	c.MailerHost = prompter.Prompt("SMTP relay host", c.MailerHost)
	c.MailerPort = prompter.Prompt("SMTP relay port", c.MailerPort)
	c.MailerUser = prompter.Prompt("SMTP relay user", c.MailerUser)
	promptMailerPassword(c)
	c.MailerHelo = prompter.Prompt("HELO name", c.MailerHelo)

	fmt.Printf("\n ▶ ️ Backups and admin account\n\n")

	c.BackupSchedule = prompter.Prompt("Backup schedule (cron)", c.BackupSchedule)
	c.AdminUsername = prompter.Prompt("Admin username", c.AdminUsername)
	c.AdminEmail = prompter.Prompt("Admin email", c.AdminEmail)
	promptSecret("Admin password", &c.AdminPassword, prior["ADMIN_PASSWORD"])
}

// promptSecret asks for a replacement only when a prior value exists. Fresh
// installs get the generated value from the merge step without a prompt.
func promptSecret(label string, value *string, prior string) {
	if prior == "" {
		return
	}

	input := prompter.Password(label + " (empty to keep current)")
	if input != "" {
		*value = input
	}
}

// The relay password is a third-party credential: it is never generated, so
// a fresh install has to provide it.
func promptMailerPassword(c *domain.Config) {
	if c.MailerPassword != "" {
		input := prompter.Password("SMTP relay password (empty to keep current)")
		if input != "" {
			c.MailerPassword = input
		}
		return
	}

	for c.MailerPassword == "" {
		c.MailerPassword = prompter.Password("SMTP relay password (required)")
	}
}
