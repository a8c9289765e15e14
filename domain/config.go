package domain

import "os"

// Paths and names shared by the provisioner and the checker.
const (
	DataRoot          = "/srv/humhub"
	WorkDir           = "/opt/humprep"
	EnvFilePath       = WorkDir + "/humhub.env"
	ManifestPath      = WorkDir + "/docker-compose.yml"
	InstallConfigPath = DataRoot + "/config/autoinstall.yml"
	MarkerPath        = DataRoot + "/uploads/.humhub-keep"

	ServiceUser  = "humhub"
	RuntimeGroup = "docker"

	WorkerContainer = "humhub-worker"
	DBContainer     = "humhub-db"

	DirMode    os.FileMode = 0750
	MarkerMode os.FileMode = 0600
	ConfigMode os.FileMode = 0640

	DownloadBase    = "https://raw.githubusercontent.com/webup/humhub-prod/master"
	StagingCAServer = "https://acme-staging-v02.api.letsencrypt.org/directory"
)

// DataDirs is the directory tree created under DataRoot. Paths are relative
// to the root and created with DirMode.
var DataDirs = []string{
	"db",
	"redis",
	"config",
	"uploads",
	"modules",
	"themes",
	"proxy/acme",
	"documents",
	"backups",
}

// CoreServices is the minimal compose subset started before the preflight
// check. The worker and the backup job are only started once the check
// passes.
var CoreServices = []string{"proxy", "humhub-db", "humhub-redis", "humhub-app"}

// Config is the wizard's working set: every value written to the env file
// and the install-config file. It is populated from defaults, then from a
// parsed prior env file, then from interactive answers, and passed
// explicitly to the writers.
type Config struct {
	Timezone string

	LetsencryptEmail    string
	LetsencryptStaging  bool
	LetsencryptCAServer string

	HumhubVersion string
	HumhubHost    string
	BaseURL       string

	ClientMaxBodySize string
	ProxyTimeout      string

	DBName         string
	DBUser         string
	DBPassword     string
	DBRootPassword string

	RedisPassword string

	DocserverVersion string
	DocserverHost    string
	DocserverJWTKey  string

	MailerHost     string
	MailerPort     string
	MailerUser     string
	MailerPassword string
	MailerHelo     string

	BackupSchedule string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// EnvPair is one line of the generated env file.
type EnvPair struct {
	Key   string
	Value string
}

// EnvPairs returns the full fixed key set in the order it is written to the
// env file.
func (c Config) EnvPairs() []EnvPair {
	staging := "false"
	if c.LetsencryptStaging {
		staging = "true"
	}

	return []EnvPair{
		{"TZ", c.Timezone},
		{"LETSENCRYPT_EMAIL", c.LetsencryptEmail},
		{"LETSENCRYPT_STAGING", staging},
		{"LETSENCRYPT_CA_SERVER", c.LetsencryptCAServer},
		{"HUMHUB_VERSION", c.HumhubVersion},
		{"HUMHUB_HOST", c.HumhubHost},
		{"HUMHUB_BASE_URL", c.BaseURL},
		{"CLIENT_MAX_BODY_SIZE", c.ClientMaxBodySize},
		{"PROXY_TIMEOUT", c.ProxyTimeout},
		{"MYSQL_DATABASE", c.DBName},
		{"MYSQL_USER", c.DBUser},
		{"MYSQL_PASSWORD", c.DBPassword},
		{"MYSQL_ROOT_PASSWORD", c.DBRootPassword},
		{"REDIS_PASSWORD", c.RedisPassword},
		{"DOCUMENTSERVER_VERSION", c.DocserverVersion},
		{"DOCUMENTSERVER_HOST", c.DocserverHost},
		{"DOCUMENTSERVER_JWT_SECRET", c.DocserverJWTKey},
		{"MAILER_HOST", c.MailerHost},
		{"MAILER_PORT", c.MailerPort},
		{"MAILER_USER", c.MailerUser},
		{"MAILER_PASSWORD", c.MailerPassword},
		{"MAILER_HELO", c.MailerHelo},
		{"BACKUP_SCHEDULE", c.BackupSchedule},
		{"ADMIN_USERNAME", c.AdminUsername},
		{"ADMIN_EMAIL", c.AdminEmail},
		{"ADMIN_PASSWORD", c.AdminPassword},
	}
}
