package platform

import (
	"os/exec"
	"strings"

	"webup/humprep/domain"
	"webup/humprep/helpers"
)

var debianPackages = []string{"curl", "tar", "openssl", "ca-certificates", "gnupg"}

type debian struct{}

func (p debian) Name() string { return "debian" }

func (p debian) InstallPackages() error {
	if err := domain.NewCommand([]string{"apt-get", "update", "-qq"}).Execute(); err != nil {
		return err
	}

	args := append([]string{"apt-get", "install", "-y", "-qq"}, debianPackages...)

	return domain.NewCommand(args).Execute()
}

func (p debian) InstallRuntime() error {
	if _, err := exec.LookPath("docker"); err == nil {
		helpers.Info("Container runtime already installed, skipping")
		return nil
	}

	steps := [][]string{
		{"apt-get", "install", "-y", "-qq", "docker.io", "docker-compose-v2"},
		{"systemctl", "enable", "--now", "docker"},
	}
	for _, step := range steps {
		if err := domain.NewCommand(step).Execute(); err != nil {
			return err
		}
	}

	return nil
}

// ConfigureFirewall permits http and https through ufw. A host without ufw,
// or with ufw disabled, is skipped with a warning: the operator may manage
// the firewall elsewhere.
func (p debian) ConfigureFirewall() error {
	if _, err := exec.LookPath("ufw"); err != nil {
		helpers.Warn("ufw is not installed, skipping firewall configuration")
		return nil
	}

	status, err := domain.NewCommand([]string{"ufw", "status"}).GetResult()
	if err != nil || !strings.Contains(status, "Status: active") {
		helpers.Warn("ufw is not active, skipping firewall configuration")
		return nil
	}

	changed := false
	for port, rule := range map[string]string{"80/tcp": "http", "443/tcp": "https"} {
		if strings.Contains(status, port) {
			continue
		}

		if err := domain.NewCommand([]string{"ufw", "allow", rule}).Execute(); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		return domain.NewCommand([]string{"ufw", "reload"}).Execute()
	}

	return nil
}
