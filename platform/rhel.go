package platform

import (
	"os/exec"

	"webup/humprep/domain"
	"webup/humprep/helpers"
)

var rhelPackages = []string{"curl", "tar", "openssl", "policycoreutils-python-utils"}

type rhel struct{}

func (p rhel) Name() string { return "rhel" }

func (p rhel) InstallPackages() error {
	args := append([]string{"dnf", "install", "-y"}, rhelPackages...)

	return domain.NewCommand(args).Execute()
}

func (p rhel) InstallRuntime() error {
	if _, err := exec.LookPath("docker"); err == nil {
		helpers.Info("Container runtime already installed, skipping")
		return nil
	}

	steps := [][]string{
		{"dnf", "install", "-y", "dnf-plugins-core"},
		{"dnf", "config-manager", "--add-repo", "https://download.docker.com/linux/centos/docker-ce.repo"},
		{"dnf", "install", "-y", "docker-ce", "docker-ce-cli", "containerd.io", "docker-compose-plugin"},
		{"systemctl", "enable", "--now", "docker"},
	}
	for _, step := range steps {
		if err := domain.NewCommand(step).Execute(); err != nil {
			return err
		}
	}

	return nil
}

// ConfigureFirewall permits http and https through firewalld. Rules are
// queried before being added and the firewall is reloaded once, only when
// something changed.
func (p rhel) ConfigureFirewall() error {
	changed := false

	for _, service := range []string{"http", "https"} {
		query := domain.NewCommand([]string{"firewall-cmd", "--permanent", "--query-service=" + service})
		if _, err := query.GetResult(); err == nil {
			continue
		}

		add := domain.NewCommand([]string{"firewall-cmd", "--permanent", "--add-service=" + service})
		if err := add.Execute(); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		return domain.NewCommand([]string{"firewall-cmd", "--reload"}).Execute()
	}

	return nil
}
