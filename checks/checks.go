// Package checks implements the preflight invariants verified between
// starting the core containers and starting the full stack. The checks run
// in a fixed order and stop at the first fatal failure so the operator fixes
// issues one at a time.
package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"webup/humprep/domain"
	"webup/humprep/helpers"
	"webup/humprep/manifest"
)

// Runner abstracts external command execution so the container-runtime
// checks are testable without docker.
type Runner func(name string, args ...string) (string, error)

func execRunner(name string, args ...string) (string, error) {
	return domain.NewCommand(append([]string{name}, args...)).GetResult()
}

// Checker holds the observed-state inputs of the preflight invariants.
type Checker struct {
	InstallConfig string
	DBDir         string
	ConfigDir     string
	Manifest      string
	Marker        string
	Worker        string
	ServiceUser   string

	// Permissive downgrades a wrong install-config mode to a warning.
	Permissive bool

	Run Runner
}

// NewChecker builds a Checker against the standard paths.
func NewChecker(permissive bool) Checker {
	return Checker{
		InstallConfig: domain.InstallConfigPath,
		DBDir:         domain.DataRoot + "/db",
		ConfigDir:     domain.DataRoot + "/config",
		Manifest:      domain.ManifestPath,
		Marker:        domain.MarkerPath,
		Worker:        domain.WorkerContainer,
		ServiceUser:   domain.ServiceUser,
		Permissive:    permissive,
		Run:           execRunner,
	}
}

// RunAll executes every check in order and returns the first fatal failure,
// or nil when the host is ready for the full stack.
func (c Checker) RunAll() error {
	steps := []struct {
		label string
		check func() error
	}{
		{"install config present", c.checkInstallConfigExists},
		{"install config permissions", c.checkInstallConfigMode},
		{"database directory empty", c.checkDBDirEmpty},
		{"config directory clean", c.checkConfigDirClean},
		{"worker container stopped", c.checkWorkerStopped},
		{"persistent-storage marker not mounted", c.checkMarkerNotMounted},
		{"runtime access for service account", c.checkRuntimeAccess},
	}

	for _, step := range steps {
		if err := step.check(); err != nil {
			return err
		}
		helpers.Success(step.label)
	}

	return nil
}

func (c Checker) checkInstallConfigExists() error {
	if _, err := os.Stat(c.InstallConfig); err != nil {
		return fmt.Errorf("install config %s is missing: run 'humprep prepare' first", c.InstallConfig)
	}

	return nil
}

func (c Checker) checkInstallConfigMode() error {
	info, err := os.Stat(c.InstallConfig)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode == 0640 || mode == 0644 {
		return nil
	}

	if c.Permissive {
		helpers.Warn("install config %s has mode %#o, expected 0640 or 0644", c.InstallConfig, mode)
		return nil
	}

	return fmt.Errorf("install config %s has mode %#o, expected 0640 or 0644", c.InstallConfig, mode)
}

func (c Checker) checkDBDirEmpty() error {
	entries, err := os.ReadDir(c.DBDir)
	if err != nil {
		return fmt.Errorf("database directory %s is not readable: %w", c.DBDir, err)
	}

	if len(entries) > 0 {
		return fmt.Errorf("database directory %s is not empty: the installer would refuse to initialize over existing data", c.DBDir)
	}

	return nil
}

// The config directory may only hold the install config and its timestamped
// backups. Anything else is a leftover from a prior partial install.
func (c Checker) checkConfigDirClean() error {
	entries, err := os.ReadDir(c.ConfigDir)
	if err != nil {
		return fmt.Errorf("config directory %s is not readable: %w", c.ConfigDir, err)
	}

	base := filepath.Base(c.InstallConfig)
	for _, entry := range entries {
		name := entry.Name()
		if name == base || strings.HasPrefix(name, base+".") {
			continue
		}
		return fmt.Errorf("config directory %s contains an unexpected file '%s': remove leftovers from a previous install", c.ConfigDir, name)
	}

	return nil
}

func (c Checker) checkWorkerStopped() error {
	output, err := c.Run("docker", "ps", "-q", "--filter", "name="+c.Worker)
	if err != nil {
		return fmt.Errorf("unable to query the container runtime: %w", err)
	}

	if strings.TrimSpace(output) != "" {
		return fmt.Errorf("worker container '%s' is running: stop it before the first-run installer executes", c.Worker)
	}

	return nil
}

func (c Checker) checkMarkerNotMounted() error {
	bound, err := manifest.BindsPath(c.Manifest, c.Marker)
	if err != nil {
		return fmt.Errorf("unable to inspect the manifest: %w", err)
	}

	if bound {
		return fmt.Errorf("persistent-storage marker %s is bind-mounted in the manifest", c.Marker)
	}

	return nil
}

// Warning only: group membership added by the provisioner is resolved at
// login time, so this may fail right after provisioning without being wrong.
func (c Checker) checkRuntimeAccess() error {
	if _, err := c.Run("sudo", "-u", c.ServiceUser, "docker", "info"); err != nil {
		helpers.Warn("user '%s' cannot invoke the container runtime yet (a new login session may be required)", c.ServiceUser)
	}

	return nil
}
