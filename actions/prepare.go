package actions

import (
	"fmt"
	"os"

	"webup/humprep/config"
	"webup/humprep/domain"
	"webup/humprep/helpers"
	"webup/humprep/manifest"
	"webup/humprep/platform"
	"webup/humprep/system"
)

// PrepareActionHandler runs the full host-provisioning sequence. Every step
// is idempotent, so re-running after a failure or an interrupt is the
// recovery mechanism. Run one instance at a time: concurrent runs would race
// on the generated files.
func PrepareActionHandler() error {
	plat, err := platform.Detect()
	if err != nil {
		return err
	}
	helpers.Info("Detected OS family: %s", plat.Name())

	helpers.Info("Installing system packages...")
	if err := plat.InstallPackages(); err != nil {
		return err
	}
	if err := plat.InstallRuntime(); err != nil {
		return err
	}

	helpers.Info("Setting up the service account...")
	acct, err := system.EnsureServiceAccount(domain.ServiceUser)
	if err != nil {
		return err
	}
	added, err := system.EnsureRuntimeGroup(domain.ServiceUser, domain.RuntimeGroup)
	if err != nil {
		return err
	}
	if added {
		helpers.Warn("'%s' was added to the '%s' group: the membership takes effect with a new login session", domain.ServiceUser, domain.RuntimeGroup)
	}

	helpers.Info("Creating the data directories...")
	tree := system.Tree{
		Root:       domain.DataRoot,
		Subdirs:    domain.DataDirs,
		Marker:     "uploads/.humhub-keep",
		DirMode:    domain.DirMode,
		MarkerMode: domain.MarkerMode,
		Owner:      acct,
	}
	if err := tree.Reconcile(); err != nil {
		return err
	}

	helpers.Info("Configuring the firewall...")
	if err := plat.ConfigureFirewall(); err != nil {
		return err
	}

	prior, err := config.ParseEnvFile(domain.EnvFilePath)
	if err != nil {
		return err
	}
	if len(prior) > 0 {
		helpers.Info("Found an existing configuration, previous values are offered as defaults")
	}

	cfg, err := config.FromPrior(prior)
	if err != nil {
		return err
	}
	config.RunWizard(&cfg, prior)

	helpers.Info("Writing the configuration files...")
	if err := config.WriteEnvFile(cfg, domain.EnvFilePath, acct); err != nil {
		return err
	}
	if err := config.WriteInstallConfig(cfg, domain.InstallConfigPath, acct); err != nil {
		return err
	}

	if err := ensureManifest(); err != nil {
		return err
	}
	found, err := manifest.ToggleStaging(domain.ManifestPath, cfg.LetsencryptStaging)
	if os.IsNotExist(err) || (err == nil && !found) {
		helpers.Warn("no certificate-authority directive found in the manifest, staging mode not applied")
	} else if err != nil {
		return err
	}

	if err := system.CanUseRuntime(domain.ServiceUser); err != nil {
		helpers.Warn("user '%s' cannot invoke the container runtime yet (a new login session may be required)", domain.ServiceUser)
	}

	helpers.Success("Host prepared")
	fmt.Println("\nNext steps:")
	fmt.Println("  → humprep start core")
	fmt.Println("  → humprep check")
	fmt.Println("  → humprep start all")
	fmt.Println("")

	return nil
}

// the manifest is fatal when missing and unfetchable: everything after this
// point depends on it
func ensureManifest() error {
	if _, err := os.Stat(domain.ManifestPath); err == nil {
		return nil
	}

	helpers.Info("Fetching the deployment manifest...")

	return helpers.Download(domain.DownloadBase+"/docker-compose.yml", domain.ManifestPath)
}
