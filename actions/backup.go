package actions

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/Songmu/prompter"
	"github.com/jhoonb/archivex"

	"webup/humprep/config"
	"webup/humprep/domain"
	"webup/humprep/helpers"
	"webup/humprep/utils"
)

// BackupActionHandler archives the configuration files and a database dump
// into a timestamped tar.gz, optionally encrypted with a passphrase.
func BackupActionHandler(encrypt bool, outputOpt *string) error {

	env, err := config.ParseEnvFile(domain.EnvFilePath)
	if err != nil {
		return err
	}
	if len(env) == 0 {
		return fmt.Errorf("no configuration found at %s: nothing to backup", domain.EnvFilePath)
	}

	workDir, err := os.MkdirTemp("", "humprep_backup")
	if err != nil {
		return fmt.Errorf("unable to create a backup directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	// config files
	configDir := path.Join(workDir, "backup", "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	for _, file := range []string{domain.EnvFilePath, domain.InstallConfigPath} {
		if err := utils.CopyFileContents(file, path.Join(configDir, path.Base(file))); err != nil {
			return fmt.Errorf("unable to backup a config file: %w", err)
		}
	}

	// database dump
	dbDir := path.Join(workDir, "backup", "databases")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}
	if err := makeDump(env, dbDir); err != nil {
		return fmt.Errorf("unable to backup the database: %w", err)
	}

	tar := new(archivex.TarFile)
	tar.Create(path.Join(workDir, "backup_archive.tar.gz"))
	tar.AddAll(path.Join(workDir, "backup"), false)
	tar.Close()

	archiveName := ""
	if outputOpt != nil && *outputOpt != "" {
		archiveName = *outputOpt
	} else {
		archiveName = fmt.Sprintf("backup-%s.tar.gz", time.Now().UTC().Format("20060102_150405"))
	}

	archive := path.Join(workDir, "backup_archive.tar.gz")

	if encrypt {
		passphrase := prompter.Password("Passphrase for the backup archive")
		if passphrase == "" {
			return fmt.Errorf("an empty passphrase is not allowed for an encrypted backup")
		}
		if err := encryptFile(archive, archiveName+".enc", passphrase); err != nil {
			return err
		}
		helpers.Success("Encrypted backup written to %s.enc", archiveName)
		return nil
	}

	if err := utils.CopyFileContents(archive, archiveName); err != nil {
		return fmt.Errorf("unable to save the backup file: %w", err)
	}

	helpers.Success("Backup written to %s", archiveName)
	return nil
}

func makeDump(env map[string]string, dir string) error {
	containerID, err := utils.ContainerID(domain.DBContainer)
	if err != nil {
		return err
	}

	database := env["MYSQL_DATABASE"]
	password := env["MYSQL_ROOT_PASSWORD"]

	cmd := domain.NewCommand([]string{
		"docker", "exec", "-i", containerID,
		"mysqldump", fmt.Sprintf("--password=%s", password), database,
	})

	file, err := os.Create(path.Join(dir, database+".sql"))
	if err != nil {
		return err
	}
	defer file.Close()

	return cmd.WriteResultToFile(file)
}

func encryptFile(src string, dest string, passphrase string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	return utils.Encrypt(in, out, []byte(passphrase))
}
