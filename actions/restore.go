package actions

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Songmu/prompter"

	"webup/humprep/config"
	"webup/humprep/domain"
	"webup/humprep/helpers"
	"webup/humprep/utils"
)

// RestoreActionHandler restores the config files and the database from a
// backup archive produced by 'humprep backup'.
func RestoreActionHandler(file string) error {

	workDir, err := os.MkdirTemp("", "humprep_restore")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	archive := file
	if strings.HasSuffix(file, ".enc") {
		passphrase := prompter.Password("Passphrase of the backup archive")
		archive = path.Join(workDir, "backup_archive.tar.gz")
		if err := decryptFile(file, archive, passphrase); err != nil {
			return err
		}
	}

	if err := extractArchive(archive, workDir); err != nil {
		return fmt.Errorf("unable to extract the backup: %w", err)
	}

	if prompter.YN("Restore the configuration files?", false) {
		restores := map[string]string{
			path.Base(domain.EnvFilePath):       domain.EnvFilePath,
			path.Base(domain.InstallConfigPath): domain.InstallConfigPath,
		}
		for name, target := range restores {
			src := path.Join(workDir, "config", name)
			if _, err := os.Stat(src); err != nil {
				helpers.Warn("'%s' is not part of this backup, skipping", name)
				continue
			}
			if err := utils.CopyFileContents(src, target); err != nil {
				return err
			}
			helpers.Success("%s restored", target)
		}
	}

	if prompter.YN("Restore the database?", false) {
		if err := restoreDump(workDir); err != nil {
			return err
		}
	}

	helpers.Success("Restore done")
	return nil
}

func restoreDump(workDir string) error {
	env, err := config.ParseEnvFile(domain.EnvFilePath)
	if err != nil {
		return err
	}

	containerID, err := utils.ContainerID(domain.DBContainer)
	if err != nil {
		return err
	}

	database := env["MYSQL_DATABASE"]
	dump := path.Join(workDir, "databases", database+".sql")
	in, err := os.Open(dump)
	if err != nil {
		return fmt.Errorf("no dump for database '%s' in this backup: %w", database, err)
	}
	defer in.Close()

	cmd := domain.NewCommand([]string{
		"docker", "exec", "-i", containerID,
		"mysql", fmt.Sprintf("--password=%s", env["MYSQL_ROOT_PASSWORD"]), database,
	})

	return cmd.RunWithInput(in)
}

func extractArchive(archive string, dest string) error {
	file, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		target := filepath.Join(dest, filepath.Clean("/"+header.Name))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode).Perm())
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, reader); err != nil {
				out.Close()
				return err
			}
			out.Close()
		}
	}

	return nil
}

func decryptFile(src string, dest string, passphrase string) error {
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

	return utils.Decrypt(in, out, []byte(passphrase))
}
