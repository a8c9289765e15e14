package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"webup/humprep/domain"
	"webup/humprep/system"
)

// WriteEnvFile writes the generated env file with the full fixed key set.
// A pre-existing file is copied aside with a timestamp suffix first, and the
// new file is created with its restricted mode so it is never readable by
// other users, not even briefly.
func WriteEnvFile(c domain.Config, path string, owner *system.Account) error {
	var content []byte
	for _, pair := range c.EnvPairs() {
		content = append(content, fmt.Sprintf("%s=%s\n", pair.Key, pair.Value)...)
	}

	return writeRestricted(path, content, owner)
}

type installConfig struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Name     string `yaml:"name"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"database"`
	Admin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Site struct {
		Name     string `yaml:"name"`
		BaseURL  string `yaml:"base_url"`
		Timezone string `yaml:"timezone"`
	} `yaml:"site"`
}

// WriteInstallConfig writes the declarative document consumed by the
// application's own first-run installer. Same backup and mode guarantees as
// the env file.
func WriteInstallConfig(c domain.Config, path string, owner *system.Account) error {
	var doc installConfig

	doc.Database.Host = domain.DBContainer
	doc.Database.Port = 3306
	doc.Database.Name = c.DBName
	doc.Database.User = c.DBUser
	doc.Database.Password = c.DBPassword

	doc.Admin.Username = c.AdminUsername
	doc.Admin.Email = c.AdminEmail
	doc.Admin.Password = c.AdminPassword

	doc.Site.Name = c.HumhubHost
	doc.Site.BaseURL = c.BaseURL
	doc.Site.Timezone = c.Timezone

	content, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	return writeRestricted(path, content, owner)
}

func writeRestricted(path string, content []byte, owner *system.Account) error {
	if _, err := os.Stat(path); err == nil {
		if err := backupAside(path); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, domain.ConfigMode)
	if err != nil {
		return err
	}
	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	// the umask may have weakened the creation mode
	if err := os.Chmod(tmp, domain.ConfigMode); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := owner.Own(tmp); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// backupAside copies the current file next to itself with a timestamp
// suffix, preserving its mode. Prior configuration is never silently
// destroyed.
func backupAside(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	backup := fmt.Sprintf("%s.%s", path, time.Now().Format("20060102_150405"))
	dst, err := os.OpenFile(backup, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("unable to backup %s: %w", path, err)
	}

	return nil
}
