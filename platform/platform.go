package platform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const osReleasePath = "/etc/os-release"

// Platform groups the operations that differ between OS families. Exactly
// one implementation is selected at startup by Detect.
type Platform interface {
	Name() string
	InstallPackages() error
	InstallRuntime() error
	ConfigureFirewall() error
}

// Detect classifies the host into one of the supported families by reading
// /etc/os-release. An unsupported family is fatal: there is no sane way to
// install packages or a runtime without knowing the package manager.
func Detect() (Platform, error) {
	file, err := os.Open(osReleasePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", osReleasePath, err)
	}
	defer file.Close()

	return classify(file)
}

func classify(r io.Reader) (Platform, error) {
	id, idLike := parseOSRelease(r)

	if matchesFamily(id, idLike, []string{"rhel", "centos", "fedora", "rocky", "almalinux"}) {
		return rhel{}, nil
	}
	if matchesFamily(id, idLike, []string{"debian", "ubuntu"}) {
		return debian{}, nil
	}

	return nil, fmt.Errorf("unsupported OS '%s' (ID_LIKE='%s'): only RHEL and Debian families are supported", id, idLike)
}

// matchesFamily checks the ID first, then falls back on the ID_LIKE list.
func matchesFamily(id string, idLike string, members []string) bool {
	for _, m := range members {
		if id == m {
			return true
		}
		for _, like := range strings.Fields(idLike) {
			if like == m {
				return true
			}
		}
	}

	return false
}

func parseOSRelease(r io.Reader) (id string, idLike string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)

		switch key {
		case "ID":
			id = value
		case "ID_LIKE":
			idLike = value
		}
	}

	return id, idLike
}
