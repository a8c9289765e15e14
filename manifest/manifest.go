// Package manifest touches the deployment manifest in the two narrow ways
// the workflow needs: flipping the staging-CA directive and inspecting bind
// mounts. Everything else in the file is opaque and left byte-identical.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"webup/humprep/domain"
)

var caServerLine = regexp.MustCompile(`^(\s*)(#\s*)?- "--certificatesresolvers\.le\.acme\.caserver=\S+"\s*$`)

// ToggleStaging rewrites the certificate-authority directive line to its
// active form when staging is true, or its commented form otherwise. It
// returns false when no matching line exists. No other line is altered.
func ToggleStaging(path string, staging bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	directive := fmt.Sprintf(`- "--certificatesresolvers.le.acme.caserver=%s"`, domain.StagingCAServer)

	found := false
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		match := caServerLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		indent := match[1]
		if staging {
			lines[i] = indent + directive
		} else {
			lines[i] = indent + "# " + directive
		}
		found = true
		break
	}

	if !found {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	return true, os.WriteFile(path, []byte(strings.Join(lines, "\n")), info.Mode().Perm())
}

type manifestDoc struct {
	Services map[string]struct {
		Volumes []yaml.Node `yaml:"volumes"`
	} `yaml:"services"`
}

// BindsPath reports whether any service in the manifest bind-mounts the
// given host path. Both the short "host:container" form and the long map
// form are understood.
func BindsPath(path string, hostPath string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("unable to parse %s: %w", path, err)
	}

	want := filepath.Clean(hostPath)
	for _, service := range doc.Services {
		for _, volume := range service.Volumes {
			if source := volumeSource(volume); source != "" && filepath.Clean(source) == want {
				return true, nil
			}
		}
	}

	return false, nil
}

func volumeSource(node yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		var spec string
		if err := node.Decode(&spec); err != nil {
			return ""
		}
		source, _, found := strings.Cut(spec, ":")
		if !found {
			return ""
		}
		return source
	case yaml.MappingNode:
		var long struct {
			Type   string `yaml:"type"`
			Source string `yaml:"source"`
		}
		if err := node.Decode(&long); err != nil {
			return ""
		}
		if long.Type != "" && long.Type != "bind" {
			return ""
		}
		return long.Source
	}

	return ""
}
