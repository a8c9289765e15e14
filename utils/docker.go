package utils

import (
	"fmt"

	"webup/humprep/domain"
)

// ContainerID resolves a running container by name.
func ContainerID(name string) (string, error) {
	cmd := domain.NewCommand([]string{"docker", "ps", "-q", "--filter", "name=" + name})
	id, err := cmd.GetResult()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("container '%s' is not running", name)
	}

	return id, nil
}
