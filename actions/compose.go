package actions

import (
	"fmt"

	"webup/humprep/domain"
)

// StartActionHandler starts a compose subset: the core services before the
// preflight check, or the whole stack after it.
func StartActionHandler(subset string) error {
	args := []string{"up", "-d"}

	switch subset {
	case "all":
		// no service filter: the whole manifest
	case "core":
		args = append(args, domain.CoreServices...)
	default:
		return fmt.Errorf("unknown subset '%s' (expected 'core' or 'all')", subset)
	}

	return domain.NewComposeCommand(args).Execute()
}

func StopActionHandler() error {
	return domain.NewComposeCommand([]string{"stop"}).Execute()
}

func LogsActionHandler(service string) error {
	args := []string{"logs", "--tail", "100", "-f"}
	if service != "" {
		args = append(args, service)
	}

	return domain.NewComposeCommand(args).Execute()
}
