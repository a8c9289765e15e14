package actions

import (
	"webup/humprep/checks"
	"webup/humprep/helpers"
)

// CheckActionHandler runs the preflight invariants. The returned error is
// the first fatal failure; the caller prints it as the last output line and
// exits non-zero so automation can grep the final line.
func CheckActionHandler(permissive bool) error {
	checker := checks.NewChecker(permissive)

	if err := checker.RunAll(); err != nil {
		return err
	}

	helpers.Success("Ready: you can start the full stack with 'humprep start all'")

	return nil
}
