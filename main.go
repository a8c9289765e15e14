package main

import (
	"os"

	cli "github.com/jawher/mow.cli"

	"webup/humprep/actions"
	"webup/humprep/helpers"
)

func main() {

	app := cli.App("humprep", "Prepare a host for running HumHub behind a reverse proxy with Docker Compose")

	app.Version("v version", "humprep 1.2.0")

	app.Command("prepare", "Provision the host: packages, runtime, service account, directories, firewall, configuration", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			exitOnError(actions.PrepareActionHandler())
		}
	})

	app.Command("check", "Run the preflight checks before starting the full stack", func(cmd *cli.Cmd) {

		permissive := cmd.BoolOpt("p permissive", false, "Downgrade a wrong install-config file mode to a warning")

		cmd.Action = func() {
			exitOnError(actions.CheckActionHandler(*permissive))
		}
	})

	app.Command("start", "Start a subset of the stack ('core' before the preflight check, 'all' after)", func(cmd *cli.Cmd) {

		cmd.Spec = "[SUBSET]"
		subset := cmd.StringArg("SUBSET", "core", "The subset to start: 'core' or 'all'")

		cmd.Action = func() {
			exitOnError(actions.StartActionHandler(*subset))
		}
	})

	app.Command("stop", "Stop the stack", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			exitOnError(actions.StopActionHandler())
		}
	})

	app.Command("logs", "Follow logs of all services (or the specified service)", func(cmd *cli.Cmd) {

		cmd.Spec = "[SERVICE]"
		service := cmd.StringArg("SERVICE", "", "The Compose service to log")

		cmd.Action = func() {
			exitOnError(actions.LogsActionHandler(*service))
		}
	})

	app.Command("backup", "Archive the configuration files and a database dump", func(cmd *cli.Cmd) {

		encrypt := cmd.BoolOpt("e encrypt", false, "Encrypt the archive with a passphrase")
		output := cmd.StringOpt("o output", "", "Name of the archive file")

		cmd.Action = func() {
			exitOnError(actions.BackupActionHandler(*encrypt, output))
		}
	})

	app.Command("restore", "Restore configuration and database from a backup archive", func(cmd *cli.Cmd) {

		cmd.Spec = "FILE"
		file := cmd.StringArg("FILE", "", "The backup archive to restore from")

		cmd.Action = func() {
			exitOnError(actions.RestoreActionHandler(*file))
		}
	})

	app.Run(os.Args)
}

// exitOnError prints the failure as the last output line, so automation can
// grep the final line, and exits non-zero.
func exitOnError(err error) {
	if err != nil {
		helpers.Fail("%s", err)
		cli.Exit(1)
	}
}
