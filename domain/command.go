package domain

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type Command struct {
	Name string
	Args []string
}

func NewCommand(list []string) Command {
	name := list[0]
	args := list[1:]

	return Command{Name: name, Args: args}
}

// NewComposeCommand builds a 'docker compose' invocation against the
// deployment manifest and the generated env file.
func NewComposeCommand(args []string) Command {
	full := []string{"compose", "-f", ManifestPath, "--env-file", EnvFilePath}
	full = append(full, args...)

	return Command{Name: "docker", Args: full}
}

// NewUserCommand builds a command executed as another user via sudo. Used to
// verify that the service account can talk to the container runtime.
func NewUserCommand(user string, list []string) Command {
	args := []string{"-u", user}
	args = append(args, list...)

	return Command{Name: "sudo", Args: args}
}

func (c Command) String() string {
	return fmt.Sprintf("%s %s", c.Name, strings.Join(c.Args, " "))
}

// Execute runs the command attached to the terminal. The error is returned
// so that a failing system step aborts the whole run.
func (c Command) Execute() error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	fmt.Printf("Executing: %s\n", c)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("'%s' failed: %w", c, err)
	}

	return nil
}

// GetResult runs the command and returns its trimmed stdout.
func (c Command) GetResult() (string, error) {
	cmd := exec.Command(c.Name, c.Args...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("'%s' failed: %w", c, err)
	}

	return strings.TrimSpace(string(output)), nil
}

// RunWithInput runs the command with its stdin fed from the reader.
func (c Command) RunWithInput(in io.Reader) error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdin = in
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("'%s' failed: %w", c, err)
	}

	return nil
}

// WriteResultToFile runs the command and streams its stdout to the file.
func (c Command) WriteResultToFile(file *os.File) error {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Stdout = file
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("'%s' failed: %w", c, err)
	}

	return nil
}
