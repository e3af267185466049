package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// blockedPatterns are shell metacharacters that have no business in the
// docker/goose invocations this tool builds. Arguments come partly from
// the environment, so they are screened before any command runs.
var blockedPatterns = []string{"|", "`", "$(", "&&", "||", ">", "<"}

func validateArgs(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r\x00") {
			return fmt.Errorf("unsafe argument: control character in %q", s)
		}
		for _, p := range blockedPatterns {
			if strings.Contains(s, p) {
				return fmt.Errorf("unsafe argument: %q in %q", p, s)
			}
		}
	}
	return nil
}

func command(name string, args ...string) (*exec.Cmd, error) {
	if err := validateArgs(append([]string{name}, args...)...); err != nil {
		return nil, err
	}
	// #nosec G204 - arguments screened by validateArgs
	return exec.Command(name, args...), nil
}

// getCommandOutput captures trimmed stdout of a command
func getCommandOutput(name string, args ...string) (string, error) {
	cmd, err := command(name, args...)
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runCommand runs a command silently
func runCommand(name string, args ...string) error {
	cmd, err := command(name, args...)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// runCommandVerbose runs a command with output wired to the terminal
func runCommandVerbose(name string, args ...string) error {
	cmd, err := command(name, args...)
	if err != nil {
		return err
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
