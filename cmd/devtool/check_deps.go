package main

import (
	"fmt"
	"os"
	"strings"
)

// depCheck describes one tool the dev environment needs
type depCheck struct {
	name     string
	cmd      []string
	required bool
	hint     string
}

var depChecks = []depCheck{
	{"Go", []string{"go", "version"}, true, "Install from: https://go.dev/dl/"},
	{"Docker", []string{"docker", "--version"}, true, "Install from: https://docs.docker.com/get-docker/"},
	{"Docker Compose", []string{"docker", "compose", "version"}, true, "Ships with recent Docker installs"},
	{"Goose", []string{"goose", "--version"}, false, "Install: go install github.com/pressly/goose/v3/cmd/goose@latest"},
}

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking dependencies...")

	missing := false
	for _, dep := range depChecks {
		version, err := getCommandOutput(dep.cmd[0], dep.cmd[1:]...)
		if err != nil && dep.cmd[0] == "goose" {
			// goose often lives in GOPATH/bin without being on PATH
			if home, herr := os.UserHomeDir(); herr == nil {
				version, err = getCommandOutput(home+"/go/bin/goose", dep.cmd[1:]...)
			}
		}
		if err != nil {
			if dep.required {
				PrintError("%s not found! %s", dep.name, dep.hint)
				missing = true
			} else {
				PrintWarning("%s not found (recommended for dev). %s", dep.name, dep.hint)
			}
			continue
		}
		PrintSuccess("%s installed: %s", dep.name, versionToken(version))
	}

	if missing {
		return fmt.Errorf("missing required dependencies")
	}

	PrintSuccess("Environment check complete")
	return nil
}

// versionToken pulls the version-looking field out of a tool's banner line,
// e.g. "go version go1.22.0 linux/amd64" or "goose version:v3.15.0"
func versionToken(banner string) string {
	line := banner
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	for _, f := range strings.Fields(line) {
		f = strings.TrimPrefix(f, "version:")
		f = strings.TrimRight(f, ",")
		if strings.ContainsAny(f, "0123456789") && !strings.Contains(f, "/") {
			return f
		}
	}
	return line
}
