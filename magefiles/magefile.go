//go:build mage

// Package main provides build targets for the teashop project using Mage.
//
// Usage:
//
//	mage build          Compile the teashop binary to bin/
//	mage test:all       Run every test
//	mage test:race      Run every test with the race detector
//	mage test:cover     Write coverage.out and print per-function coverage
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install teashop to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "teashop"
	binaryDir  = "bin"
	cmdDir     = "./cmd/teashop"
	versionVar = "github.com/mesh-intelligence/teashop/internal/cli.Version"
)

// ldflags stamps the version from the latest git tag, when there is one.
func ldflags() string {
	tag, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || tag == "" {
		return ""
	}
	return fmt.Sprintf("-X %s=%s", versionVar, strings.TrimPrefix(tag, "v"))
}

// Build compiles the teashop binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if flags := ldflags(); flags != "" {
		args = append(args, "-ldflags", flags)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	_ = os.Remove(coverProfile)
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
