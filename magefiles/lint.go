//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binLint     = "golangci-lint"
	lintTimeout = "5m"
)

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs go vet, then golangci-lint.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, "run", "--timeout", lintTimeout, "./...")
}
