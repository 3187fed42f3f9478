//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "bin/multiterm"
	mainPkg = "./cmd/multiterm"
)

// Default target - build the binary
var Default = Build

// Build builds the multiterm binary
func Build() error {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-s -w -X main.version=%s", version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", binary, mainPkg)
}

// Install installs multiterm into GOBIN
func Install() error {
	return sh.RunV("go", "install", mainPkg)
}

// Test runs the test suite with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm("bin")
}

// QA runs formatting, vet and tests
func QA() error {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test)
	return nil
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}
