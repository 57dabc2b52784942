//go:build mage

// Package main contains Mage build targets for absa.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "absa"
	cmdPkg  = "./cmd/absa"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test runs the unit tests, model-backed tests are skipped.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-short", "./...")
}

// TestModels runs all tests including the ones downloading models.
func TestModels() error {
	return sh.RunV("go", "test", "./...")
}

// Gosec runs the security scanner.
func Gosec() error {
	return sh.RunV("go", "tool", "gosec", "./...")
}

// Example runs the basic example and writes its charts into the working directory.
func Example() error {
	return sh.RunV("go", "run", "./example/basic")
}

// Clean removes build output and downloaded models.
func Clean() error {
	for _, dir := range []string{binDir, "models"} {
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
