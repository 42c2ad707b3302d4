//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/argusdeck/app/mage"
)

var cfg = mage.NewBuildConfig()

// Displays the current build configuration
func ShowConfig() {
	mage.PrettyPrint(cfg)
}

var Aliases = map[string]interface{}{
	"clean":       Clean.Build,
	"clean-all":   Clean.All,
	"deps":        Deps.All,
	"vet":         QC.Vet,
	"test":        Test.All,
	"test-be":     Test.Backend,
	"build":       Build.App,
	"build-debug": Build.Debug,
}

type Build mg.Namespace

// Builds the application for the current platform
func (Build) App() error {
	fmt.Printf("Building %s %s (%s/%s)\n", cfg.AppLongName, cfg.Version, cfg.OsType, cfg.ArchType)
	return sh.RunV("wails", cfg.BuildArgs...)
}

// Builds the application with the debug console enabled
func (Build) Debug() error {
	args := append(append([]string{}, cfg.BuildArgs...), "-debug")
	return sh.RunV("wails", args...)
}

// Runs the application in development mode with hot reload
func Dev() error {
	return sh.RunV("wails", "dev")
}

type Deps mg.Namespace

// Installs Go and frontend dependencies
func (Deps) All() {
	mg.Deps(Deps.Go, Deps.Npm)
}

// Downloads Go module dependencies
func (Deps) Go() error {
	return sh.RunV("go", "mod", "download")
}

// Installs frontend dependencies
func (Deps) Npm() error {
	return sh.RunV("npm", "install", "--prefix", cfg.FrontendDir)
}

type Test mg.Namespace

// Runs all test suites
func (Test) All() {
	mg.Deps(Test.Backend, Test.Frontend)
}

// Runs the Go backend tests
func (Test) Backend() error {
	return sh.RunV("go", "test", "./backend/...")
}

// Runs the frontend tests
func (Test) Frontend() error {
	return sh.RunV("npm", "test", "--prefix", cfg.FrontendDir)
}

type QC mg.Namespace

// Runs go vet across the module
func (QC) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Runs the frontend linter
func (QC) Lint() error {
	return sh.RunV("npm", "run", "lint", "--prefix", cfg.FrontendDir)
}

type Clean mg.Namespace

// Removes build outputs
func (Clean) Build() error {
	return os.RemoveAll(cfg.BuildDir)
}

// Removes build outputs and frontend artifacts
func (Clean) All() error {
	if err := os.RemoveAll(cfg.BuildDir); err != nil {
		return err
	}
	if err := os.RemoveAll(cfg.FrontendDir + "/dist"); err != nil {
		return err
	}
	return os.RemoveAll(cfg.FrontendDir + "/node_modules")
}
