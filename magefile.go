//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "minichat"
	mainPkg = "./cmd/minichat"
)

// tags returns the build tags. Set MINICHAT_PORTAUDIO=1 to build with
// microphone support (needs the portaudio development headers).
func tags() []string {
	if os.Getenv("MINICHAT_PORTAUDIO") != "" {
		return []string{"-tags", "portaudio"}
	}
	return nil
}

// Build compiles the minichat binary
func Build() error {
	args := append([]string{"build"}, tags()...)
	args = append(args, "-o", binary, mainPkg)
	return sh.RunV("go", args...)
}

// Test runs all unit tests
func Test() error {
	args := append([]string{"test"}, tags()...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

// Vet runs go vet
func Vet() error {
	args := append([]string{"vet"}, tags()...)
	args = append(args, "./...")
	return sh.RunV("go", args...)
}

// Install installs minichat into $GOPATH/bin
func Install() error {
	mg.Deps(Test)
	args := append([]string{"install"}, tags()...)
	args = append(args, mainPkg)
	return sh.RunV("go", args...)
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Removing", binary)
	return sh.Rm(binary)
}

// Default target
var Default = Build
