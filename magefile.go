//go:build mage

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binName  = "gemdict"
	wasmName = "gemdict.wasm"
	distDir  = "dist"
)

var Default = Build

// Build builds the gemdict binary
func Build() error {
	return sh.RunV("go", "build", "-o", binName, "./cmd/gemdict")
}

// Wasm builds the WebAssembly module and copies wasm_exec.js next to it
func Wasm() error {
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return err
	}

	env := map[string]string{"GOOS": "js", "GOARCH": "wasm"}
	if err := sh.RunWithV(env, "go", "build", "-o", filepath.Join(distDir, wasmName), "./cmd/gemdict-wasm"); err != nil {
		return err
	}

	goroot, err := sh.Output("go", "env", "GOROOT")
	if err != nil {
		return err
	}
	goroot = strings.TrimSpace(goroot)

	// Go 1.24 moved wasm_exec.js from misc/wasm to lib/wasm
	for _, dir := range []string{"lib", "misc"} {
		src := filepath.Join(goroot, dir, "wasm", "wasm_exec.js")
		if _, err := os.Stat(src); err == nil {
			return sh.Copy(filepath.Join(distDir, "wasm_exec.js"), src)
		}
	}
	return os.ErrNotExist
}

// Install installs gemdict into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/gemdict")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// All vets, tests and builds both targets
func All() {
	mg.SerialDeps(Vet, Test, Build, Wasm)
}

// Clean removes build artifacts
func Clean() error {
	if err := sh.Rm(binName); err != nil {
		return err
	}
	return sh.Rm(distDir)
}
