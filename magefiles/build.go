//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"

	"github.com/spaghettifunk/anima2d/testbed/fixtures"
)

type Build mg.Namespace

// Builds both testbed programs into bin/.
func (Build) Binaries() error {
	for _, name := range []string{"eventloop", "showcase"} {
		if _, err := executeCmd("go", withArgs("build", "-o", "bin/"+name, "./cmd/"+name), withStream()); err != nil {
			return err
		}
	}
	return nil
}

type Resources mg.Namespace

// Writes the image, font, sound and conf.toml the testbed programs load.
// Existing files are kept.
func (Resources) Generate() error {
	written, err := fixtures.Generate(resourceDir)
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Println("Generated", f)
	}
	return nil
}

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
