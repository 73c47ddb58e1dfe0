//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the hand written event loop.
func (Run) Eventloop() error {
	mg.Deps(Resources.Generate)
	fmt.Println("Run eventloop...")
	return runTestbed("eventloop")
}

// Runs the callback driven showcase.
func (Run) Showcase() error {
	mg.Deps(Resources.Generate)
	fmt.Println("Run showcase...")
	return runTestbed("showcase")
}

func runTestbed(name string) error {
	_, err := executeCmd("go", withArgs("run", "./cmd/"+name), withEnv("ANIMA_RESOURCES="+resourceDir), withStream())
	return err
}
