//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the game with the config in the working directory.
func (Run) Game() error {
	fmt.Println("Run game...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs every package test without a window.
func (Run) Tests() error {
	fmt.Println("Run tests...")
	if _, err := executeCmd("go", withArgs("test", "-tags", "headless", "-race", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
