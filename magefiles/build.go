//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Downloads the modules and builds the game binary.
func (Build) Game() error {
	if _, err := executeCmd("go", withArgs("mod", "download"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/rocketpartners", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the game without the glfw window, for CI machines without a display.
func (Build) Headless() error {
	_, err := executeCmd("go", withArgs("build", "-tags", "headless", "-o", "bin/rocketpartners-headless", "."), withStream())
	return err
}
