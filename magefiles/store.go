//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const seedFile = "testdata/seed.yaml"

// Seed imports the sample trademark records into the local store.
func Seed() error {
	mg.Deps(Init, Build)
	if err := sh.RunV(binPath(), "store", "import", seedFile); err != nil {
		return fmt.Errorf("importing %s: %w", seedFile, err)
	}
	return nil
}

// Expiring lists registered marks expiring within 90 days.
func Expiring() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "store", "expiring")
}
