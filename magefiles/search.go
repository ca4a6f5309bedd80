//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search runs a clearance search for text against every configured source.
func Search(text string) error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "search", text)
}

// Serve starts the HTTP service on the configured address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "serve")
}
