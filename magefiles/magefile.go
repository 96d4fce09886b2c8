//go:build mage

// Package main provides build targets for the shelf project using Mage.
//
// Usage:
//
//	mage build          Compile the shelf binary to bin/
//	mage desktop        Compile the shelf binary with the desktop window
//	mage test:all       Run all tests
//	mage test:unit      Run tests without the fyne tag
//	mage test:desktop   Run tests with the fyne tag
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install shelf to GOPATH/bin
//	mage stats          Print Go lines of code per package
package main
