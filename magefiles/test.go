//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (all, unit, desktop).
type Test mg.Namespace

// All runs the unit tests and then the desktop-tagged tests.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.Desktop)
}

// Unit runs every package's tests without the desktop window.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Desktop runs the desktop package tests with the fyne tag.
func (Test) Desktop() error {
	return sh.RunV(binGo, "test", "-v", "-tags", desktopTag, "./internal/desktop/...")
}
