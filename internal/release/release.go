// Package release carries the application name, version and changelog.
package release

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName is the user-facing application name.
const AppName = "RPG Shelf"

// Version is the current release. Overridden at build time with
// -ldflags "-X github.com/rpgshelf/shelf/internal/release.Version=...".
var Version = "0.1.0"

// ModulePath is the Go module path of the shelf.
const ModulePath = "github.com/rpgshelf/shelf"

//go:embed changelog.yaml
var changelogYAML []byte

// Entry is one released version.
type Entry struct {
	Version string   `yaml:"version" json:"version"`
	Date    string   `yaml:"date" json:"date"`
	Changes []string `yaml:"changes" json:"changes"`
}

// Changelog returns the embedded release history, newest first.
func Changelog() ([]Entry, error) {
	return parseChangelog(changelogYAML)
}

func parseChangelog(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse changelog: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

// AboutInfo is the runtime detail shown in the about text.
type AboutInfo struct {
	ScreenHeight int
	Scale        float64
	DataDir      string
}

// About returns the about text.
func About(info AboutInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nVersion %s\n\n", AppName, Version)
	b.WriteString("A catalog of tabletop RPG systems, supplements, play sessions, players and publishers.\n")
	if info.ScreenHeight > 0 {
		fmt.Fprintf(&b, "\nScreen height: %dpx\n", info.ScreenHeight)
	}
	if info.Scale > 0 {
		fmt.Fprintf(&b, "Scaling: %d%%\n", int(info.Scale*100+0.5))
	}
	if info.DataDir != "" {
		fmt.Fprintf(&b, "Data directory: %s\n", info.DataDir)
	}
	return b.String()
}
