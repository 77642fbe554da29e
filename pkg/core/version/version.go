// ============================================================================
// Delegate - Command Registration and Dispatch Engine
// ============================================================================
//
// Package:     version
// Description: Central version management for the engine and its CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version constants for the engine components
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Engine   = "1.0.0"
	Compiler = "1.0.0"
	Tree     = "1.0.0"
	CLI      = "1.0.0"
)

// Build metadata, set via -ldflags at build time
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch strings.ToLower(name) {
	case "engine":
		return Engine
	case "compiler":
		return Compiler
	case "tree":
		return Tree
	case "cli", "delegate":
		return CLI
	default:
		return Platform
	}
}

// Info describes the running build
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Current returns the build information of this binary
func Current() Info {
	return Info{
		Version:   Platform,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the build information on multiple lines
func (i Info) String() string {
	return fmt.Sprintf("Delegate v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
