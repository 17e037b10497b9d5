// Package appinfo resolves the running application's name and version.
//
// On macOS the version lives in the bundle's Info.plist. Elsewhere (and for
// plain binaries) the values injected at build time are used.
package appinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// DefaultName is used when neither the plist nor the build supplies a name.
const DefaultName = "Sandbox"

// Info describes the running application.
type Info struct {
	Name     string `plist:"CFBundleName"`
	Version  string `plist:"CFBundleShortVersionString"`
	Build    string `plist:"CFBundleVersion"`
	BundleID string `plist:"CFBundleIdentifier"`

	// Source is the plist path the values came from, or "build" when the
	// ldflag fallback was used.
	Source string `plist:"-"`
}

// Options controls where Load looks for metadata.
type Options struct {
	// MetadataPath is an explicit Info.plist path. When set, a missing file
	// is an error rather than a fallthrough.
	MetadataPath string
	// Executable overrides os.Executable for bundle discovery.
	Executable string
	// Fallback holds build-time values.
	Fallback Info
}

// Load resolves metadata from an explicit plist, a bundle plist next to the
// executable, or the build-time fallback, in that order.
func Load(opts Options) (Info, error) {
	if path := strings.TrimSpace(opts.MetadataPath); path != "" {
		info, err := ReadPlist(path)
		if err != nil {
			return Info{}, err
		}
		return mergeFallback(info, opts.Fallback), nil
	}

	if path := bundlePlistPath(opts.Executable); path != "" {
		info, err := ReadPlist(path)
		switch {
		case err == nil:
			return mergeFallback(info, opts.Fallback), nil
		case !errors.Is(err, fs.ErrNotExist):
			return Info{}, err
		}
	}

	info := opts.Fallback
	info.Source = "build"
	if strings.TrimSpace(info.Name) == "" {
		info.Name = DefaultName
	}
	return info, nil
}

// ReadPlist decodes the bundle keys from an Info.plist file. Both XML and
// binary plists are accepted.
func ReadPlist(path string) (Info, error) {
	//nolint:gosec // G304: path comes from configuration or the bundle layout
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("read metadata %s: %w", path, err)
	}
	var info Info
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return Info{}, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	info.Source = path
	return info, nil
}

// bundlePlistPath returns Contents/Info.plist for an executable living in
// Contents/MacOS, or "" when the executable is not inside a bundle.
func bundlePlistPath(executable string) string {
	if executable == "" {
		exe, err := os.Executable()
		if err != nil {
			return ""
		}
		executable = exe
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	dir := filepath.Dir(executable)
	if filepath.Base(dir) != "MacOS" {
		return ""
	}
	return filepath.Join(filepath.Dir(dir), "Info.plist")
}

func mergeFallback(info, fallback Info) Info {
	if strings.TrimSpace(info.Name) == "" {
		info.Name = fallback.Name
	}
	if strings.TrimSpace(info.Name) == "" {
		info.Name = DefaultName
	}
	if strings.TrimSpace(info.Version) == "" {
		info.Version = fallback.Version
	}
	if strings.TrimSpace(info.Build) == "" {
		info.Build = fallback.Build
	}
	return info
}
