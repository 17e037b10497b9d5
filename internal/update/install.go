package update

import (
	"os"
	"path/filepath"
	"strings"
)

// InstallMethod indicates how the application was installed.
type InstallMethod int

const (
	// InstallUnknown indicates the installation method could not be determined.
	InstallUnknown InstallMethod = iota
	// InstallHomebrew indicates installation via Homebrew.
	InstallHomebrew
	// InstallAppBundle indicates a macOS .app bundle.
	InstallAppBundle
	// InstallDirect indicates a direct binary download.
	InstallDirect
)

// String returns the string representation of an InstallMethod.
func (m InstallMethod) String() string {
	switch m {
	case InstallHomebrew:
		return "homebrew"
	case InstallAppBundle:
		return "app-bundle"
	case InstallDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// Hint returns the one-line upgrade instruction shown next to an available
// update.
func (m InstallMethod) Hint(app string) string {
	switch m {
	case InstallHomebrew:
		return "Run: brew upgrade " + strings.ToLower(app)
	case InstallAppBundle:
		return "Download the new " + app + ".app and replace the old one"
	case InstallDirect:
		return "Download the new release and replace the binary"
	default:
		return "See the release page for upgrade instructions"
	}
}

// executablePath is swapped in tests.
var executablePath = func() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(path)
}

// DetectInstallMethod determines how the application was installed from the
// location of the running executable.
func DetectInstallMethod() InstallMethod {
	path, err := executablePath()
	if err != nil {
		return InstallUnknown
	}
	return detectFromPath(path)
}

func detectFromPath(path string) InstallMethod {
	if path == "" {
		return InstallUnknown
	}
	slashed := filepath.ToSlash(path)
	if strings.Contains(slashed, "/Cellar/") || strings.Contains(slashed, "/homebrew/") || strings.Contains(slashed, "/linuxbrew/") {
		return InstallHomebrew
	}
	if strings.Contains(slashed, ".app/Contents/MacOS/") {
		return InstallAppBundle
	}
	return InstallDirect
}
