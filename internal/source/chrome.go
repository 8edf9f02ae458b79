package source

import (
	"os/exec"
	"path/filepath"

	"github.com/jmylchreest/scrub/internal/logger"
)

// Chrome/Chromium binaries in lookup order: PATH names first, then the
// usual install locations.
var chromeBinaryNames = []string{
	"google-chrome-stable",
	"google-chrome",
	"chromium",
	"chromium-browser",
	"chrome",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	"/snap/bin/chromium",
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// FindChromePath returns the first Chrome binary found, or "" so chromedp
// falls back to its own lookup.
func FindChromePath() string {
	for _, name := range chromeBinaryNames {
		if path, err := lookPath(name); err == nil {
			logger.Debug("found Chrome binary", "name", filepath.Base(name), "path", path)
			return path
		}
	}
	logger.Warn("no Chrome binary found - dynamic fetch mode may not work")
	return ""
}
