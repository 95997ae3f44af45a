package utils

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// --------------------------------------
// CHROME CHECK
// --------------------------------------

// CheckChrome looks for google-chrome or chromium. An explicit path wins
// when it exists.
func CheckChrome(explicit string) (bool, string) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return true, explicit
		}
		return false, ""
	}

	binaries := []string{
		"google-chrome",
		"google-chrome-stable",
		"chromium",
		"chromium-browser",
	}

	for _, bin := range binaries {
		path, err := exec.LookPath(bin)
		if err == nil {
			return true, path
		}
	}

	for _, path := range getCommonChromePaths(runtime.GOOS) {
		if _, err := os.Stat(path); err == nil {
			return true, path
		}
	}

	return false, ""
}

func getCommonChromePaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}

	case "linux":
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}

	case "windows":
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files\Chromium\Application\chromium.exe`,
			`C:\Program Files (x86)\Chromium\Application\chromium.exe`,
		}

	default:
		return []string{}
	}
}

// ChromeInstallHint is logged when receipt previews are enabled but no
// browser was found.
func ChromeInstallHint(goos string) string {
	var b strings.Builder
	b.WriteString("receipt previews need Chrome or Chromium; ")

	switch goos {
	case "linux":
		b.WriteString("install with `sudo apt install chromium-browser`, `sudo dnf install chromium` or `sudo pacman -S chromium`")
	case "darwin":
		b.WriteString("install with `brew install --cask google-chrome` or `brew install chromium`")
	case "windows":
		b.WriteString("download Google Chrome from https://www.google.com/chrome/")
	default:
		b.WriteString("install Chrome or Chromium for your OS")
	}

	b.WriteString(", or set CHROME_PATH")
	return b.String()
}
