package util

import (
	"os/exec"
	"runtime"
)

// browserCommand primary command opening url on goos
func browserCommand(goos, url string) []string {
	switch goos {
	case "windows":
		// rundll32 works from Windows 7 on, unlike cmd /c start with some urls
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	case "darwin":
		return []string{"open", url}
	}
	return []string{"xdg-open", url}
}

// fallbackCommands alternatives tried when the primary command fails
func fallbackCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		return [][]string{{"explorer", url}}
	case "linux":
		var out [][]string
		for _, browser := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			out = append(out, []string{browser, url})
		}
		return out
	}
	return nil
}

// OpenBrowser opens url in the default browser
func OpenBrowser(url string) error {
	args := browserCommand(runtime.GOOS, url)
	return exec.Command(args[0], args[1:]...).Start()
}

// OpenBrowserWithFallback opens url, trying known browsers when the default fails
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}
	for _, args := range fallbackCommands(runtime.GOOS, url) {
		if exec.Command(args[0], args[1:]...).Start() == nil {
			return nil
		}
	}
	return err
}
