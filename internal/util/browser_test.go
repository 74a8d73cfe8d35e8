package util

import "testing"

func TestBrowserCommand(t *testing.T) {
	t.Parallel()

	url := "http://localhost:5000/api/status"
	cases := map[string]string{
		"windows": "rundll32",
		"darwin":  "open",
		"linux":   "xdg-open",
		"freebsd": "xdg-open",
	}
	for goos, want := range cases {
		args := browserCommand(goos, url)
		if args[0] != want {
			t.Fatalf("%s: got %q want %q", goos, args[0], want)
		}
		if args[len(args)-1] != url {
			t.Fatalf("%s: url not passed: %v", goos, args)
		}
	}
}

func TestFallbackCommands(t *testing.T) {
	t.Parallel()

	if got := len(fallbackCommands("linux", "u")); got != 4 {
		t.Fatalf("linux fallbacks = %d", got)
	}
	if got := fallbackCommands("darwin", "u"); got != nil {
		t.Fatalf("darwin fallbacks = %v", got)
	}
}
