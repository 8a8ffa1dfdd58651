package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default value")
	}
	// GitCommit and BuildDate stay empty unless set via -ldflags.
	if GitCommit != "" || BuildDate != "" {
		t.Errorf("build metadata set by default: %q, %q", GitCommit, BuildDate)
	}
}

func TestVersionPlainDigits(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	for _, part := range []string{"0", "1", "0-dev"} {
		probe := versionMajorColor.Sprint(part)
		if strings.ContainsRune(probe, '\x1b') {
			t.Fatalf("color escapes leak with NoColor set: %q", probe)
		}
	}
}
