package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" || info.Commit == "" || info.BuildTime == "" || info.GoVersion == "" {
		t.Errorf("empty field in %+v", info)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", info.Platform)
	}
}

func TestString(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if s := String(); !strings.HasPrefix(s, "v1.2.3 (") {
		t.Errorf("String() = %q", s)
	}
	if ua := UserAgent(); ua != "sharepay-cli/v1.2.3" {
		t.Errorf("UserAgent() = %q", ua)
	}
}
