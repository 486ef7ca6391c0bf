package command

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sharepay/sharepay-go/internal/infra/buildinfo"
)

func TestSystemVersionJSON(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run("", "-o", "json", "system", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var info buildinfo.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if info.Version != buildinfo.Version || info.Platform == "" {
		t.Errorf("info = %+v", info)
	}
}

func TestSystemMetrics(t *testing.T) {
	f := newCLIFixture(t)
	f.login("acc", "ref")

	out, err := f.run("", "system", "metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if !strings.Contains(out, "sharepay_client_credential_present 1") {
		t.Errorf("output:\n%s", out)
	}
}
