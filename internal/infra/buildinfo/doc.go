// Package buildinfo exposes version information injected via ldflags:
//
//	go build -ldflags "-X github.com/sharepay/sharepay-go/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/sharepay/sharepay-go/internal/infra/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// The version also forms the client's User-Agent.
package buildinfo
