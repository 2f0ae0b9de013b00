package common

// Overridden at build time:
//
//	go build -ldflags "-X tarediiran-industries.com/bench-tools/internal/common.Version=v0.2.0 -X tarediiran-industries.com/bench-tools/internal/common.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	GitCommit = "unknown"
)
