package env

// Build metadata, set at link time:
//
//	go build -ldflags "-X github.com/ostafen/mflaw/internal/env.Version=v0.1.0"
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
