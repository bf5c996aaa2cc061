package version

// Version is the classbridge version, set at build time with
// -ldflags "-X github.com/hashicorp-forge/classbridge/internal/version.Version=...".
var Version = "0.1.0-dev"
