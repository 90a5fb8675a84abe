// Package version holds the build-time version of brpm.
package version

// Version is set at build time via:
//
//	-ldflags "-X github.com/the-gball/cloud-init-rax-pkg/internal/version.Version=v1.2.3"
var Version = "dev"
