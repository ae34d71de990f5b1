// Package version reports the build of an asynckit binary.
//
// Version and commit are set at link time, falling back to the VCS stamp Go
// embeds in module builds:
//
//	go build -ldflags "-X github.com/kbukum/asynckit/version.Version=1.2.0" ./cmd/asyncdemo
package version
