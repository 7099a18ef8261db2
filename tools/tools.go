//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// They are installed with `go install` and are not tracked in go.mod.
package tools

// Development tools (install via `go install`):
//
// Air - Live reload for the web server (pair with DEV=true so templates reload)
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// mockgen - Regenerates internal/mocks from internal/ports
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Run: go generate ./internal/mocks
