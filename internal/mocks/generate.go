// Package mocks provides mock implementations of the ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAuthAPI(ctrl)
//	api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(sess, nil)
package mocks

// Generate mocks for the session-facing ports: AuthAPI, BearerHolder, Navigator.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_mock.go github.com/learnsphere/learnsphere-ui/internal/ports AuthAPI,BearerHolder,Navigator

// Generate mocks for CourseAPI.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=courses_mock.go github.com/learnsphere/learnsphere-ui/internal/ports CourseAPI

// Generate mocks for Storage and StorageProvider.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=storage_mock.go github.com/learnsphere/learnsphere-ui/internal/ports Storage,StorageProvider
