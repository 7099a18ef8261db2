package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"testing"

	apperrors "github.com/learnsphere/learnsphere-ui/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app error", apperrors.Rejected(400, "bad"), "rejected"},
		{"wrapped app error", fmt.Errorf("login: %w", apperrors.Unauthorized("expired")), "unauthorized"},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"plain", goerrors.New("boom"), "errors_errorstring"},
		{"net op", &net.OpError{Op: "dial", Err: goerrors.New("refused")}, "errors_errorstring"},
		{"dns", &net.DNSError{Err: "no such host"}, "net_dnserror"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
