package httpx

import (
	"context"
	"sync"

	"github.com/learnsphere/learnsphere-ui/internal/ports"
)

// redirectNavigator records the forced navigation requested during a request.
// Handlers consult it after every backend call and turn it into a 303.
type redirectNavigator struct {
	mu     sync.Mutex
	target string
}

var _ ports.Navigator = (*redirectNavigator)(nil)

func (n *redirectNavigator) Navigate(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == "" {
		n.target = path
	}
}

// Target returns the first requested path, or "".
func (n *redirectNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}
