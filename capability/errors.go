package capability

import (
	"fmt"
	"strings"
)

// NoProviderError is raised when a request matches zero registered
// providers.
type NoProviderError struct {
	Kind        Key
	Params      Params
	RequestedBy string
}

func (e *NoProviderError) Error() string {
	if e.RequestedBy == "" {
		return fmt.Sprintf("capability: no provider for %q", e.Kind)
	}
	return fmt.Sprintf("capability: no provider for %q (requested by %s)", e.Kind, e.RequestedBy)
}

// AmbiguousProviderError is raised when a request matches more than one
// registered provider.
type AmbiguousProviderError struct {
	Kind       Key
	Params     Params
	Candidates []string
}

func (e *AmbiguousProviderError) Error() string {
	return fmt.Sprintf("capability: ambiguous providers for %q: %s", e.Kind, strings.Join(e.Candidates, ", "))
}

// CycleError is raised when expanding Requires would form a dependency
// cycle; Edges is the chain of MemoKeys (as strings) that closes the loop.
type CycleError struct {
	Edges [][2]string
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Edges))
	for i, edge := range e.Edges {
		parts[i] = fmt.Sprintf("%s -> %s", edge[0], edge[1])
	}
	return "capability: dependency cycle: " + strings.Join(parts, ", ")
}
