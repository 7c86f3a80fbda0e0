package hooks

import (
	"context"

	"github.com/arloliu/teamsplit/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}

	return types.Hooks{
		OnAssigned: h.OnAssigned,
		OnFallback: h.OnFallback,
		OnError:    h.OnError,
	}
}

// Fill returns a copy of h with every nil callback replaced by a no-op.
func Fill(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}
	if h.OnAssigned != nil {
		out.OnAssigned = h.OnAssigned
	}
	if h.OnFallback != nil {
		out.OnFallback = h.OnFallback
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnAssigned is a no-op implementation.
func (h *NopHooks) OnAssigned(_ context.Context, _ string, _ *types.Result) error {
	return nil
}

// OnFallback is a no-op implementation.
func (h *NopHooks) OnFallback(_ context.Context, _, _, _ string, _ error) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ string, _ error) error {
	return nil
}
