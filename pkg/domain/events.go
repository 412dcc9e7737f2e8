package domain

import (
	"context"
)

// FrontierEvent is emitted once a frontier has been fully computed.
type FrontierEvent struct {
	Depth  int              `json:"depth"`
	States []CompositeState `json:"-"`
}

// StateEvent is emitted for every synthesized composite state.
type StateEvent struct {
	State      CompositeState `json:"-"`
	Determined bool           `json:"determined"`
}

// TransitionEvent is emitted for every generated transition of the flattened machine.
type TransitionEvent struct {
	Transition Transition `json:"-"`
}

// LifecycleHooks defines callbacks for lineation observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnWarning    func(context.Context, Warning)
	OnFrontier   func(context.Context, *FrontierEvent)
	OnState      func(context.Context, *StateEvent)
	OnTransition func(context.Context, *TransitionEvent)
}

// ComposeHooks returns hooks that call each of the given hooks in order.
func ComposeHooks(all ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnWarning: func(ctx context.Context, w Warning) {
			for _, h := range all {
				if h.OnWarning != nil {
					h.OnWarning(ctx, w)
				}
			}
		},
		OnFrontier: func(ctx context.Context, e *FrontierEvent) {
			for _, h := range all {
				if h.OnFrontier != nil {
					h.OnFrontier(ctx, e)
				}
			}
		},
		OnState: func(ctx context.Context, e *StateEvent) {
			for _, h := range all {
				if h.OnState != nil {
					h.OnState(ctx, e)
				}
			}
		},
		OnTransition: func(ctx context.Context, e *TransitionEvent) {
			for _, h := range all {
				if h.OnTransition != nil {
					h.OnTransition(ctx, e)
				}
			}
		},
	}
}
