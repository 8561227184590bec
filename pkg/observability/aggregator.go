package observability

import "github.com/aretw0/fable/pkg/domain"

// Combine fans each lifecycle event out to every hook set, in order.
// Nil callbacks are skipped.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		onEnter []func(*domain.NodeEvent)
		onFrame []func(*domain.FrameEvent)
		onError []func(*domain.ErrorEvent)
	)
	for _, s := range sets {
		if s.OnNodeEnter != nil {
			onEnter = append(onEnter, s.OnNodeEnter)
		}
		if s.OnFrame != nil {
			onFrame = append(onFrame, s.OnFrame)
		}
		if s.OnError != nil {
			onError = append(onError, s.OnError)
		}
	}

	var out domain.LifecycleHooks
	if len(onEnter) > 0 {
		out.OnNodeEnter = func(e *domain.NodeEvent) {
			for _, fn := range onEnter {
				fn(e)
			}
		}
	}
	if len(onFrame) > 0 {
		out.OnFrame = func(e *domain.FrameEvent) {
			for _, fn := range onFrame {
				fn(e)
			}
		}
	}
	if len(onError) > 0 {
		out.OnError = func(e *domain.ErrorEvent) {
			for _, fn := range onError {
				fn(e)
			}
		}
	}
	return out
}
