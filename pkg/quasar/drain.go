package quasar

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ProcessRenderQueue re-renders every queued view once, in order of first
// enqueue. Keys with no binding are skipped. A render that fails is logged
// and counted and leaves the view's markup unchanged.
//
// After each render only the binding's children are replaced; its root
// element keeps its identity, so root handlers stay attached. Selector
// handlers are re-matched against the new subtree.
//
// Bindings nested inside a re-rendered view lose their markup with the
// parent's children, so they are re-rendered right after it, in bind order.
// A view re-rendered that way is not rendered again for the same drain.
//
// Draining an empty queue does nothing. Starting a drain from inside a drain
// panics with *ReentrancyError.
func (s *AppState) ProcessRenderQueue() {
	s.drain(context.Background())
}

// drain runs ProcessRenderQueue with its span parented under ctx.
func (s *AppState) drain(ctx context.Context) {
	if s.draining {
		panic(&ReentrancyError{Resource: "render queue", Reason: "drain started inside a drain"})
	}
	if s.queue.len() == 0 {
		return
	}

	s.draining = true
	defer func() { s.draining = false }()

	start := time.Now()
	_, span := s.tracer.Start(ctx, "quasar.drain")
	defer span.End()

	views := s.queue.take()
	done := make(map[TypedKey]bool, len(views))
	failed := 0
	for _, key := range views {
		if done[key] {
			continue
		}
		b, ok := s.bindings[key]
		if !ok {
			s.logger.Debug("skipping stale view", "view", key.String())
			s.metrics.recordRender("skipped")
			continue
		}
		done[key] = true
		if err := s.rerender(b); err != nil {
			failed++
			span.RecordError(err)
			continue
		}
		for _, ck := range s.order {
			c := s.bindings[ck]
			if done[ck] || !b.node.Contains(c.node) {
				continue
			}
			done[ck] = true
			s.logger.Debug("re-rendering nested view", "view", ck.String(), "parent", key.String())
			if err := s.rerender(c); err != nil {
				failed++
				span.RecordError(err)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("quasar.views", len(views)),
		attribute.Int("quasar.failed", failed),
	)
	if failed > 0 {
		span.SetStatus(codes.Error, "render failed")
	}
	s.metrics.recordDrain(time.Since(start))
}

func (s *AppState) rerender(b *Binding) error {
	b.state = Rendering
	defer func() { b.state = Mounted }()

	s.observers.resetView(b.key)

	markup, err := s.render(b)
	if err != nil {
		s.logger.Error("render failed", "view", b.key.String(), "error", err)
		s.metrics.recordRender("error")
		return err
	}
	if err := b.node.SetInnerMarkup(markup); err != nil {
		err = &RenderError{View: b.key, Err: err}
		s.logger.Error("patch failed", "view", b.key.String(), "error", err)
		s.metrics.recordRender("error")
		return err
	}

	attached, detached := 0, 0
	for _, h := range b.handlers {
		if h.selector == "" {
			continue
		}
		a, d, err := h.sync(b.node)
		if err != nil {
			s.logger.Error("handler resync failed", "view", b.key.String(), "selector", h.selector, "error", err)
			continue
		}
		attached += a
		detached += d
	}
	s.metrics.recordListeners(attached, detached)
	s.metrics.recordRender("ok")
	s.logger.Debug("view rendered", "view", b.key.String(), "attached", attached, "detached", detached)
	return nil
}

// render runs the component's Render under a shared borrow of the binding.
// State writes are rejected until it returns.
func (s *AppState) render(b *Binding) (string, error) {
	release := b.borrow.read("binding " + b.key.String())
	defer release()

	s.rendering++
	defer func() { s.rendering-- }()

	markup, err := b.renderer.Render(s.node(b.node), &AppContext{state: s, view: &b.key})
	if err != nil {
		return "", &RenderError{View: b.key, Err: err}
	}
	return markup, nil
}
