package statemachine_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/statekit/pkg/executor"
	"github.com/dmitrymomot/statekit/pkg/logger"
	"github.com/dmitrymomot/statekit/pkg/statemachine"
)

const (
	Idle    = statemachine.StringState("idle")
	Running = statemachine.StringState("running")
	Stopped = statemachine.StringState("stopped")

	Start = statemachine.StringTrigger("start")
	Stop  = statemachine.StringTrigger("stop")
	Pause = statemachine.StringTrigger("pause")
)

// quiet keeps test output free of machine logs.
var quiet = statemachine.WithLogger(logger.Discard())

func turnstileTable() *statemachine.Table {
	return statemachine.MustNewTable(
		statemachine.WithTransition(Idle, Running, Start),
		statemachine.WithTransition(Running, Stopped, Stop),
		statemachine.WithTransition(Stopped, Running, Start),
	)
}

type namedStrategy struct {
	name     string
	strategy func() statemachine.Strategy
}

// allStrategies lists one constructor per strategy. Scheduled uses a
// goroutine executor, which is not serial.
func allStrategies() []namedStrategy {
	return []namedStrategy{
		{"blocking", statemachine.Blocking},
		{"guarded", statemachine.Guarded},
		{"guarded_async", statemachine.GuardedAsync},
		{"queued", statemachine.Queued},
		{"scheduled", func() statemachine.Strategy { return statemachine.Scheduled(executor.Go()) }},
	}
}

// blockingAction signals entered once it starts and waits for release.
func blockingAction(entered chan<- struct{}, release <-chan struct{}) statemachine.Action {
	return func(ctx context.Context, from, to statemachine.State, trigger statemachine.Trigger, data any) error {
		entered <- struct{}{}
		<-release
		return nil
	}
}

// MockExecutor is a mock implementation of statemachine.Executor
type MockExecutor struct {
	mock.Mock

	mu    sync.Mutex
	tasks []func()
}

func (m *MockExecutor) Submit(task func()) error {
	args := m.Called(task)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.tasks = append(m.tasks, task)
		m.mu.Unlock()
	}
	return args.Error(0)
}

// next pops the oldest accepted task.
func (m *MockExecutor) next() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return nil
	}
	task := m.tasks[0]
	m.tasks = m.tasks[1:]
	return task
}

// MockSerialExecutor is a MockExecutor that declares itself serial.
type MockSerialExecutor struct {
	MockExecutor
}

func (m *MockSerialExecutor) Serial() bool {
	return true
}

// recordingTracer captures spans started by the machine.
type recordingTracer struct {
	trace.Tracer

	mu    sync.Mutex
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordingSpan{name: name, attrs: map[attribute.Key]string{}}
	for _, kv := range cfg.Attributes() {
		span.attrs[kv.Key] = kv.Value.Emit()
	}

	t.mu.Lock()
	t.spans = append(t.spans, span)
	t.mu.Unlock()

	return trace.ContextWithSpan(ctx, span), span
}

func (t *recordingTracer) recorded() []*recordingSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*recordingSpan(nil), t.spans...)
}

type recordingSpan struct {
	trace.Span

	name   string
	attrs  map[attribute.Key]string
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) {
	s.status = code
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value.Emit()
	}
}
