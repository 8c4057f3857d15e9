package tools

import (
	"context"
	"log/slog"
	"strings"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/metrics"
)

// ContentTypeText is the only content type tools produce.
const ContentTypeText = "text"

// Content is one item of a tool response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the uniform tool response envelope.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text returns the concatenated text content.
func (r Result) Text() string {
	var b strings.Builder
	for _, c := range r.Content {
		b.WriteString(c.Text)
	}
	return b.String()
}

func textResult(text string, isError bool) Result {
	return Result{
		Content: []Content{{Type: ContentTypeText, Text: text}},
		IsError: isError,
	}
}

// Dispatcher routes tool invocations to Operations.
type Dispatcher struct {
	ops      Operations
	logger   *slog.Logger
	recorder metrics.Recorder
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRecorder counts tool calls by outcome.
func WithRecorder(r metrics.Recorder) DispatcherOption {
	return func(d *Dispatcher) {
		if r != nil {
			d.recorder = r
		}
	}
}

// NewDispatcher creates a Dispatcher over ops.
func NewDispatcher(ops Operations, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		ops:      ops,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// List returns the tool descriptors.
func (d *Dispatcher) List() []Descriptor {
	return List()
}

// Call invokes the tool called name with args. It never panics and never
// fails: every outcome is encoded in the Result.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (res Result) {
	toolName, ok := ParseToolName(name)
	if !ok {
		err := terrors.UnknownTool(name)
		d.recorder.IncToolCall("unknown", metrics.OutcomeUnknown)
		d.logger.WarnContext(ctx, "Unknown tool requested", logfields.Tool(name))
		return textResult(terrors.UserMessage(err), true)
	}

	defer func() {
		if r := recover(); r != nil {
			err := terrors.ToolPanic(name, r)
			d.recorder.IncToolCall(name, metrics.OutcomeError)
			d.logger.ErrorContext(ctx, "Tool handler panicked", logfields.Tool(name), logfields.Error(err))
			res = textResult(terrors.UserMessage(err), true)
		}
	}()

	task, err := taskNameArg(args)
	if err != nil {
		return d.failed(ctx, toolName, err)
	}

	out, err := registry[toolName].invoke(d.ops, ctx, task)
	if err != nil {
		return d.failed(ctx, toolName, err)
	}

	outcome := metrics.OutcomeOK
	if out.Outcome.Conflict() {
		outcome = metrics.OutcomeConflict
	}
	d.recorder.IncToolCall(name, outcome)
	d.logger.DebugContext(ctx, "Tool call handled",
		logfields.Tool(name), logfields.Task(task), logfields.Outcome(string(outcome)))
	return textResult(out.Message, false)
}

func (d *Dispatcher) failed(ctx context.Context, name ToolName, err error) Result {
	d.recorder.IncToolCall(string(name), metrics.OutcomeError)
	d.logger.WarnContext(ctx, "Tool call failed", logfields.Tool(string(name)), logfields.Error(err))
	return textResult(terrors.UserMessage(err), true)
}

func taskNameArg(args map[string]any) (string, error) {
	raw, ok := args[ArgTaskName]
	if !ok {
		return "", terrors.ValidationFailed(ArgTaskName, "is required")
	}
	task, ok := raw.(string)
	if !ok || task == "" {
		return "", terrors.ValidationFailed(ArgTaskName, "must be a non-empty string")
	}
	return task, nil
}
