// Package tools exposes the timer operations as named, schema-described
// tools and dispatches invocations to them.
//
// The tool set is closed: ToolName enumerates it and registry binds each
// name to its descriptor and handler. Every invocation outcome, including
// unknown names and handler panics, is encoded in the returned Result.
package tools

import (
	"context"

	"git.home.luguber.info/inful/tasktimer/internal/timer"
)

// ToolName identifies a tool.
type ToolName string

const (
	StartTimer ToolName = "start_timer"
	StopTimer  ToolName = "stop_timer"
)

// ArgTaskName is the single input field every tool requires.
const ArgTaskName = "taskName"

// Property describes one input field.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Schema is the JSON Schema object describing a tool's arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Descriptor is what discovery returns for one tool.
type Descriptor struct {
	Name        ToolName `json:"name"`
	Description string   `json:"description"`
	InputSchema Schema   `json:"inputSchema"`
}

// Operations is the timer surface the tools call into.
type Operations interface {
	Start(ctx context.Context, task string) (timer.Result, error)
	Stop(ctx context.Context, task string) (timer.Result, error)
}

type tool struct {
	descriptor Descriptor
	invoke     func(ops Operations, ctx context.Context, task string) (timer.Result, error)
}

func taskNameSchema(desc string) Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			ArgTaskName: {Type: "string", Description: desc},
		},
		Required: []string{ArgTaskName},
	}
}

// order fixes discovery order; registry is keyed by the same names.
var order = []ToolName{StartTimer, StopTimer}

var registry = map[ToolName]tool{
	StartTimer: {
		descriptor: Descriptor{
			Name:        StartTimer,
			Description: "Start a timer for a named task. Fails softly if a timer for the task is already running.",
			InputSchema: taskNameSchema("Name of the task to start timing"),
		},
		invoke: Operations.Start,
	},
	StopTimer: {
		descriptor: Descriptor{
			Name:        StopTimer,
			Description: "Stop the running timer for a named task and report the elapsed time in minutes and seconds.",
			InputSchema: taskNameSchema("Name of the task to stop timing"),
		},
		invoke: Operations.Stop,
	},
}

// ParseToolName reports whether name is a known tool.
func ParseToolName(name string) (ToolName, bool) {
	_, ok := registry[ToolName(name)]
	return ToolName(name), ok
}

// List returns the descriptors of every tool, in a fixed order.
func List() []Descriptor {
	out := make([]Descriptor, 0, len(order))
	for _, name := range order {
		d := registry[name].descriptor
		d.InputSchema.Required = append([]string(nil), d.InputSchema.Required...)
		props := make(map[string]Property, len(d.InputSchema.Properties))
		for k, v := range d.InputSchema.Properties {
			props[k] = v
		}
		d.InputSchema.Properties = props
		out = append(out, d)
	}
	return out
}
