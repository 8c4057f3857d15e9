// Package mcpserver serves the timer tools over the Model Context Protocol
// on a line-delimited stdio stream.
//
// Protocol handling (initialize, tools/list, tools/call framing) is done by
// mcp-go. Calls naming a tool that is not registered are answered by the
// dispatcher instead of the library, so the caller receives the same
// text-plus-error-flag envelope for every tool outcome.
package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	terrors "git.home.luguber.info/inful/tasktimer/internal/errors"
	"git.home.luguber.info/inful/tasktimer/internal/logfields"
	"git.home.luguber.info/inful/tasktimer/internal/observability"
	"git.home.luguber.info/inful/tasktimer/internal/tools"
)

// Dispatcher is the tool surface being served.
type Dispatcher interface {
	List() []tools.Descriptor
	Call(ctx context.Context, name string, args map[string]any) tools.Result
}

// Server bridges a Dispatcher to an MCP stdio stream.
type Server struct {
	mcp        *server.MCPServer
	dispatcher Dispatcher
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New registers every tool the dispatcher lists under an MCP server named name.
func New(name, version string, d Dispatcher, opts ...Option) *Server {
	s := &Server{
		mcp:        server.NewMCPServer(name, version, server.WithToolCapabilities(false)),
		dispatcher: d,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, desc := range d.List() {
		s.mcp.AddTool(toMCPTool(desc), s.handle)
	}
	return s
}

func (s *Server) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toMCPResult(s.dispatcher.Call(ctx, req.Params.Name, req.GetArguments())), nil
}

// Serve processes one message per line from in, writing each response as a
// line to out, until in is exhausted or ctx is cancelled. Messages are
// handled strictly in arrival order.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		for {
			line, err := reader.ReadBytes('\n')
			if len(bytes.TrimSpace(line)) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	s.logger.Info("Serving timer tools on stdio")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if errors.Is(err, io.EOF) {
						return nil
					}
					return terrors.ServerFailed(err)
				case <-ctx.Done():
					return nil
				}
			}
			if err := s.handleLine(ctx, line, out); err != nil {
				return terrors.ServerFailed(err)
			}
		}
	}
}

// callEnvelope is the subset of a JSON-RPC tools/call request needed to
// decide whether the library knows the tool.
type callEnvelope struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"params"`
}

type callResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      json.RawMessage     `json:"id"`
	Result  *mcp.CallToolResult `json:"result"`
}

func (s *Server) handleLine(ctx context.Context, line []byte, out io.Writer) error {
	var env callEnvelope
	parsed := json.Unmarshal(line, &env) == nil && len(env.ID) > 0
	if parsed {
		ctx = observability.WithRequestID(ctx, strings.Trim(string(env.ID), `"`))
	}
	if parsed && env.Method == string(mcp.MethodToolsCall) {
		ctx = observability.WithTool(ctx, env.Params.Name)
		if _, known := tools.ParseToolName(env.Params.Name); !known {
			s.logger.DebugContext(ctx, "Answering unregistered tool call", logfields.Tool(env.Params.Name))
			res := s.dispatcher.Call(ctx, env.Params.Name, decodeArguments(env.Params.Arguments))
			return writeMessage(out, callResponse{
				JSONRPC: mcp.JSONRPC_VERSION,
				ID:      env.ID,
				Result:  toMCPResult(res),
			})
		}
	}

	response := s.mcp.HandleMessage(ctx, line)
	if response == nil {
		// Notifications have no response.
		return nil
	}
	return writeMessage(out, response)
}

// decodeArguments returns raw as an object, or nil when it is absent or not
// an object. The dispatcher rejects unknown tools before reading arguments.
func decodeArguments(raw json.RawMessage) map[string]any {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil
	}
	return args
}

func writeMessage(out io.Writer, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func toMCPTool(desc tools.Descriptor) mcp.Tool {
	props := make(map[string]any, len(desc.InputSchema.Properties))
	for name, p := range desc.InputSchema.Properties {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[name] = prop
	}
	return mcp.Tool{
		Name:        string(desc.Name),
		Description: desc.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       desc.InputSchema.Type,
			Properties: props,
			Required:   desc.InputSchema.Required,
		},
	}
}

func toMCPResult(res tools.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(res.Content))
	for _, c := range res.Content {
		content = append(content, mcp.NewTextContent(c.Text))
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: res.IsError,
	}
}
