package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultQueryTimeout bounds each server's tools/list query so one
// unreachable server cannot stall catalog construction.
const DefaultQueryTimeout = 5 * time.Second

// clientName identifies this tool in the MCP initialize handshake.
const clientName = "agentdeck"

// ToolInfo is one tool exposed by an MCP server.
type ToolInfo struct {
	Name        string // tool name as reported by the server
	FullName    string // namespaced identifier: mcp__<server>__<name>
	Description string
}

// ServerTools is the discovery result for one configured server. A server
// that could not be reached has Connected false, an error message and no
// tools, but remains assignable via wildcard or hand-entered identifiers.
type ServerTools struct {
	Name      string
	Spec      ServerSpec
	Connected bool
	Err       string
	Tools     []ToolInfo
}

// QueryOptions tunes server discovery.
type QueryOptions struct {
	Timeout time.Duration // per-server; DefaultQueryTimeout if zero
	Version string        // client version reported in the handshake
	Logger  *slog.Logger
}

func (o QueryOptions) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultQueryTimeout
}

func (o QueryOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// QueryServers queries every configured server for its tool list. Servers
// are queried in parallel, each bounded by its own timeout; one server's
// failure never affects another's result. Results come back in name order.
func QueryServers(ctx context.Context, specs map[string]ServerSpec, opts QueryOptions) []ServerTools {
	names := SortedNames(specs)
	results := make([]ServerTools, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			results[i] = QueryServer(ctx, name, specs[name], opts)
		}(i, name)
	}
	wg.Wait()

	return results
}

// QueryServer performs the capability-listing handshake against one server.
// Spawn errors, protocol errors and timeouts all degrade to a disconnected
// result rather than propagating.
func QueryServer(ctx context.Context, name string, spec ServerSpec, opts QueryOptions) ServerTools {
	result := ServerTools{Name: name, Spec: spec}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	var transport sdk.Transport
	switch {
	case spec.IsStdio():
		cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
		cmd.Env = os.Environ()
		for k, v := range spec.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
		transport = &sdk.CommandTransport{Command: cmd}
	case spec.IsRemote():
		transport = &sdk.StreamableClientTransport{
			Endpoint:   spec.URL,
			HTTPClient: httpClientFor(spec.Headers, opts.timeout()),
		}
	default:
		result.Err = "no command or url specified"
		return result
	}

	tools, err := listTools(ctx, transport, name, opts.Version)
	if err != nil {
		opts.logger().Warn("mcp server query failed", "server", name, "error", err)
		result.Err = err.Error()
		return result
	}

	result.Connected = true
	result.Tools = tools
	return result
}

// listTools runs initialize + tools/list over an established transport and
// maps the response to namespaced ToolInfo values.
func listTools(ctx context.Context, transport sdk.Transport, server, version string) ([]ToolInfo, error) {
	client := sdk.NewClient(&sdk.Implementation{Name: clientName, Version: version}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = session.Close() }()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		return nil, err
	}

	tools := make([]ToolInfo, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, ToolInfo{
			Name:        t.Name,
			FullName:    fullToolName(server, t.Name),
			Description: t.Description,
		})
	}
	return tools, nil
}

func fullToolName(server, tool string) string {
	return "mcp__" + server + "__" + tool
}

// headerTransport injects configured auth headers into every request of a
// remote server's HTTP client.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}

func httpClientFor(headers map[string]string, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if len(headers) > 0 {
		client.Transport = &headerTransport{base: http.DefaultTransport, headers: headers}
	}
	return client
}
