package system

import (
	"context"
	"sync"
)

// MockExecutor records commands instead of running them and answers them
// from canned responses.
type MockExecutor struct {
	mu sync.Mutex

	// Commands holds every command in the order it was run.
	Commands []MockCommand

	// Responses are keyed by the full command line ("docker run --name
	// openwrt-r1 ..."), by the command and its first argument ("docker
	// run"), or by the command alone ("gunzip"). The most specific key wins.
	Responses map[string]MockResponse

	// DefaultResponse answers commands without a matching key.
	DefaultResponse MockResponse
}

// MockCommand is one recorded command.
type MockCommand struct {
	Name        string
	Args        []string
	Interactive bool
}

// Line returns the command as CommandLine renders it.
func (c MockCommand) Line() string {
	return CommandLine(c.Name, c.Args...)
}

// keys returns the response keys for c, most specific first.
func (c MockCommand) keys() []string {
	keys := []string{c.Line()}
	if len(c.Args) > 0 {
		keys = append(keys, c.Name+" "+c.Args[0])
	}
	return append(keys, c.Name)
}

// MockResponse is the canned result of a command.
type MockResponse struct {
	Output []byte
	Err    error
}

// NewMockExecutor creates a MockExecutor where every command succeeds
// with no output.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{Responses: make(map[string]MockResponse)}
}

// AddResponse sets the result for commands matching key.
func (m *MockExecutor) AddResponse(key string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[key] = MockResponse{Output: output, Err: err}
}

func (m *MockExecutor) record(c MockCommand) MockResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append(m.Commands, c)
	for _, key := range c.keys() {
		if resp, ok := m.Responses[key]; ok {
			return resp
		}
	}
	return m.DefaultResponse
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	resp := m.record(MockCommand{Name: name, Args: args})
	return resp.Output, resp.Err
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	return m.record(MockCommand{Name: name, Args: args, Interactive: true}).Err
}

// LastCommand returns the most recent command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// CommandLines returns the recorded commands as command lines.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.Line()
	}
	return lines
}

var _ CommandExecutor = (*MockExecutor)(nil)
