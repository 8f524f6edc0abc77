package host

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockHost is a mock implementation of the Host interface.
type MockHost struct {
	mock.Mock
}

func (m *MockHost) Expand(line string) string {
	args := m.Called(line)
	return args.String(0)
}

func (m *MockHost) TryExecute(line string) bool {
	args := m.Called(line)
	return args.Bool(0)
}

func (m *MockHost) NotifyOwner(owner, message string) {
	m.Called(owner, message)
}

func (m *MockHost) LogToConsole(message string) {
	m.Called(message)
}

func (m *MockHost) Deactivate() {
	m.Called()
}

// RecordingHost is a Host that records every call. Expand returns its input and
// TryExecute recognizes the names listed in Commands (all commands when nil).
type RecordingHost struct {
	mu          sync.Mutex
	Commands    map[string]bool
	Executed    []string
	Console     []string
	Notified    []string
	Deactivated int
}

func (r *RecordingHost) Expand(line string) string {
	return line
}

func (r *RecordingHost) TryExecute(line string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Executed = append(r.Executed, line)
	if r.Commands == nil {
		return true
	}
	name := line
	for i, c := range line {
		if c == ' ' {
			name = line[:i]
			break
		}
	}
	return r.Commands[name]
}

func (r *RecordingHost) NotifyOwner(owner, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notified = append(r.Notified, owner+": "+message)
}

func (r *RecordingHost) LogToConsole(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Console = append(r.Console, message)
}

func (r *RecordingHost) Deactivate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Deactivated++
}

// Snapshot returns copies of the recorded calls.
func (r *RecordingHost) Snapshot() (executed, console, notified []string, deactivated int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Executed...),
		append([]string(nil), r.Console...),
		append([]string(nil), r.Notified...),
		r.Deactivated
}
