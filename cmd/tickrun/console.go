package main

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

var varPattern = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

// consoleHost is a minimal host: a console writer, a command table with log, echo
// and set, and %name% variables. Unknown variables are left as they are.
type consoleHost struct {
	mu   sync.Mutex
	out  io.Writer
	vars map[string]string
	fold cases.Caser
	done chan struct{}
	once sync.Once
}

func newConsoleHost(out io.Writer, vars map[string]string) *consoleHost {
	if vars == nil {
		vars = map[string]string{}
	}
	return &consoleHost{
		out:  out,
		vars: vars,
		fold: cases.Fold(),
		done: make(chan struct{}),
	}
}

func (c *consoleHost) Expand(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return varPattern.ReplaceAllStringFunc(line, func(m string) string {
		if v, ok := c.vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func (c *consoleHost) TryExecute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	switch c.fold.String(fields[0]) {
	case "log":
		fmt.Fprintln(c.out, rest)
	case "echo":
		fmt.Fprintln(c.out, "> "+rest)
	case "set":
		if len(fields) < 2 {
			return false
		}
		c.vars[fields[1]] = strings.TrimSpace(strings.TrimPrefix(rest, fields[1]))
	default:
		return false
	}
	return true
}

func (c *consoleHost) NotifyOwner(owner, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "[%s] %s\n", owner, message)
}

func (c *consoleHost) LogToConsole(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, message)
}

func (c *consoleHost) Deactivate() {
	c.once.Do(func() { close(c.done) })
}

// Done is closed once the script deactivates.
func (c *consoleHost) Done() <-chan struct{} {
	return c.done
}
