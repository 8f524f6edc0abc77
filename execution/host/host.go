// Package host declares the services a host application provides to the script engine,
// and the capability view the engine hands to running scripts.
package host

// Host is implemented by the embedding application. Every method is fire-and-forget
// from the engine's point of view. Compiled scripts call into the Host from their own
// goroutine, so implementations must be safe for concurrent use.
type Host interface {
	// Expand substitutes host variables in an interpreted-mode line.
	Expand(line string) string

	// TryExecute runs line through the host command table and reports whether the
	// command was recognized.
	TryExecute(line string) bool

	// NotifyOwner sends a message to the requester who started the script.
	NotifyOwner(owner, message string)

	// LogToConsole writes a message to the host console.
	LogToConsole(message string)

	// Deactivate tells the host to stop ticking the script.
	Deactivate()
}

// Capabilities is what a running script may do to its host. It is passed explicitly to
// the interpreter and to the entry point of every compiled unit.
type Capabilities interface {
	// Log writes to the host console.
	Log(message string)
	// Notify messages the script owner, if there is one.
	Notify(message string)
	// Command runs a host command and reports whether it was recognized.
	Command(line string) bool
	// Expand substitutes host variables in text.
	Expand(text string) string
}
