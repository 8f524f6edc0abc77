package host

// scoped binds a Host to one script owner.
type scoped struct {
	host  Host
	owner string
}

// NewCapabilities returns the Capabilities of a script started by owner.
// An empty owner makes Notify a no-op.
func NewCapabilities(h Host, owner string) Capabilities {
	return &scoped{host: h, owner: owner}
}

func (s *scoped) Log(message string) {
	s.host.LogToConsole(message)
}

func (s *scoped) Notify(message string) {
	if s.owner == "" {
		return
	}
	s.host.NotifyOwner(s.owner, message)
}

func (s *scoped) Command(line string) bool {
	return s.host.TryExecute(line)
}

func (s *scoped) Expand(text string) string {
	return s.host.Expand(text)
}
