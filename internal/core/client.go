package core

// defaultChannelBuffer is used when no explicit buffer size is given.
const defaultChannelBuffer = 8

// Client is a connected participant as seen by the core layer. The
// transport owns the network connection; the core only sees the
// command and event channels.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels. A buffer of
// zero selects the default size.
func NewClient(id, name string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultChannelBuffer
	}
	return &Client{
		ID:       id,
		Name:     name,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
	}
}
