package command

import (
	"encoding/json"
	"fmt"

	"github.com/erraggy/oasmodel/oaserrors"
)

// envelope is the serialized form of a command.
type envelope struct {
	Type    string          `json:"type"`
	Command json.RawMessage `json:"command"`
}

var factories = map[string]func() Command{
	"ReplaceNode": func() Command { return &ReplaceNodeCommand{} },
	"PatchNode":   func() Command { return &PatchNodeCommand{} },
	"AddNode":     func() Command { return &AddNodeCommand{} },
	"RemoveNode":  func() Command { return &RemoveNodeCommand{} },
	"RenameNode":  func() Command { return &RenameNodeCommand{} },
	"SetProperty": func() Command { return &SetPropertyCommand{} },
	"Aggregate":   func() Command { return &AggregateCommand{} },
}

// Marshal encodes cmd as {"type": ..., "command": {...}}. The applied state
// is not serialized; a decoded command starts unexecuted.
func Marshal(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, &oaserrors.CommandError{Message: "nil command"}
	}
	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("command: marshal %s: %w", cmd.Type(), err)
	}
	return json.Marshal(envelope{Type: cmd.Type(), Command: body})
}

// Unmarshal decodes a command produced by Marshal.
func Unmarshal(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid command envelope", Cause: err}
	}
	newCmd, ok := factories[env.Type]
	if !ok {
		return nil, &oaserrors.UnsupportedError{Operation: "unmarshal command", Message: fmt.Sprintf("unknown command type %q", env.Type)}
	}
	cmd := newCmd()
	if len(env.Command) == 0 {
		return nil, &oaserrors.ParseError{Message: fmt.Sprintf("%s envelope has no command body", env.Type)}
	}
	if err := json.Unmarshal(env.Command, cmd); err != nil {
		return nil, &oaserrors.ParseError{Message: fmt.Sprintf("invalid %s command", env.Type), Cause: err}
	}
	return cmd, nil
}

type aggregateJSON struct {
	Name     string            `json:"name"`
	Commands []json.RawMessage `json:"commands"`
}

// MarshalJSON encodes the members as nested envelopes.
func (c *AggregateCommand) MarshalJSON() ([]byte, error) {
	out := aggregateJSON{Name: c.Name, Commands: make([]json.RawMessage, 0, len(c.Commands))}
	for _, cmd := range c.Commands {
		data, err := Marshal(cmd)
		if err != nil {
			return nil, err
		}
		out.Commands = append(out.Commands, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes nested envelopes.
func (c *AggregateCommand) UnmarshalJSON(data []byte) error {
	var in aggregateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Name = in.Name
	c.Commands = make([]Command, 0, len(in.Commands))
	for _, raw := range in.Commands {
		cmd, err := Unmarshal(raw)
		if err != nil {
			return err
		}
		c.Commands = append(c.Commands, cmd)
	}
	return nil
}
