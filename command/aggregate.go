package command

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasmodel/model"
)

// AggregateCommand runs a sequence of commands as one unit. If a member
// fails, the members already executed are undone in reverse order.
type AggregateCommand struct {
	guard
	Name     string    `json:"name"`
	Commands []Command `json:"-"`
}

// Aggregate groups cmds under a descriptive name.
func Aggregate(name string, cmds ...Command) *AggregateCommand {
	return &AggregateCommand{Name: name, Commands: cmds}
}

// Type implements Command.
func (c *AggregateCommand) Type() string { return "Aggregate" }

// Execute implements Command.
func (c *AggregateCommand) Execute(doc *model.Document) error {
	if err := c.checkExecute(c.Type()); err != nil {
		return err
	}
	for i, cmd := range c.Commands {
		if err := cmd.Execute(doc); err != nil {
			err = fmt.Errorf("command: %s: step %d (%s): %w", c.Name, i, cmd.Type(), err)
			if rbErr := rollback(doc, c.Commands[:i]); rbErr != nil {
				return errors.Join(err, rbErr)
			}
			return err
		}
	}
	c.applied = true
	return nil
}

// Undo implements Command.
func (c *AggregateCommand) Undo(doc *model.Document) error {
	if err := c.checkUndo(c.Type()); err != nil {
		return err
	}
	for i := len(c.Commands) - 1; i >= 0; i-- {
		cmd := c.Commands[i]
		if err := cmd.Undo(doc); err != nil {
			err = fmt.Errorf("command: %s: undo step %d (%s): %w", c.Name, i, cmd.Type(), err)
			// Put the members undone so far back to keep the unit whole.
			for _, redo := range c.Commands[i+1:] {
				if reErr := redo.Execute(doc); reErr != nil {
					return errors.Join(err, reErr)
				}
			}
			return err
		}
	}
	c.applied = false
	return nil
}

func rollback(doc *model.Document, done []Command) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].Undo(doc); err != nil {
			errs = append(errs, fmt.Errorf("command: rollback of %s: %w", done[i].Type(), err))
		}
	}
	return errors.Join(errs...)
}
