// Package command implements reversible edits of a document.
//
// Each command captures, at construction time, the node paths, structural
// positions and serialized values it needs. Execute applies the change and
// Undo restores the document to a state equal to the one before Execute,
// including the order of keyed collections and properties:
//
//	cmd, err := command.ReplaceNode(old, replacement)
//	if err != nil {
//		return err
//	}
//	if err := cmd.Execute(doc); err != nil {
//		return err
//	}
//	// ...
//	err = cmd.Undo(doc)
//
// The available commands are ReplaceNode, PatchNode and MergePatchNode
// (RFC 6902 and RFC 7386 patches), AddNode, RemoveNode, RenameNode,
// SetProperty and DeleteProperty. Aggregate groups commands into one unit
// that rolls back on failure. History keeps undo and redo stacks for one
// document, and Marshal/Unmarshal persist commands as JSON envelopes.
//
// Calling Undo before Execute, or Execute twice, returns a
// *oaserrors.CommandError. Commands do no locking; the caller serializes
// access to the document.
package command
