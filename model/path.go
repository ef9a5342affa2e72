package model

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasmodel/nodepath"
	"github.com/erraggy/oasmodel/oaserrors"
)

// Path computes the location of n from its document root.
//
// Index segments address list positions, so a path taken before a list is
// reordered may resolve to a different node afterwards.
func (n *Node) Path() (nodepath.Path, error) {
	if n.doc == nil {
		return nodepath.Path{}, &oaserrors.StructuralError{
			Reason:  oaserrors.ReasonInvalidState,
			Message: fmt.Sprintf("%s node is not rooted in a document", n.kind),
		}
	}
	var segs []nodepath.Segment
	c := n
	for ; c.parent != nil; c = c.parent {
		pos, ok := c.parent.positionOf(c)
		if !ok {
			return nodepath.Path{}, &oaserrors.StructuralError{Message: fmt.Sprintf("%s node is missing from its parent", c.kind)}
		}
		switch pos.Shape {
		case ShapeNode:
			segs = append(segs, nodepath.Prop(pos.Field))
		case ShapeList:
			segs = append(segs, nodepath.At(pos.Index), nodepath.Prop(pos.Field))
		case ShapeMap:
			segs = append(segs, nodepath.KeyOf(pos.Key))
			if pos.Field != "" {
				segs = append(segs, nodepath.Prop(pos.Field))
			}
		}
	}
	if c != n.doc.root {
		return nodepath.Path{}, &oaserrors.StructuralError{
			Reason:  oaserrors.ReasonInvalidState,
			Message: fmt.Sprintf("%s node is not rooted in a document", n.kind),
		}
	}
	slices.Reverse(segs)
	return nodepath.New(segs...), nil
}

// resolve walks p from root. Intermediate steps may pass through lists and
// registries; the final target must be a node.
func resolve(root *Node, p nodepath.Path) (*Node, error) {
	var cur any = root
	for i := range p.Len() {
		seg := p.Segment(i)
		var next any
		switch seg.Kind {
		case nodepath.Property:
			if n, ok := cur.(*Node); ok {
				next, _ = n.Get(seg.Name)
			}
		case nodepath.Index:
			if l, ok := cur.(*List); ok {
				if c := l.At(seg.Pos); c != nil {
					next = c
				}
			}
		case nodepath.Key:
			switch t := cur.(type) {
			case *Node:
				if c, ok := t.entries.Get(seg.Name); ok {
					next = c
				}
			case *Registry:
				if c, ok := t.Get(seg.Name); ok {
					next = c
				}
			}
		}
		switch next.(type) {
		case *Node, *List, *Registry:
			cur = next
		default:
			return nil, notFound(p, i)
		}
	}
	n, ok := cur.(*Node)
	if !ok {
		return nil, notFound(p, p.Len()-1)
	}
	return n, nil
}

func notFound(p nodepath.Path, at int) error {
	return &oaserrors.StructuralError{
		Path:    p.String(),
		Reason:  oaserrors.ReasonNodeNotFound,
		Message: fmt.Sprintf("no node at segment %d (%s)", at, p.Segment(at)),
	}
}
