package hierarchy

import (
	"fmt"
	"math"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
)

// Data is the nested input form of a hierarchy node.
//
// Numeric fields are pointers so that an omitted field can be told apart
// from an explicit zero.
type Data struct {
	Name        string   `json:"name" yaml:"name"`
	Value       *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Radius      *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Uncertainty *float64 `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
	Children    []Data   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Row is one record of the flat (stratified) input form. The root is the
// single row with an empty Parent.
type Row struct {
	ID          string   `json:"id" yaml:"id"`
	Parent      string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Value       *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Radius      *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Uncertainty *float64 `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
}

// Build validates nested input and returns the indexed tree.
func Build(data Data) (*Tree, error) {
	root, err := buildNode(data, data.Name)
	if err != nil {
		return nil, err
	}
	return finish(root)
}

func buildNode(d Data, path string) (*Node, error) {
	n, err := newNode(d.Name, d.Value, d.Radius, d.Uncertainty, path)
	if err != nil {
		return nil, err
	}
	for i, c := range d.Children {
		cp := fmt.Sprintf("%s/%s", path, c.Name)
		if c.Name == "" {
			cp = fmt.Sprintf("%s/#%d", path, i)
		}
		child, err := buildNode(c, cp)
		if err != nil {
			return nil, err
		}
		child.Parent = n
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// FromFlat validates stratified rows and returns the indexed tree.
// Children keep the order in which their rows appear.
func FromFlat(rows []Row) (*Tree, error) {
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy, "no rows")
	}

	byID := make(map[string]*Node, len(rows))
	for i, r := range rows {
		if r.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy, "row %d: missing id", i)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy, "duplicate id %q", r.ID)
		}
		name := r.Name
		if name == "" {
			name = r.ID
		}
		n, err := newNode(name, r.Value, r.Radius, r.Uncertainty, r.ID)
		if err != nil {
			return nil, err
		}
		byID[r.ID] = n
	}

	var root *Node
	for _, r := range rows {
		n := byID[r.ID]
		if r.Parent == "" {
			if root != nil {
				return nil, errors.New(errors.ErrCodeInvalidHierarchy, "multiple roots: %q and %q", root.Name, n.Name)
			}
			root = n
			continue
		}
		p, ok := byID[r.Parent]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy, "row %q: unknown parent %q", r.ID, r.Parent)
		}
		n.Parent = p
		p.Children = append(p.Children, n)
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy, "no root row (every row has a parent)")
	}

	// Rows that never reach the root sit on a parent cycle.
	for _, r := range rows {
		steps := 0
		for a := byID[r.ID]; a != root; a = a.Parent {
			if a == nil || steps > len(rows) {
				return nil, errors.New(errors.ErrCodeInvalidHierarchy, "row %q is part of a cycle", r.ID)
			}
			steps++
		}
	}
	return finish(root)
}

func newNode(name string, value, radius, uncertainty *float64, path string) (*Node, error) {
	n := &Node{Name: name}
	for _, f := range []struct {
		field string
		v     *float64
		dst   *float64
	}{
		{"value", value, &n.Value},
		{"radius", radius, &n.Radius},
		{"uncertainty", uncertainty, &n.Uncertainty},
	} {
		if f.v == nil {
			continue
		}
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy, "node %q: %s is not a finite number", path, f.field)
		}
		if *f.v < 0 {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy, "node %q: negative %s %v", path, f.field, *f.v)
		}
		*f.dst = *f.v
	}
	if value == nil && radius == nil {
		n.Value = math.NaN()
	}
	return n, nil
}

// finish fills internal values, applies the radius fallback and indexes
// the tree. Leaves were marked with a NaN value by newNode when they had
// neither a value nor a radius.
func finish(root *Node) (*Tree, error) {
	var fill func(n *Node) error
	fill = func(n *Node) error {
		if n.IsLeaf() {
			if math.IsNaN(n.Value) {
				return errors.New(errors.ErrCodeInvalidHierarchy, "leaf %q has neither radius nor value", n.Name)
			}
		} else {
			sum := 0.0
			for _, c := range n.Children {
				if err := fill(c); err != nil {
					return err
				}
				sum += c.Value
			}
			if math.IsNaN(n.Value) {
				n.Value = sum
			}
		}
		if n.Radius == 0 {
			n.Radius = n.Value
		}
		return nil
	}
	if err := fill(root); err != nil {
		return nil, err
	}
	return NewTree(root), nil
}
