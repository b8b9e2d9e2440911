package variables

import (
	"sort"
	"strconv"

	"github.com/zeusync/hotreload/internal/core/project"
)

// Kind is the shape of a variable node. It can change during the node's lifetime.
type Kind uint8

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindStructure
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindStructure:
		return "structure"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// IsPrimitive reports whether the node holds a single value.
func (k Kind) IsPrimitive() bool {
	return k != KindStructure && k != KindArray
}

func kindOf(t project.VariableType) Kind {
	switch t {
	case project.VariableString:
		return KindString
	case project.VariableBoolean:
		return KindBoolean
	case project.VariableStructure:
		return KindStructure
	case project.VariableArray:
		return KindArray
	default:
		return KindNumber
	}
}

// Variable is a mutable tree node: a primitive value, a structure of named
// children or an array of ordered children.
type Variable struct {
	kind     Kind
	number   float64
	str      string
	boolean  bool
	children map[string]*Variable
	items    []*Variable
}

// New returns a number variable holding zero.
func New() *Variable {
	return &Variable{kind: KindNumber}
}

// FromData builds a fresh variable tree from a declaration.
func FromData(d project.VariableData) *Variable {
	v := &Variable{kind: kindOf(d.Type)}
	switch v.kind {
	case KindNumber:
		v.number, _ = project.Literal(project.VariableNumber, d.Value).(float64)
	case KindString:
		v.str, _ = project.Literal(project.VariableString, d.Value).(string)
	case KindBoolean:
		v.boolean, _ = project.Literal(project.VariableBoolean, d.Value).(bool)
	case KindStructure:
		v.children = make(map[string]*Variable, len(d.Children))
		for _, c := range d.Children {
			v.children[c.Name] = FromData(c)
		}
	case KindArray:
		v.items = make([]*Variable, 0, len(d.Children))
		for _, c := range d.Children {
			v.items = append(v.items, FromData(c))
		}
	}
	return v
}

func (v *Variable) Kind() Kind { return v.kind }

func (v *Variable) Number() float64 {
	switch v.kind {
	case KindNumber:
		return v.number
	case KindString:
		f, _ := strconv.ParseFloat(v.str, 64)
		return f
	case KindBoolean:
		if v.boolean {
			return 1
		}
	}
	return 0
}

func (v *Variable) SetNumber(n float64) {
	v.CastTo(KindNumber)
	v.number = n
}

func (v *Variable) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	}
	return ""
}

func (v *Variable) SetString(s string) {
	v.CastTo(KindString)
	v.str = s
}

func (v *Variable) Bool() bool {
	switch v.kind {
	case KindBoolean:
		return v.boolean
	case KindNumber:
		return v.number != 0
	case KindString:
		return v.str == "true"
	}
	return false
}

func (v *Variable) SetBool(b bool) {
	v.CastTo(KindBoolean)
	v.boolean = b
}

// CastTo changes the node's kind in place. Casting to a container drops the
// primitive value; casting to a primitive drops the children.
func (v *Variable) CastTo(k Kind) {
	if v.kind == k {
		return
	}
	v.kind = k
	v.number, v.str, v.boolean = 0, "", false
	v.children, v.items = nil, nil
	switch k {
	case KindStructure:
		v.children = make(map[string]*Variable)
	case KindArray:
		v.items = make([]*Variable, 0)
	}
}

// Child returns a named child of a structure.
func (v *Variable) Child(name string) (*Variable, bool) {
	if v.kind != KindStructure {
		return nil, false
	}
	c, ok := v.children[name]
	return c, ok
}

func (v *Variable) HasChild(name string) bool {
	_, ok := v.Child(name)
	return ok
}

// AddChild inserts or replaces a named child, casting the node to a structure.
func (v *Variable) AddChild(name string, child *Variable) {
	v.CastTo(KindStructure)
	v.children[name] = child
}

func (v *Variable) RemoveChild(name string) {
	if v.kind == KindStructure {
		delete(v.children, name)
	}
}

// ChildNames returns the structure's child names, sorted.
func (v *Variable) ChildNames() []string {
	names := make([]string, 0, len(v.children))
	for name := range v.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns an element of an array.
func (v *Variable) At(i int) (*Variable, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// Push appends an element, casting the node to an array.
func (v *Variable) Push(item *Variable) {
	v.CastTo(KindArray)
	v.items = append(v.items, item)
}

// Len is the number of children of a container, zero for primitives.
func (v *Variable) Len() int {
	switch v.kind {
	case KindStructure:
		return len(v.children)
	case KindArray:
		return len(v.items)
	}
	return 0
}

// ToData serializes the current shape and values of the tree.
func (v *Variable) ToData(name string) project.VariableData {
	d := project.VariableData{Name: name}
	switch v.kind {
	case KindNumber:
		d.Type, d.Value = project.VariableNumber, v.number
	case KindString:
		d.Type, d.Value = project.VariableString, v.str
	case KindBoolean:
		d.Type, d.Value = project.VariableBoolean, v.boolean
	case KindStructure:
		d.Type = project.VariableStructure
		for _, n := range v.ChildNames() {
			d.Children = append(d.Children, v.children[n].ToData(n))
		}
	case KindArray:
		d.Type = project.VariableArray
		for _, item := range v.items {
			d.Children = append(d.Children, item.ToData(""))
		}
	}
	return d
}
