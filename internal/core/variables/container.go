package variables

import (
	"sort"

	"github.com/zeusync/hotreload/internal/core/project"
)

// Container holds the named variables of a game, a scene or an object.
type Container struct {
	vars map[string]*Variable
}

func NewContainer() *Container {
	return &Container{vars: make(map[string]*Variable)}
}

// NewContainerFromData builds a container from declarations. Later declarations
// with a duplicate name win.
func NewContainerFromData(data []project.VariableData) *Container {
	c := NewContainer()
	for _, d := range data {
		c.vars[d.Name] = FromData(d)
	}
	return c
}

func (c *Container) Get(name string) (*Variable, bool) {
	v, ok := c.vars[name]
	return v, ok
}

func (c *Container) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// GetOrCreate returns the named variable, creating a zero number if missing,
// which is what gameplay code expects when reading an undeclared variable.
func (c *Container) GetOrCreate(name string) *Variable {
	if v, ok := c.vars[name]; ok {
		return v
	}
	v := New()
	c.vars[name] = v
	return v
}

func (c *Container) Add(name string, v *Variable) {
	c.vars[name] = v
}

func (c *Container) Remove(name string) {
	delete(c.vars, name)
}

func (c *Container) Len() int { return len(c.vars) }

// Names returns the variable names, sorted.
func (c *Container) Names() []string {
	names := make([]string, 0, len(c.vars))
	for n := range c.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ToData serializes every variable, sorted by name.
func (c *Container) ToData() []project.VariableData {
	out := make([]project.VariableData, 0, len(c.vars))
	for _, n := range c.Names() {
		out = append(out, c.vars[n].ToData(n))
	}
	return out
}
