package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeusync/hotreload/internal/core/project"
)

func TestVariableRoundTrip(t *testing.T) {
	decl := structure("root",
		num("a", 1.5),
		str("b", "text"),
		project.VariableData{Name: "c", Type: project.VariableBoolean, Value: true},
		array("d", num("", 1), str("", "two")),
	)
	v := FromData(decl)
	assert.Equal(t, KindStructure, v.Kind())
	assert.Equal(t, decl, v.ToData("root"))
}

func TestCastTo(t *testing.T) {
	v := FromData(num("x", 5))
	v.AddChild("child", FromData(str("child", "y")))
	assert.Equal(t, KindStructure, v.Kind())
	assert.Equal(t, float64(0), v.Number())

	v.Push(New())
	assert.Equal(t, KindArray, v.Kind())
	assert.False(t, v.HasChild("child"))
	assert.Equal(t, 1, v.Len())

	v.SetString("12")
	assert.Equal(t, float64(12), v.Number())
	assert.Equal(t, 0, v.Len())
}

func TestConversions(t *testing.T) {
	v := New()
	v.SetBool(true)
	assert.Equal(t, float64(1), v.Number())
	assert.Equal(t, "true", v.String())

	v.SetNumber(2.5)
	assert.Equal(t, "2.5", v.String())
	assert.True(t, v.Bool())
}

func TestContainer(t *testing.T) {
	c := NewContainerFromData([]project.VariableData{num("b", 1), num("a", 2)})
	assert.Equal(t, []string{"a", "b"}, c.Names())

	created := c.GetOrCreate("z")
	assert.Same(t, created, c.GetOrCreate("z"))
	assert.Equal(t, 3, c.Len())

	c.Remove("a")
	assert.False(t, c.Has("a"))
}
