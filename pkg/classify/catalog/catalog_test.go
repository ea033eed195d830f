package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	c := Default()

	assert.Contains(t, c.Extensions["py"], "python")
	assert.Contains(t, c.Extensions["py"], "text")
	assert.Contains(t, c.Extensions["png"], "binary")
	assert.Contains(t, c.Names["Makefile"], "makefile")
	assert.Contains(t, c.Interpreters["python3"], "python")

	for ext, tags := range c.ExtensionsNeedBinaryCheck {
		assert.NotContains(t, tags, "text", "ambiguous extension %q must not decide encoding", ext)
		assert.NotContains(t, tags, "binary", "ambiguous extension %q must not decide encoding", ext)
	}
}

func TestClone(t *testing.T) {
	base := Default()
	clone := base.Clone()

	clone.Extensions["zzz"] = []string{"text", "zzz"}
	clone.Extensions["py"][0] = "mutated"

	assert.NotContains(t, base.Extensions, "zzz")
	assert.Equal(t, "text", base.Extensions["py"][0], "clone must not share backing slices")
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(&Override{
		Extensions:   map[string][]string{"py": {"text", "custom-python"}, "foo": {"text", "foo"}},
		Interpreters: map[string][]string{"foo": {"foo"}},
	})

	assert.Equal(t, []string{"text", "custom-python"}, merged.Extensions["py"], "override wins on duplicate key")
	assert.Equal(t, []string{"text", "foo"}, merged.Extensions["foo"])
	assert.Equal(t, []string{"foo"}, merged.Interpreters["foo"])

	// Base catalog untouched.
	assert.Contains(t, base.Extensions["py"], "python")
	assert.NotContains(t, base.Extensions, "foo")
}

func TestTags(t *testing.T) {
	c := &Catalog{
		Extensions:                map[string][]string{"a": {"text", "alpha"}},
		ExtensionsNeedBinaryCheck: map[string][]string{"b": {"beta"}},
		Names:                     map[string][]string{"C": {"text", "gamma"}},
		Interpreters:              map[string][]string{"d": {"alpha"}},
	}
	tags := c.Tags()
	require.Equal(t, []string{"alpha", "beta", "gamma", "text"}, tags)
}
