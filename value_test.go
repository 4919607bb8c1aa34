package statetree_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/comalice/statetree"
)

func branch(children map[string]statetree.StateValue) statetree.StateValue {
	return statetree.BranchValue(children)
}

func leaf(label string) statetree.StateValue {
	return statetree.LeafValue(label)
}

func TestStateValueShape(t *testing.T) {
	assert.True(t, leaf("a").IsLeaf())
	assert.False(t, leaf("a").IsEmpty())

	var zero statetree.StateValue
	assert.False(t, zero.IsLeaf())
	assert.True(t, zero.IsEmpty())

	v := branch(map[string]statetree.StateValue{"a": leaf("a1")})
	assert.False(t, v.IsLeaf())
	assert.False(t, v.IsEmpty())
}

func TestStateValueEqual(t *testing.T) {
	a := branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"a": leaf("a1"), "b": leaf("b1")}),
	})
	b := branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"b": leaf("b1"), "a": leaf("a1")}),
	})
	assert.True(t, a.Equal(b))

	c := branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"a": leaf("a2"), "b": leaf("b1")}),
	})
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(leaf("running")))
}

func TestStateValuePaths(t *testing.T) {
	tests := []struct {
		name  string
		value statetree.StateValue
		want  [][]string
	}{
		{
			name:  "leaf",
			value: leaf("idle"),
			want:  [][]string{{"idle"}},
		},
		{
			name:  "empty",
			value: statetree.StateValue{},
			want:  nil,
		},
		{
			name: "nested",
			value: branch(map[string]statetree.StateValue{
				"running": branch(map[string]statetree.StateValue{"a": leaf("a1"), "b": leaf("b1")}),
			}),
			want: [][]string{{"running", "a", "a1"}, {"running", "b", "b1"}},
		},
		{
			name: "branch with empty child",
			value: branch(map[string]statetree.StateValue{
				"work": {},
			}),
			want: [][]string{{"work"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.value.Paths()); diff != "" {
				t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStateValueString(t *testing.T) {
	v := branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"b": leaf("b1"), "a": leaf("a1")}),
	})
	assert.Equal(t, "{running: {a: a1, b: b1}}", v.String())
	assert.Equal(t, "idle", leaf("idle").String())
}

func TestStateValueYAMLRoundTrip(t *testing.T) {
	v := branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"a": leaf("a1"), "b": leaf("b1")}),
	})

	data, err := yaml.Marshal(v)
	require.NoError(t, err)

	var got statetree.StateValue
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.True(t, v.Equal(got), "got %s", got)
}

func TestStateValueYAMLScalar(t *testing.T) {
	var got statetree.StateValue
	require.NoError(t, yaml.Unmarshal([]byte("idle"), &got))
	assert.True(t, got.IsLeaf())
	assert.Equal(t, "idle", got.Leaf)
}

func TestStateValueJSONRoundTrip(t *testing.T) {
	v := branch(map[string]statetree.StateValue{
		"running": branch(map[string]statetree.StateValue{"a": leaf("a1")}),
	})

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var got statetree.StateValue
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, v.Equal(got), "got %s", got)

	data, err = json.Marshal(leaf("idle"))
	require.NoError(t, err)
	assert.Equal(t, `"idle"`, string(data))
}
