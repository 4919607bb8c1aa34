package production

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/statetree"
)

func editorNode(t *testing.T) *statetree.StateNode {
	t.Helper()

	b := statetree.NewChart("editor")
	toggles := b.Root().Initial("toggles").Parallel("toggles")
	bold := toggles.Compound("bold").Initial("off")
	bold.Atomic("off")
	bold.Atomic("on")
	italic := toggles.Compound("italic").Initial("off")
	italic.Atomic("off")
	italic.Atomic("on")

	node, err := b.Build()
	require.NoError(t, err)
	return node
}

func TestPersisterRoundTrip(t *testing.T) {
	node := editorNode(t)
	tree := statetree.New(node, statetree.StateValue{}).Resolved()
	snapshot := Snapshot("editor", tree)

	jsonPersister, err := NewJSONPersister(t.TempDir())
	require.NoError(t, err)
	yamlPersister, err := NewYAMLPersister(t.TempDir())
	require.NoError(t, err)

	for name, p := range map[string]Persister{"json": jsonPersister, "yaml": yamlPersister} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, p.Save(context.Background(), snapshot))

			loaded, err := p.Load(context.Background(), "editor")
			require.NoError(t, err)
			assert.Equal(t, "editor", loaded.ChartID)
			assert.True(t, loaded.Resolved)
			assert.True(t, snapshot.Value.Equal(loaded.Value),
				"value round trip: got %s, want %s", loaded.Value, snapshot.Value)

			// The loaded value rebuilds the same configuration.
			rebuilt := statetree.New(node, loaded.Value)
			assert.True(t, tree.Value().Equal(rebuilt.Value()))
		})
	}
}

func TestPersisterLoadMissing(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	require.NoError(t, err)

	_, err = p.Load(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
