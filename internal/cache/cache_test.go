package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardiosim/exprgen/internal/expr"
)

var (
	a = expr.Name{Ref: "a"}
	b = expr.Name{Ref: "b"}
)

func open(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	c := open(t)

	token, err := c.BeginRun(ctx, "tissue-sim")
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(token))

	e := expr.Plus{L: a, R: b}
	require.NoError(t, c.Put(ctx, token, "c", e, "a + b"))

	out, ok, err := c.Get(ctx, "c", e)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a + b", out)
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	c := open(t)

	_, ok, err := c.Get(ctx, "c", expr.Plus{L: a, R: b})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTargetsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	c := open(t)

	token, err := c.BeginRun(ctx, "p")
	require.NoError(t, err)

	e := expr.Power{L: a, R: b}
	require.NoError(t, c.Put(ctx, token, "c", e, "pow(a, b)"))
	require.NoError(t, c.Put(ctx, token, "python", e, "a ** b"))

	out, ok, err := c.Get(ctx, "python", e)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a ** b", out)
}

func TestRerenderReplaces(t *testing.T) {
	ctx := context.Background()
	c := open(t)

	first, err := c.BeginRun(ctx, "p")
	require.NoError(t, err)
	second, err := c.BeginRun(ctx, "p")
	require.NoError(t, err)

	e := expr.Sin{Op: a}
	require.NoError(t, c.Put(ctx, first, "c", e, "sin(a)"))
	require.NoError(t, c.Put(ctx, second, "c", e, "sin(a)"))

	// The replacement moved the render to the second run.
	n, err := c.RunSize(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	n, err = c.RunSize(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestKeyDistinguishesStructure(t *testing.T) {
	// Log base ten and Log10 are value-equivalent but structurally
	// distinct; the cache must not conflate them.
	logBase := expr.Log{Op: a, Base: expr.Number{Value: 10}}
	log10 := expr.Log10{Op: a}
	assert.NotEqual(t, Key(logBase), Key(log10))

	// Same structure, same key.
	assert.Equal(t,
		Key(expr.Plus{L: a, R: b}),
		Key(expr.Plus{L: expr.Name{Ref: "a"}, R: expr.Name{Ref: "b"}}))
}

func TestPurgeRunCascades(t *testing.T) {
	ctx := context.Background()
	c := open(t)

	token, err := c.BeginRun(ctx, "p")
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, token, "c", a, "a"))

	require.NoError(t, c.PurgeRun(ctx, token))

	_, ok, err := c.Get(ctx, "c", a)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenOnDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "render.db")

	c, err := Open(path)
	require.NoError(t, err)
	token, err := c.BeginRun(ctx, "p")
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, token, "c", a, "a"))
	require.NoError(t, c.Close())

	// Reopen and read back: the schema application is idempotent and the
	// data durable.
	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()

	out, ok, err := c.Get(ctx, "c", a)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", out)
}
