package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/manipreg/core"
	"github.com/hupe1980/manipreg/internal/testutil"
	"github.com/hupe1980/manipreg/scope"
)

// Interface compliance (compile-time assertions)
var _ core.Store[scope.Scope, string] = (*InMemoryStore[scope.Scope, string])(nil)

func newStore() *InMemoryStore[scope.Scope, string] {
	return NewInMemoryStore[scope.Scope, string](scope.ParentOf)
}

func TestInMemoryStore_ExampleScenario(t *testing.T) {
	// Scopes root, Lib (parent root), App (parent Lib).
	chain := testutil.Chain("root", "lib", "app")
	root, lib, app := chain[0], chain[1], chain[2]

	st := newStore()
	require.NoError(t, st.Add("rewriteX", core.NewRecord(lib, "P1")))

	res := st.Query(app)
	require.Contains(t, res, "rewriteX")
	assert.True(t, res["rewriteX"].Contains("P1"))

	// root is not a descendant of lib: nothing visible, not even an empty set.
	assert.Empty(t, st.Query(root))

	st.Remove("rewriteX", lib)
	assert.Empty(t, st.Query(app))
}

func TestInMemoryStore_AncestryUnion(t *testing.T) {
	chain := testutil.Chain("root", "lib", "app")
	root, lib, app := chain[0], chain[1], chain[2]

	st := newStore()
	require.NoError(t, st.Add("rw", core.NewRecord(root, "from-root")))
	require.NoError(t, st.Add("rw", core.NewRecord(lib, "from-lib")))
	require.NoError(t, st.Add("rw", core.NewRecord(app, "from-app")))

	// The leaf sees the union across its whole ancestry under one name.
	assert.ElementsMatch(t, []string{"from-root", "from-lib", "from-app"}, st.Query(app)["rw"].Values())
	assert.ElementsMatch(t, []string{"from-root", "from-lib"}, st.Query(lib)["rw"].Values())
	assert.ElementsMatch(t, []string{"from-root"}, st.Query(root)["rw"].Values())
}

func TestInMemoryStore_UniversalVisibleEverywhere(t *testing.T) {
	f := testutil.Forest("root", [][]string{{"left"}, {"right"}})

	st := newStore()
	require.NoError(t, st.Add("global", core.NewRecord[scope.Scope](nil, "everywhere")))

	for _, requester := range []*scope.Scope{f.Root, f.Leaves["left"], f.Leaves["right"], nil} {
		res := st.Query(requester)
		require.Contains(t, res, "global")
		assert.True(t, res["global"].Contains("everywhere"))
	}
}

func TestInMemoryStore_NoCrossNameLeakage(t *testing.T) {
	a := scope.New("a")

	st := newStore()
	require.NoError(t, st.Add("foo", core.NewRecord(a, "foo-payload")))
	require.NoError(t, st.Add("bar", core.NewRecord(a, "bar-payload")))

	res := st.Query(a)
	require.Len(t, res, 2)
	assert.ElementsMatch(t, []string{"foo-payload"}, res["foo"].Values())
	assert.ElementsMatch(t, []string{"bar-payload"}, res["bar"].Values())
}

func TestInMemoryStore_IdempotentAdd(t *testing.T) {
	a := scope.New("a")

	st := newStore()
	require.NoError(t, st.Add("x", core.NewRecord(a, "p")))
	require.NoError(t, st.Add("x", core.NewRecord(a, "p")))

	assert.Equal(t, 1, st.Query(a)["x"].Len())
}

func TestInMemoryStore_ScopedRemoveIsolation(t *testing.T) {
	a := scope.New("a")
	b := scope.New("b")

	st := newStore()
	require.NoError(t, st.Add("x", core.NewRecord(a, "pa")))
	require.NoError(t, st.Add("x", core.NewRecord(b, "pb")))

	st.Remove("x", a)

	assert.Empty(t, st.Query(a))
	res := st.Query(b)
	require.Contains(t, res, "x")
	assert.True(t, res["x"].Contains("pb"))
}

func TestInMemoryStore_RemoveTargetsUniversalWithNilScope(t *testing.T) {
	a := scope.New("a")

	st := newStore()
	require.NoError(t, st.Add("x", core.NewRecord[scope.Scope](nil, "universal")))
	require.NoError(t, st.Add("x", core.NewRecord(a, "scoped")))

	st.Remove("x", nil)

	res := st.Query(a)
	require.Contains(t, res, "x")
	assert.ElementsMatch(t, []string{"scoped"}, res["x"].Values())
}

func TestInMemoryStore_AbsenceIsNotAnError(t *testing.T) {
	a := scope.New("a")
	stranger := scope.New("stranger")

	st := newStore()
	// Removing from an unknown scope or name must be a silent no-op.
	st.Remove("ghost", a)
	st.Drop(stranger)

	require.NoError(t, st.Add("x", core.NewRecord(a, "p")))
	st.Remove("ghost", a)
	st.Remove("x", stranger)

	res := st.Query(a)
	require.Contains(t, res, "x")
	assert.Equal(t, 1, res["x"].Len())
	assert.Empty(t, st.Query(stranger))
}

func TestInMemoryStore_ContractViolations(t *testing.T) {
	a := scope.New("a")
	st := newStore()

	assert.ErrorIs(t, st.Add("", core.NewRecord(a, "p")), core.ErrEmptyName)
	assert.ErrorIs(t, st.Add("x", core.NewRecord(a, "")), core.ErrZeroPayload)

	// Pointer payloads: nil is the zero value.
	stp := NewInMemoryStore[scope.Scope, *int](scope.ParentOf)
	assert.ErrorIs(t, stp.Add("x", core.NewRecord[scope.Scope, *int](a, nil)), core.ErrZeroPayload)

	// Nothing was stored by the rejected calls.
	assert.Empty(t, st.Query(a))
	assert.Empty(t, stp.Query(a))
}

func TestInMemoryStore_QueryIsASnapshot(t *testing.T) {
	a := scope.New("a")

	st := newStore()
	require.NoError(t, st.Add("x", core.NewRecord(a, "p")))

	res := st.Query(a)
	res["x"].Add("injected")
	res["x"].Delete("p")
	delete(res, "x")

	fresh := st.Query(a)
	require.Contains(t, fresh, "x")
	assert.ElementsMatch(t, []string{"p"}, fresh["x"].Values())
}

func TestInMemoryStore_Drop(t *testing.T) {
	chain := testutil.Chain("root", "lib", "app")
	lib, app := chain[1], chain[2]

	st := newStore()
	require.NoError(t, st.Add("x", core.NewRecord(lib, "pl")))
	require.NoError(t, st.Add("y", core.NewRecord(app, "pa")))

	st.Drop(lib)

	res := st.Query(app)
	assert.NotContains(t, res, "x")
	require.Contains(t, res, "y")

	// Dropping nil clears only universal records.
	require.NoError(t, st.Add("z", core.NewRecord[scope.Scope](nil, "u")))
	st.Drop(nil)
	assert.NotContains(t, st.Query(app), "z")
	assert.Contains(t, st.Query(app), "y")
}

func TestInMemoryStore_ConcurrentAddsDistinctNames(t *testing.T) {
	const n = 64
	sc := scope.New("burst")
	st := newStore()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := st.Add(fmt.Sprintf("name-%d", i), core.NewRecord(sc, fmt.Sprintf("p-%d", i))); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	res := st.Query(sc)
	require.Len(t, res, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("name-%d", i)
		require.Contains(t, res, name)
		assert.True(t, res[name].Contains(fmt.Sprintf("p-%d", i)))
	}
}

func TestInMemoryStore_ConcurrentAddsSameName(t *testing.T) {
	const n = 32
	sc := scope.New("burst")
	st := newStore()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = st.Add("shared", core.NewRecord(sc, fmt.Sprintf("p-%d", i)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, st.Query(sc)["shared"].Len())
}

func TestInMemoryStore_ConcurrentMixedOperations(t *testing.T) {
	chain := testutil.Chain("root", "lib", "app")
	lib, app := chain[1], chain[2]
	st := newStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_ = st.Add(fmt.Sprintf("n-%d", i%4), core.NewRecord(lib, fmt.Sprintf("p-%d", i)))
		}(i)
		go func(i int) {
			defer wg.Done()
			st.Remove(fmt.Sprintf("n-%d", i%4), app)
		}(i)
		go func(i int) {
			defer wg.Done()
			// The snapshot must never tear: every surfaced payload is complete.
			for name, set := range st.Query(app) {
				if name == "" {
					t.Error("empty name surfaced")
				}
				for _, v := range set.Values() {
					if v == "" {
						t.Error("torn payload surfaced")
					}
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestInMemoryStore_String(t *testing.T) {
	a := scope.New("a")
	st := newStore()
	require.NoError(t, st.Add("x", core.NewRecord(a, "p")))
	require.NoError(t, st.Add("y", core.NewRecord[scope.Scope](nil, "u")))

	assert.Equal(t, "InMemoryStore{scopes=1, names=2, records=2}", st.String())
}
