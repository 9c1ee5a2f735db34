package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regQuoter struct{}

func regComponent(name string) *Definition {
	return Component(name, ClassOf(func() *regQuoter { return &regQuoter{} }))
}

//
// -----------------------------------------------------------------------------
// NewRegistry / Register
// -----------------------------------------------------------------------------

// TestNewRegistry_Empty verifies NewRegistry initializes an empty store.
func TestNewRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.items)
	assert.Equal(t, 0, r.Len())

	defs, err := r.Definitions()
	require.NoError(t, err)
	assert.Empty(t, defs)
}

// TestRegister_ChainsAndStores verifies Register stores definitions and returns the same registry.
func TestRegister_ChainsAndStores(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ret := r.Register(regComponent("b")).Register(regComponent("a"))
	require.Same(t, r, ret)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"b", "a"}, r.Names())

	defs, err := r.Definitions()
	require.NoError(t, err)
	assert.Equal(t, "a", defs["a"].Name)
	assert.Equal(t, "b", defs["b"].Name)
}

// TestRegister_Duplicate verifies a second definition with the same name is rejected.
func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry().RegisterAll(regComponent("a"), regComponent("a"), regComponent("c"))

	_, err := r.Definitions()
	var dup DuplicateBeanError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "a", dup.Name)
	assert.Equal(t, `di: duplicate bean name "a"`, err.Error())

	// registrations after the first error are ignored
	assert.Equal(t, 1, r.Len())
}

// TestRegister_Invalid verifies invalid and nil definitions are reported.
func TestRegister_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().Register(nil).Definitions()
	assert.ErrorIs(t, err, ErrNilDefinition)

	_, err = NewRegistry().Register(Component("", ClassOf(func() *regQuoter { return nil }))).Definitions()
	var inv InvalidDefinitionError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "empty name", inv.Reason)
}

// TestDefinitions_ReturnsCopy verifies callers cannot mutate the store.
func TestDefinitions_ReturnsCopy(t *testing.T) {
	t.Parallel()

	r := NewRegistry().Register(regComponent("a"))
	defs, err := r.Definitions()
	require.NoError(t, err)

	delete(defs, "a")
	assert.Equal(t, 1, r.Len())

	again, err := r.Definitions()
	require.NoError(t, err)
	assert.Contains(t, again, "a")
}

//
// -----------------------------------------------------------------------------
// MustDefinitions
// -----------------------------------------------------------------------------

func TestMustDefinitions_Present(t *testing.T) {
	t.Parallel()

	defs := NewRegistry().Register(regComponent("a")).MustDefinitions()
	assert.Len(t, defs, 1)
}

func TestMustDefinitions_Panics(t *testing.T) {
	t.Parallel()

	r := NewRegistry().RegisterAll(regComponent("a"), regComponent("a"))
	require.PanicsWithError(t, `di: registry: di: duplicate bean name "a"`, func() {
		_ = r.MustDefinitions()
	})
}
