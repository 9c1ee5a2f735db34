package di_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sghaida/bring/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quoterType = reflect.TypeFor[Quoter]()

//
// -----------------------------------------------------------------------------
// ResolveByName
// -----------------------------------------------------------------------------

func TestResolveByName(t *testing.T) {
	t.Parallel()

	hp := &HarryPotterQuoter{}
	beans := di.Beans{"hp": hp, "vetoed": nil}

	got, err := di.ResolveByName(beans, "hp")
	require.NoError(t, err)
	assert.Same(t, hp, got)

	for _, name := range []string{"missing", "vetoed"} {
		_, err := di.ResolveByName(beans, name)
		var nsb di.NoSuchBeanError
		require.True(t, errors.As(err, &nsb), name)
		assert.Equal(t, name, nsb.Name)
		assert.Equal(t, `di: no bean named "`+name+`"`, err.Error())
	}
}

//
// -----------------------------------------------------------------------------
// ResolveByType
// -----------------------------------------------------------------------------

func TestResolveByType_Unique(t *testing.T) {
	t.Parallel()

	hp := &HarryPotterQuoter{}
	beans := di.Beans{"hp": hp, "reader": &Reader{}}

	got, err := di.ResolveByType(beans, quoterType, nil)
	require.NoError(t, err)
	assert.Same(t, hp, got)

	// concrete pointer types match too
	got, err = di.ResolveByType(beans, reflect.TypeFor[*Reader](), nil)
	require.NoError(t, err)
	assert.Same(t, beans["reader"], got)
}

func TestResolveByType_None(t *testing.T) {
	t.Parallel()

	_, err := di.ResolveByType(di.Beans{"reader": &Reader{}}, quoterType, nil)

	var nsb di.NoSuchBeanError
	require.True(t, errors.As(err, &nsb))
	assert.Equal(t, "di_test.Quoter", nsb.Type)
	assert.Equal(t, `di: no bean of type "di_test.Quoter"`, err.Error())
}

func TestResolveByType_Ambiguous(t *testing.T) {
	t.Parallel()

	beans := di.Beans{"hp": &HarryPotterQuoter{}, "dune": &DuneQuoter{}, "other": &HarryPotterQuoter{}}
	_, err := di.ResolveByType(beans, quoterType, nil)

	var nub di.NoUniqueBeanError
	require.True(t, errors.As(err, &nub))
	assert.Equal(t, []string{"dune", "hp", "other"}, nub.Candidates)
	assert.Equal(t, `di: expected single bean of type "di_test.Quoter" but found 3: [dune hp other]`, err.Error())
}

func TestResolveByType_ExcludesType(t *testing.T) {
	t.Parallel()

	beans := di.Beans{"hp": &HarryPotterQuoter{}, "dune": &DuneQuoter{}}
	got, err := di.ResolveByType(beans, quoterType, reflect.TypeFor[*DuneQuoter]())
	require.NoError(t, err)
	assert.Same(t, beans["hp"], got)
}

func TestResolveByType_SkipsVetoedBeans(t *testing.T) {
	t.Parallel()

	var vetoed *DuneQuoter
	beans := di.Beans{"hp": &HarryPotterQuoter{}, "dune": vetoed, "gone": nil}
	got, err := di.ResolveByType(beans, quoterType, nil)
	require.NoError(t, err)
	assert.Same(t, beans["hp"], got)
}

//
// -----------------------------------------------------------------------------
// Resolve
// -----------------------------------------------------------------------------

func TestResolve_NameWinsOverType(t *testing.T) {
	t.Parallel()

	beans := di.Beans{"hp": &HarryPotterQuoter{}, "dune": &DuneQuoter{}}
	got, err := di.Resolve(di.Reference{Owner: &Reader{}, Field: "quoter", Type: quoterType, Name: "dune"}, beans)
	require.NoError(t, err)
	assert.Same(t, beans["dune"], got)
}

func TestResolve_ExcludesOwnerType(t *testing.T) {
	t.Parallel()

	owner := &DuneQuoter{}
	beans := di.Beans{"hp": &HarryPotterQuoter{}, "dune": owner}
	got, err := di.Resolve(di.Reference{Owner: owner, Field: "delegate", Type: quoterType}, beans)
	require.NoError(t, err)
	assert.Same(t, beans["hp"], got)
}

// TestResolve_Idempotent verifies repeated resolution returns the same instance.
func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	beans := di.Beans{"hp": &HarryPotterQuoter{}}
	ref := di.Reference{Owner: &Reader{}, Field: "quoter", Type: quoterType}

	first, err := di.Resolve(ref, beans)
	require.NoError(t, err)
	second, err := di.Resolve(ref, beans)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

//
// -----------------------------------------------------------------------------
// Beans lookups
// -----------------------------------------------------------------------------

func TestBeans_Lookups(t *testing.T) {
	t.Parallel()

	hp := &HarryPotterQuoter{}
	dune := &DuneQuoter{}
	beans := di.Beans{"hp": hp, "dune": dune, "reader": &Reader{}, "vetoed": nil}

	got, err := beans.Get("hp")
	require.NoError(t, err)
	assert.Same(t, hp, got)

	got, err = beans.Single(reflect.TypeFor[*Reader]())
	require.NoError(t, err)
	assert.Same(t, beans["reader"], got)

	_, err = beans.Single(quoterType)
	assert.ErrorAs(t, err, &di.NoUniqueBeanError{})

	all := beans.OfType(quoterType)
	assert.Equal(t, map[string]any{"hp": hp, "dune": dune}, all)
	assert.Empty(t, beans.OfType(reflect.TypeFor[*Node]()))

	assert.Equal(t, []string{"dune", "hp", "reader", "vetoed"}, beans.Names())
}
