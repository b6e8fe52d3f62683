package paramtree

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// seededTree replays seeds as forced writes of int values.
func seededTree(seeds []uint) *Tree {
	t := New(nil)
	for _, seed := range seeds {
		if err := t.SetForce(pathOf(seed), int(seed)); err != nil {
			panic(err)
		}
	}
	return t
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	seeds := gen.SliceOf(gen.UIntRange(0, uimax))

	properties.Property("set then get", prop.ForAll(
		func(seeds []uint, n uint) bool {
			tree := seededTree(seeds)
			if err := tree.SetForce(pathOf(n), int(n)); err != nil {
				return false
			}
			return tree.HasKey(pathOf(n)) && tree.Get(pathOf(n), nil) == int(n)
		},
		seeds, gen.UIntRange(0, uimax)))

	properties.Property("delete removes the key", prop.ForAll(
		func(seeds []uint, n uint) bool {
			tree := seededTree(seeds)
			tree.Delete(pathOf(n))
			_, found := tree.Lookup(pathOf(n))
			return !tree.HasKey(pathOf(n)) && !found
		},
		seeds, gen.UIntRange(0, uimax)))

	properties.Property("plain export rebuilds the same tree", prop.ForAll(
		func(seeds []uint) bool {
			tree := seededTree(seeds)
			again, err := FromMap(tree.ToPlain(), nil)
			return err == nil && cmp.Equal(tree.ToPlain(), again.ToPlain())
		},
		seeds))

	properties.Property("json rebuilds the same tree", prop.ForAll(
		func(seeds []uint) bool {
			tree := seededTree(seeds)
			b, err := tree.MarshalJSON()
			if err != nil {
				return false
			}
			again, err := FromJSON(b, nil)
			if err != nil {
				return false
			}
			h1, _ := tree.Hash()
			h2, _ := again.Hash()
			return cmp.Equal(tree.ToPlain(), again.ToPlain()) && h1 == h2
		},
		seeds))

	properties.Property("keys are exactly the leaves", prop.ForAll(
		func(seeds []uint) bool {
			tree := seededTree(seeds)
			branches := 0
			for _, k := range tree.Keys() {
				v, found := tree.Lookup(k)
				if _, isBranch := v.(Map); !found || isBranch {
					return false
				}
			}
			for _, p := range exercisedPaths {
				if _, err := tree.GetBranch(p); err == nil {
					branches++
				}
			}
			return tree.Count() == len(tree.Keys())+branches
		},
		seeds))

	properties.Property("decimal keys are list indexes", prop.ForAll(
		func(n int) bool {
			i, ok := listIndex(strconv.Itoa(n))
			_, padded := listIndex("0" + strconv.Itoa(n))
			return ok && i == n && !padded
		},
		gen.IntRange(0, 1<<20)))

	properties.TestingRun(t)
}
