package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgercompare/models"
)

func TestMatchExactKey(t *testing.T) {
	a := ledgerA(aSpec{key: "meta-1", title: "Login"})
	b := ledgerB(bSpec{key: "META-1", title: "Login form"})

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 0}}, ms.Pairs)
	assert.True(t, ms.IsUsedA(0))
	assert.True(t, ms.IsUsedB(0))
	assert.Empty(t, ms.Warnings)
}

func TestMatchAKeyInBTitle(t *testing.T) {
	a := ledgerA(aSpec{key: "META-5", title: "Fix login"})
	b := ledgerB(bSpec{key: "MT-9", title: "Related to META-5 issue"})

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 0}}, ms.Pairs)
}

func TestMatchBKeyInATitle(t *testing.T) {
	a := ledgerA(aSpec{key: "META-8", title: "Port MT-77 to prod"})
	b := ledgerB(bSpec{key: "MT-77", title: "Payment export"})

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 0}}, ms.Pairs)
}

func TestMatchExactKeyTakesPrecedence(t *testing.T) {
	// b0 のタイトルにも META-5 が含まれるが、a0 は完全一致の b1 と結ばれる
	a := ledgerA(aSpec{key: "META-5", title: "Fix login"})
	b := ledgerB(
		bSpec{key: "MT-1", title: "Follow-up of META-5"},
		bSpec{key: "META-5", title: "Fix login"},
	)

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 1}}, ms.Pairs)
	assert.False(t, ms.IsUsedB(0))
}

func TestMatchFirstCandidateWins(t *testing.T) {
	a := ledgerA(aSpec{key: "META-3", title: "Search"})
	b := ledgerB(
		bSpec{key: "MT-10", title: "no reference"},
		bSpec{key: "MT-11", title: "part 1 of META-3"},
		bSpec{key: "MT-12", title: "part 2 of META-3"},
	)

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 1}}, ms.Pairs)
	assert.False(t, ms.IsUsedB(2))
}

func TestMatchSubstringIsNotAnchored(t *testing.T) {
	// META-1 は META-12 の部分文字列として一致する (意図された近似)
	a := ledgerA(aSpec{key: "META-1", title: "x"})
	b := ledgerB(bSpec{key: "MT-1", title: "see META-12"})

	ms := Match(a, b)

	assert.Len(t, ms.Pairs, 1)
}

func TestMatchPassOrderPreventsStealing(t *testing.T) {
	// a0 はパス2で b0 を取る。b1 のキーは a0 のタイトルにもあるが、
	// パス3では未使用の a1 だけが候補になる
	a := ledgerA(
		aSpec{key: "META-1", title: "mentions MT-2"},
		aSpec{key: "", title: "also mentions MT-2"},
	)
	b := ledgerB(
		bSpec{key: "MT-1", title: "copy of META-1"},
		bSpec{key: "MT-2", title: "other"},
	)

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 0}, {A: 1, B: 1}}, ms.Pairs)
}

func TestMatchDuplicateBKeysLastWins(t *testing.T) {
	a := ledgerA(aSpec{key: "META-4", title: "Export"})
	b := ledgerB(
		bSpec{key: "META-4", title: "first"},
		bSpec{key: "MT-3", title: "unrelated"},
		bSpec{key: "meta-4", title: "second"},
	)

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 2}}, ms.Pairs)

	want := []Warning{{
		Kind:   WarningDuplicateKey,
		System: models.SystemB,
		Key:    "META-4",
		Rows:   []int{0, 2},
		Kept:   2,
	}}
	if diff := cmp.Diff(want, ms.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchDuplicateAKeysUseEachBRowOnce(t *testing.T) {
	a := ledgerA(
		aSpec{key: "META-9", title: "one"},
		aSpec{key: "META-9", title: "two"},
	)
	b := ledgerB(bSpec{key: "META-9", title: "only"})

	ms := Match(a, b)

	assert.Equal(t, []models.Pair{{A: 0, B: 0}}, ms.Pairs)
	assert.False(t, ms.IsUsedA(1))
}

func TestMatchSkipsEmptyKeys(t *testing.T) {
	a := ledgerA(aSpec{key: "", title: "anything"}, aSpec{key: "  ", title: "blank"})
	b := ledgerB(bSpec{key: "", title: "anything"})

	ms := Match(a, b)

	assert.Empty(t, ms.Pairs)
	assert.Empty(t, ms.UsedA)
	assert.Empty(t, ms.UsedB)
}

func TestMatchEmptyLedgers(t *testing.T) {
	ms := Match(ledgerA(), ledgerB())

	assert.Empty(t, ms.Pairs)
	assert.Empty(t, ms.Warnings)
}

func TestMatchEachRowUsedOnce(t *testing.T) {
	a := ledgerA(
		aSpec{key: "META-1", title: "MT-1 MT-2"},
		aSpec{key: "META-2", title: "MT-1"},
		aSpec{key: "META-3", title: "META-1"},
		aSpec{key: "", title: "MT-3 MT-4"},
	)
	b := ledgerB(
		bSpec{key: "META-1", title: "META-2 META-3"},
		bSpec{key: "MT-1", title: "META-1 META-2"},
		bSpec{key: "MT-2", title: "META-3"},
		bSpec{key: "MT-3", title: ""},
		bSpec{key: "MT-4", title: ""},
	)

	ms := Match(a, b)

	seenA := map[int]int{}
	seenB := map[int]int{}
	for _, p := range ms.Pairs {
		seenA[p.A]++
		seenB[p.B]++
	}
	for idx, n := range seenA {
		assert.Equal(t, 1, n, "A row %d", idx)
	}
	for idx, n := range seenB {
		assert.Equal(t, 1, n, "B row %d", idx)
	}
	require.Len(t, ms.UsedA, len(ms.Pairs))
	require.Len(t, ms.UsedB, len(ms.Pairs))
}

func TestMatchPassesDoNotMutateInput(t *testing.T) {
	a := ledgerA(aSpec{key: "META-1", title: "x"})
	b := ledgerB(bSpec{key: "META-1", title: "y"})

	in := newMatchSet()
	out := exactKeyPass(a, b, in)

	assert.Empty(t, in.Pairs)
	assert.Empty(t, in.UsedA)
	assert.Len(t, out.Pairs, 1)
}
