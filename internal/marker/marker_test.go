package marker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "機能一覧", NormalizeName("  機能一覧\t"))
	assert.Equal(t, "商談議事録由来: 2024-05-01", NormalizeName("商談議事録由来:   2024-05-01"))
	assert.Equal(t, "a -> b", NormalizeName("a --> b"))
	assert.Equal(t, "line one line two", NormalizeName("line one\nline two"))
}

func TestCanonicalMarkers(t *testing.T) {
	assert.Equal(t, "<!-- SECTION:機能一覧 START -->", StartMarker(Section, "機能一覧"))
	assert.Equal(t, "<!-- SECTION:機能一覧 END -->", EndMarker(Section, " 機能一覧 "))
	assert.Equal(t, "<!-- AI-DRAFT: 商談議事録由来: 2024-05-01 START -->", StartMarker(Draft, "商談議事録由来: 2024-05-01"))
	assert.Equal(t, "<!-- AI-DRAFT: 商談議事録由来: 2024-05-01 END -->", EndMarker(Draft, "商談議事録由来: 2024-05-01"))
}

func TestScan_ToleratesWhitespace(t *testing.T) {
	doc := "# Doc\n<!--   SECTION:  機能一覧   START-->\n| A |\n<!--SECTION:機能一覧 END   -->\ntail\n"

	regions := Scan(doc)
	require.Len(t, regions, 1)
	assert.Equal(t, Section, regions[0].Kind)
	assert.Equal(t, "機能一覧", regions[0].Name)
	assert.Equal(t, "| A |", regions[0].Body(doc))
	assert.Equal(t, "\n| A |\n", regions[0].Raw(doc))
}

func TestScan_NamesEndingInKeyword(t *testing.T) {
	doc := "<!-- SECTION:RESTART START -->\nx\n<!-- SECTION:RESTART END -->\n" +
		"<!-- SECTION:BACKEND設計 START -->\ny\n<!-- SECTION:BACKEND設計 END -->\n"

	regions := Scan(doc)
	require.Len(t, regions, 2)
	assert.Equal(t, "RESTART", regions[0].Name)
	assert.Equal(t, "BACKEND設計", regions[1].Name)
}

func TestScan_OrphansAndOrdering(t *testing.T) {
	doc := strings.Join([]string{
		"<!-- SECTION:B END -->",
		"<!-- SECTION:A START -->",
		"a",
		"<!-- AI-DRAFT: h START -->",
		"d",
		"<!-- AI-DRAFT: h END -->",
		"<!-- SECTION:A END -->",
		"<!-- SECTION:C START -->",
	}, "\n")

	regions := Scan(doc)
	require.Len(t, regions, 2)
	assert.Equal(t, "A", regions[0].Name)
	assert.Equal(t, Draft, regions[1].Kind)
	assert.Equal(t, "d", regions[1].Body(doc))

	assert.True(t, HasStart(doc, Section, "C"))
	assert.False(t, HasStart(doc, Section, "B"))
	_, ok := Find(doc, Section, "C")
	assert.False(t, ok)
}

func TestReplace_ExistingRegion(t *testing.T) {
	doc := "# 仕様書\n\nintro prose\n\n## 機能一覧\n<!-- SECTION:機能一覧 START -->\nold\n<!-- SECTION:機能一覧 END -->\n\noutro prose\n"

	out := Replace(doc, "機能一覧", "  | A | B |  \n")
	assert.Equal(t, "# 仕様書\n\nintro prose\n\n## 機能一覧\n<!-- SECTION:機能一覧 START -->\n| A | B |\n<!-- SECTION:機能一覧 END -->\n\noutro prose\n", out)
}

func TestReplace_FixedPoint(t *testing.T) {
	docs := []string{
		"",
		"# Empty\n",
		"# Doc\n<!-- SECTION:概要 START -->\nold\n<!-- SECTION:概要 END -->\n",
		"#Doc\n<!--SECTION:概要   START-->old<!--SECTION:概要 END-->",
	}
	for _, doc := range docs {
		once := Replace(doc, "概要", "new body\n\nsecond paragraph")
		twice := Replace(once, "概要", "new body\n\nsecond paragraph")
		assert.Equal(t, once, twice)
	}
}

func TestReplace_MetacharacterNames(t *testing.T) {
	doc := Skeleton("NA", []string{"NA一覧", "NA一覧(案)", "a.b", "axb"})

	out := Replace(doc, "NA一覧(案)", "draft list")
	out = Replace(out, "a.b", "dotted")

	r, ok := Find(out, Section, "NA一覧(案)")
	require.True(t, ok)
	assert.Equal(t, "draft list", r.Body(out))

	r, ok = Find(out, Section, "NA一覧")
	require.True(t, ok)
	assert.Equal(t, Placeholder("NA一覧"), r.Body(out))

	r, ok = Find(out, Section, "axb")
	require.True(t, ok)
	assert.Equal(t, Placeholder("axb"), r.Body(out))

	r, ok = Find(out, Section, "a.b")
	require.True(t, ok)
	assert.Equal(t, "dotted", r.Body(out))
	assert.Len(t, Scan(out), 4)
}

func TestReplace_MissingMarkersAppends(t *testing.T) {
	doc := "# Doc\n\nfree text\n\n\n"

	out := Replace(doc, "スコープ", "in scope")
	assert.Equal(t, "# Doc\n\nfree text\n\n## スコープ\n<!-- SECTION:スコープ START -->\nin scope\n<!-- SECTION:スコープ END -->\n", out)
}

func TestReplace_StrayStartHeals(t *testing.T) {
	doc := "intro\n<!-- SECTION:A START -->\nold\n"

	healed := Replace(doc, "A", "x")
	require.Len(t, FindAll(healed, Section, "A"), 1)

	again := Replace(healed, "A", "y")
	assert.Equal(t, 1, strings.Count(again, "## A\n"))
	assert.Contains(t, again, "old")
	r, ok := Find(again, Section, "A")
	require.True(t, ok)
	assert.Equal(t, "y", r.Body(again))
}

func TestSkeleton(t *testing.T) {
	out := Skeleton("機能一覧", []string{"機能一覧", "機能一覧", " "})
	assert.Equal(t, "# 機能一覧\n\n## 機能一覧\n<!-- SECTION:機能一覧 START -->\n機能一覧の内容を記載します。\n<!-- SECTION:機能一覧 END -->\n", out)
}

func TestEnsureText_Idempotent(t *testing.T) {
	docs := []string{
		"",
		"# X\n\nno markers here\n",
		Skeleton("X", []string{"NA一覧"}),
		"<!-- SECTION:NA整理 START -->\nbroken, no end\n",
	}
	names := []string{"NA一覧", "NA整理"}
	for _, doc := range docs {
		once, _ := EnsureText(doc, names)
		twice, changed := EnsureText(once, names)
		assert.False(t, changed)
		assert.Equal(t, once, twice)
		for _, n := range names {
			assert.True(t, HasStart(once, Section, n))
		}
	}
}

func TestEnsureText_Separators(t *testing.T) {
	out, changed := EnsureText("", []string{"A"})
	assert.True(t, changed)
	assert.True(t, strings.HasPrefix(out, "## A\n"), out)

	out, _ = EnsureText("  \n\n", []string{"A"})
	assert.True(t, strings.HasPrefix(out, "## A\n"), out)

	out, _ = EnsureText("# X\n\n\n\n", []string{"A", "B"})
	assert.True(t, strings.HasPrefix(out, "# X\n\n## A\n"), out)
	assert.NotContains(t, out, "\n\n\n")
}

func TestEnsureText_LeavesExistingBodies(t *testing.T) {
	doc := "# X\n<!-- SECTION:NA一覧 START -->\nreal content\n<!-- SECTION:NA一覧 END -->\n"

	out, changed := EnsureText(doc, []string{"NA一覧", "NA整理"})
	assert.True(t, changed)
	assert.True(t, strings.HasPrefix(out, doc))

	r, ok := Find(out, Section, "NA一覧")
	require.True(t, ok)
	assert.Equal(t, "real content", r.Body(out))

	r, ok = Find(out, Section, "NA整理")
	require.True(t, ok)
	assert.Equal(t, Placeholder("NA整理"), r.Body(out))
}

func TestUpsertBlock_ReplacesSameHeader(t *testing.T) {
	header := "商談議事録由来: 2024-05-01_kickoff"
	doc := "# 初期見積もり\n\nbody text\n"

	doc = UpsertBlock(doc, header, "first body")
	doc = UpsertBlock(doc, header, "second body")

	blocks := FindAll(doc, Draft, header)
	require.Len(t, blocks, 1)
	assert.Equal(t, "second body", blocks[0].Body(doc))
	assert.NotContains(t, doc, "first body")
	assert.Equal(t, 1, strings.Count(doc, StartMarker(Draft, header)))
	assert.True(t, strings.HasPrefix(doc, "# 初期見積もり\n\nbody text\n"))
}

func TestUpsertBlock_AlternatingHeadersIsStable(t *testing.T) {
	a := "商談議事録由来: 2024-05-01"
	b := "要件定義議事録由来: 2024-06-01"

	doc := UpsertBlock("# T\n", a, "a1")
	doc = UpsertBlock(doc, b, "b1")
	doc = UpsertBlock(doc, a, "a2")
	size := len(doc)
	doc = UpsertBlock(doc, b, "b1")
	doc = UpsertBlock(doc, a, "a2")

	assert.Equal(t, size, len(doc))
	assert.Equal(t, []string{b, a}, Blocks(doc))
	assert.Equal(t, doc, UpsertBlock(doc, a, "a2"))
}

func TestUpsertBlock_HeadersAreLiteral(t *testing.T) {
	wild := "議事録由来: .*"
	other := "議事録由来: 2024-05-01"

	doc := UpsertBlock("", other, "keep me")
	doc = UpsertBlock(doc, wild, "v1")
	doc = UpsertBlock(doc, wild, "v2")

	assert.Equal(t, []string{other, wild}, Blocks(doc))
	r, ok := Find(doc, Draft, other)
	require.True(t, ok)
	assert.Equal(t, "keep me", r.Body(doc))
}
