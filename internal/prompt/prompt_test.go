package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"specsync/internal/catalog"
)

func TestCatalogPrompt(t *testing.T) {
	b := &Builder{}
	p := b.Catalog([]catalog.Entry{
		{Path: "docs/a.md", Sections: []string{"機能一覧"}},
		{Path: "docs/b.md", Sections: []string{"NA一覧", "NA整理"}},
	}, "決定事項: ログイン機能を追加")

	assert.Contains(t, p, "- docs/a.md (章: 機能一覧)")
	assert.Contains(t, p, "- docs/b.md (章: NA一覧, NA整理)")
	assert.Contains(t, p, "ファイルパス#章名")
	assert.True(t, strings.HasSuffix(p, "【新しい議事録】\n決定事項: ログイン機能を追加\n"))
}

func TestOverwritePrompt(t *testing.T) {
	p := (&Builder{}).Overwrite("# 要件定義書", []string{"スコープ", "DB設計"}, "議事録本文")
	assert.Contains(t, p, "（スコープ, DB設計）")
	assert.Contains(t, p, "【既存の要件定義書】\n# 要件定義書")
	assert.Contains(t, p, "【新しい議事録】\n議事録本文")
}

func TestDraftPromptPerStage(t *testing.T) {
	b := &Builder{}
	docs := []Document{{Path: "NA一覧.md", Text: "既存NA"}}

	neg := b.Draft(StageNegotiation, docs, "議事録")
	assert.Contains(t, neg, "機能名/権限/内容/補足/該当ページ")
	assert.Contains(t, neg, "\nNA一覧.md:\n既存NA\n")

	req := b.Draft(StageRequirements, docs, "議事録")
	assert.Contains(t, req, "6) 詳細見積もりへの影響")

	other := b.Draft("operations", nil, "議事録")
	assert.Contains(t, other, genericTask)
}

func TestPlaceholderDraft(t *testing.T) {
	assert.Contains(t, PlaceholderDraft(StageNegotiation), "- 抽出要件: （AI追記予定）")
	assert.Contains(t, PlaceholderDraft(StageRequirements), "- 受入条件（案）: （AI追記予定）")
	assert.Equal(t, "## AI下書き（商談議事録: 2024-05-01_kickoff）", DraftHeading("商談議事録", "2024-05-01_kickoff"))
}

func TestEstimatePrompt(t *testing.T) {
	p := (&Builder{}).Estimate("テンプレ", "機能表", "")
	assert.Contains(t, p, "## 議事録（参考情報）\n議事録なし")
	assert.Contains(t, p, "## 合計工数")

	notes := RecentNotes([]Document{{Path: "a.md", Text: "A"}, {Path: "b.md", Text: "B"}})
	assert.Equal(t, "\n### a.md\nA\n\n---\n\n### b.md\nB", notes)
}
