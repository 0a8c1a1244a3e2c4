// Package prompt renders the instructions sent to the generation oracle.
package prompt

import (
	"fmt"
	"strings"

	"specsync/internal/catalog"
)

// Builder constructs the prompts for each sync mode.
type Builder struct{}

const jsonRules = "\n注意事項:\n" +
	"- 出力は必ずJSONオブジェクトのみ。値はMarkdown文字列。\n" +
	"- 議事録に明確に言及されている内容のみを反映\n" +
	"- 既存の内容を考慮し、必要な情報は保持しつつ更新\n" +
	"- 議事録に関連しない文書・章は更新しない（JSONに含めない）\n"

// Catalog asks for a mapping from catalog keys to replacement section bodies.
func (b *Builder) Catalog(entries []catalog.Entry, excerpt string) string {
	var sb strings.Builder
	sb.WriteString("あなたはプロジェクト文書の更新アシスタントです。\n")
	sb.WriteString("新しい議事録の内容を分析し、関連するプロジェクト文書を更新してください。\n\n")
	sb.WriteString("以下の文書を更新対象として、議事録から関連する内容を抽出し、各文書の更新内容をJSONで出力してください。\n\n")

	sb.WriteString("更新対象文書:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s (章: %s)\n", e.Path, strings.Join(e.Sections, ", "))
	}

	sb.WriteString("\n出力形式:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"ファイルパス\": \"文書の全章に反映する内容（Markdown形式）\",\n")
	sb.WriteString("  \"ファイルパス#章名\": \"指定した章の内容（Markdown形式）\",\n")
	sb.WriteString("  ...\n")
	sb.WriteString("}\n")
	sb.WriteString(jsonRules)

	sb.WriteString("\n【新しい議事録】\n")
	sb.WriteString(excerpt)
	sb.WriteString("\n")
	return sb.String()
}

// Overwrite asks for whole-section rewrites of a single requirements
// document. Keys are section names.
func (b *Builder) Overwrite(existing string, sections []string, excerpt string) string {
	var sb strings.Builder
	sb.WriteString("あなたは要件定義書の編集アシスタントです。\n")
	sb.WriteString("既存の要件定義書と新しい議事録を照らし合わせて、要件定義書の更新すべき章を「JSONで」出力してください。\n\n")
	sb.WriteString("- 出力は **必ずJSON**。キーは章名、値は**章の全文Markdown**。\n")
	if len(sections) > 0 {
		fmt.Fprintf(&sb, "- 章名は要件定義書のマーカーに合わせる（%s）。\n", strings.Join(sections, ", "))
	}
	sb.WriteString("- 「追記」ではなく**上書き**。既存の内容を考慮して必要な情報は保持しつつ、議事録の内容を反映した章全体を返してください。\n")
	sb.WriteString("- 存在しない章を返した場合は無視されます。\n")
	sb.WriteString("- 議事録に言及されていない章は更新しないでください。\n")

	sb.WriteString("\n【既存の要件定義書】\n")
	sb.WriteString(existing)
	sb.WriteString("\n\n【新しい議事録】\n")
	sb.WriteString(excerpt)
	sb.WriteString("\n")
	return sb.String()
}

// Document is an existing document shown to the oracle as context.
type Document struct {
	Path string
	Text string
}

// Estimate asks for the AI-input estimate document.
func (b *Builder) Estimate(template, functionList, notes string) string {
	if strings.TrimSpace(notes) == "" {
		notes = "議事録なし"
	}
	var sb strings.Builder
	sb.WriteString("あなたはプロジェクトの見積もり作成専門家です。\n")
	sb.WriteString("以下の情報を元に、工数見積もりを作成してください。\n\n")
	sb.WriteString("## 作成手順\n")
	sb.WriteString("1. 機能一覧から各機能を抽出し、見積もりテンプレートの該当する分類に振り分ける\n")
	sb.WriteString("2. 各機能の複雑度を判断し、適切な工数を設定する\n")
	sb.WriteString("3. 議事録の内容を参考に、追加要件や特殊要件を考慮する\n")
	sb.WriteString("4. AI入力テンプレートの形式で出力する\n\n")
	sb.WriteString("## 複雑度の判断基準\n")
	sb.WriteString("- 低複雑度: 基本的な表示・入力のみ（0.8倍）\n")
	sb.WriteString("- 標準複雑度: 一般的な業務ロジックを含む（1.0倍）\n")
	sb.WriteString("- 高複雑度: 複雑な条件分岐や外部連携を含む（1.3倍）\n")
	sb.WriteString("- 超高複雑度: リアルタイム処理や高度な計算を含む（1.6倍）\n\n")

	sb.WriteString("## 見積もりテンプレート（参考工数）\n")
	sb.WriteString(template)
	sb.WriteString("\n\n## 機能一覧\n")
	sb.WriteString(functionList)
	sb.WriteString("\n\n## 議事録（参考情報）\n")
	sb.WriteString(notes)
	sb.WriteString("\n\n")
	sb.WriteString(estimateFormat)
	return sb.String()
}

const estimateFormat = `## 出力形式
以下の形式で出力してください：

# AI入力テンプレート（初期見積もり）

## 2. システム要件・非機能要件

### 2.1 システムの目的
[機能一覧や議事録から抽出したシステムの目的を記載]

### 2.2 システム要件
[機能一覧から抽出したシステム要件を記載]

## #機能一覧

| 権限 | 機能 | 備考 | 実装工数（人日） | テスト工数（実装工数*0.5） | 要件定義工数（実装工数*0.5） |
|------|------|------|------------------|----------------------------|------------------------------|
[機能一覧の内容をテンプレートの工数を参考に記載]

## 合計工数

| 項目 | 工数（人日） |
|------|-------------|
| 実装工数合計 | X.X |
| テスト工数合計 | X.X |
| 要件定義工数合計 | X.X |
| **総工数** | **X.X** |

## 備考
[特記事項や前提条件を記載]
`

// RecentNotes joins transcripts as "### <name>" sections separated by rules.
func RecentNotes(notes []Document) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, fmt.Sprintf("\n### %s\n%s", n.Path, n.Text))
	}
	return strings.Join(parts, "\n\n---\n")
}
