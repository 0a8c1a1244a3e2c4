package prompt

import (
	"fmt"
	"strings"
)

// Stage names with a dedicated draft prompt.
const (
	StageNegotiation  = "negotiation"
	StageRequirements = "requirements"
)

const (
	negotiationSystem = "あなたは要件整理の専門家です。既存のドキュメントと新しい議事録を照らし合わせて、機能一覧の表を完全に書き換えてください。" +
		"既存内容を参考にしつつ、議事録の内容に基づいて最新の機能一覧表を作成してください。" +
		"表はMarkdown形式で、機能名/権限/内容/補足/該当ページの列構成を維持してください。"

	negotiationTask = "出力: 議事録の内容に基づいて、機能要件一覧（表）を完全に書き換えてください。" +
		"既存の例は削除し、議事録で確認された機能のみを含めてください。表は以下の形式で出力してください：\n\n" +
		"| 機能名 | 権限 | 内容 | 補足 | 該当ページ |\n" +
		"|--------|------|------|------|------------|\n" +
		"| [実際の機能名] | [権限] | [内容] | [補足] | [該当ページ] |"

	requirementsSystem = "あなたは要件定義/テスト設計の専門家です。既存のドキュメントと新しい議事録を照らし合わせて、追加・更新すべき内容を提案します。" +
		"重複を避け、既存内容を補完・更新する形で日本語Markdownで出力します。各出力は見出しを付与。過度な仮定は避ける。"

	requirementsTask = "出力: 既存内容を考慮して、1) 機能詳細への変更・追加点(受入条件案含む)、2) ページ一覧への追加/変更、" +
		"3) DB概要への変更、4) 通知一覧への追加/変更、5) NA更新(状態/担当/期限/受入条件案)、" +
		"6) 詳細見積もりへの影響(工数/コスト/スケジュール)を提案してください。" +
		"既存のものと重複せず、更新が必要な部分は明確に示してください。"

	genericSystem = "あなたはプロジェクト文書の更新アシスタントです。既存のドキュメントと新しい議事録を照らし合わせて、追加・更新すべき内容を日本語Markdownで提案してください。"
	genericTask   = "出力: 既存内容と重複しない追加・変更点を、見出し付きで提案してください。"
)

// Draft asks for a Markdown draft for one transcript of the given stage. The
// existing target documents are included as context.
func (b *Builder) Draft(stage string, existing []Document, minutes string) string {
	system, task := genericSystem, genericTask
	switch stage {
	case StageNegotiation:
		system, task = negotiationSystem, negotiationTask
	case StageRequirements:
		system, task = requirementsSystem, requirementsTask
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n既存のドキュメント内容:\n")
	for _, d := range existing {
		fmt.Fprintf(&sb, "\n%s:\n%s\n", d.Path, d.Text)
	}
	sb.WriteString("\n新しい議事録:\n\n")
	sb.WriteString(minutes)
	sb.WriteString("\n\n")
	sb.WriteString(task)
	return sb.String()
}

// DraftHeading is the first line of every draft block body.
func DraftHeading(title, dateHint string) string {
	return fmt.Sprintf("## AI下書き（%s: %s）", title, dateHint)
}

// PlaceholderDraft is the checklist written when no oracle is configured.
func PlaceholderDraft(stage string) string {
	items := []string{"抽出要件", "想定優先度", "メモ/論点"}
	if stage == StageRequirements {
		items = []string{"追加/変更点", "受入条件（案）", "影響範囲"}
	}
	var sb strings.Builder
	sb.WriteString("> このセクションは自動生成の下書きです。内容を精査して不要なら削除してください。\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "- %s: （AI追記予定）\n", it)
	}
	return strings.TrimRight(sb.String(), "\n")
}
