package config

const (
	negotiationDir  = "00_商談段階/04_議事録"
	requirementsDir = "10_要件定義段階/07_議事録"
	overviewDoc     = "90_共通/01_プロジェクト/プロジェクト概要.md"
	functionListDoc = "00_商談段階/01_機能一覧/機能一覧.md"
)

// Default returns the built-in configuration for the standard project tree.
func Default() *Config {
	cfg := &Config{}
	cfg.Project.Root = "."
	cfg.Oracle = Oracle{
		Provider:    "anthropic",
		Model:       "claude-sonnet-4-20250514",
		MaxTokens:   4000,
		Temperature: 0.2,
	}
	cfg.Transcripts.Extensions = []string{".md", ".txt"}
	cfg.Catalog = []Document{
		{Path: functionListDoc, Sections: []string{"機能一覧"}},
		{Path: "00_商談段階/01_機能一覧/機能優先度.md", Sections: []string{"機能優先度"}},
		{Path: "00_商談段階/03_NA整理/NA一覧.md", Sections: []string{"NA一覧", "NA整理"}},
		{Path: "10_要件定義段階/01_機能詳細/機能詳細.md", Sections: []string{"機能詳細"}},
		{Path: "10_要件定義段階/02_ページ設計/ページ一覧.md", Sections: []string{"ページ一覧", "ページ設計"}},
		{Path: "10_要件定義段階/03_データベース/テーブル定義.md", Sections: []string{"テーブル定義", "DB設計"}},
		{Path: "10_要件定義段階/04_通知要件/通知一覧.md", Sections: []string{"通知一覧", "通知要件"}},
		{Path: "10_要件定義段階/05_NA整理/NA更新解決状況.md", Sections: []string{"NA更新", "NA解決状況"}},
		{Path: "10_要件定義段階/06_見積もり/詳細見積もり.md", Sections: []string{"詳細見積もり", "最終見積もり"}},
		{Path: "20_実装段階/02_テスト/01_単体テストケース.md", Sections: []string{"単体テスト"}},
		{Path: "20_実装段階/02_テスト/02_結合テストケース.md", Sections: []string{"結合テスト"}},
		{Path: overviewDoc, Sections: []string{"プロジェクト概要", "背景・目的"}},
		{Path: "90_共通/01_プロジェクト/スケジュール.md", Sections: []string{"スケジュール", "リリース計画"}},
		{Path: "90_共通/01_プロジェクト/ステークホルダー.md", Sections: []string{"ステークホルダー"}},
	}
	cfg.Stages = []Stage{
		{
			Name:          "negotiation",
			Label:         "商談議事録由来",
			Title:         "商談議事録",
			TranscriptDir: negotiationDir,
			DraftTargets: []string{
				"00_商談段階/02_見積もり/初期見積もり.md",
				"00_商談段階/03_NA整理/NA一覧.md",
				overviewDoc,
			},
			FunctionList:        functionListDoc,
			FunctionListSection: "機能要件一覧",
		},
		{
			Name:          "requirements",
			Label:         "要件定義議事録由来",
			Title:         "要件定義議事録",
			TranscriptDir: requirementsDir,
			DraftTargets: []string{
				"10_要件定義段階/01_機能詳細/機能詳細.md",
				"10_要件定義段階/02_ページ設計/ページ一覧.md",
				"10_要件定義段階/03_データベース/DB概要.md",
				"10_要件定義段階/04_通知要件/通知一覧.md",
				"10_要件定義段階/05_NA整理/NA更新解決状況.md",
				"10_要件定義段階/06_見積もり/詳細見積もり.md",
				"20_実装段階/02_テスト/01_単体テストケース.md",
				"20_実装段階/02_テスト/02_結合テストケース.md",
				overviewDoc,
			},
		},
	}
	cfg.Requirements = Requirements{
		Path: "docs/requirements.md",
		Sections: []string{
			"背景・目的", "スコープ", "ステークホルダー", "ユースケース",
			"非機能要件", "API一覧", "DB設計", "リリース計画",
		},
	}
	cfg.Estimate = Estimate{
		FunctionList: functionListDoc,
		Template:     "00_商談段階/02_見積もり/見積もりテンプレート.md",
		AIInput:      "00_商談段階/02_見積もり/AI入力テンプレート_初期見積もり.md",
		Output:       "00_商談段階/02_見積もり/初期見積もり.md",
		Recent:       3,
		MaxTokens:    4000,
	}
	cfg.Git.Stage = true
	return cfg
}
