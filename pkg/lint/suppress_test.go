package lint_test

import (
	"testing"

	"github.com/beylint/beylint/pkg/cst"
	"github.com/beylint/beylint/pkg/lint"
)

func buildIndex(t *testing.T, content string) *lint.SuppressionIndex {
	t.Helper()
	f := cst.NewFileSnapshot("test.cs", []byte(content))
	return lint.BuildSuppressionIndex(f)
}

func TestSuppressionIndex_DisableRestore(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"class C\n"+
			"{\n"+
			"#pragma warning disable BEY0002\n"+
			"    void M() {\n"+
			"    }\n"+
			"#pragma warning restore BEY0002\n"+
			"    void N() {\n"+
			"    }\n"+
			"}\n")

	if !idx.IsSuppressed("BEY0002", 4) {
		t.Error("line 4 should be suppressed")
	}
	if idx.IsSuppressed("BEY0002", 7) {
		t.Error("line 7 is after the restore")
	}
	if idx.IsSuppressed("BEY0002", 2) {
		t.Error("line 2 is before the disable")
	}
	if idx.IsSuppressed("BEY0001", 4) {
		t.Error("other rules are not suppressed")
	}
}

func TestSuppressionIndex_DisableToEndOfFile(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma warning disable BEY0002\n"+
			"class C {\n"+
			"}\n")

	if !idx.IsSuppressed("BEY0002", 2) || !idx.IsSuppressed("BEY0002", 3) {
		t.Error("unrestored disable should run to end of file")
	}
}

func TestSuppressionIndex_BareDisableCoversAllRules(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma warning disable\n"+
			"class C {\n"+
			"#pragma warning restore\n"+
			"class D {\n")

	if !idx.IsSuppressed("BEY0002", 2) || !idx.IsSuppressed("ANYTHING", 2) {
		t.Error("bare disable should cover every rule")
	}
	if idx.IsSuppressed("BEY0002", 4) {
		t.Error("bare restore should end the span")
	}
}

func TestSuppressionIndex_BareRestoreClosesCodeSpans(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma warning disable BEY0002\n"+
			"#pragma warning disable BEY0003\n"+
			"class C {\n"+
			"#pragma warning restore\n"+
			"class D {\n")

	if !idx.IsSuppressed("BEY0002", 3) || !idx.IsSuppressed("BEY0003", 3) {
		t.Error("both codes should be suppressed before the restore")
	}
	if idx.IsSuppressed("BEY0002", 5) {
		t.Error("bare restore should close the BEY0002 span")
	}
	if idx.IsSuppressed("BEY0003", 5) {
		t.Error("bare restore should close the BEY0003 span")
	}
}

func TestSuppressionIndex_CommaSeparatedCodes(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma warning disable BEY0002, BEY0003\n"+
			"class C {\n")

	if !idx.IsSuppressed("BEY0002", 2) {
		t.Error("BEY0002 should be suppressed")
	}
	if !idx.IsSuppressed("BEY0003", 2) {
		t.Error("BEY0003 should be suppressed")
	}
	if idx.IsSuppressed("BEY0004", 2) {
		t.Error("unlisted rule should not be suppressed")
	}
}

func TestSuppressionIndex_IgnoresOtherPragmas(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma pack(1)\n"+
			"#pragma warning\n"+
			"class C {\n")

	if idx.IsSuppressed("BEY0002", 3) {
		t.Error("unrelated pragmas must not suppress")
	}
}

func TestSuppressionIndex_RestoreWithoutDisable(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma warning restore BEY0002\n"+
			"class C {\n")

	if idx.IsSuppressed("BEY0002", 2) {
		t.Error("restore without disable should be a no-op")
	}
}

func TestSuppressionIndex_Filter(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"#pragma warning disable BEY0002\n"+
			"class C {\n"+
			"#pragma warning restore BEY0002\n"+
			"class D {\n")

	diags := []lint.Diagnostic{
		{RuleID: "BEY0002", StartLine: 2},
		{RuleID: "BEY0002", StartLine: 4},
		{RuleID: "BEY0001", StartLine: 2},
	}

	filtered := idx.Filter(diags)
	if len(filtered) != 2 {
		t.Fatalf("filtered = %d diagnostics, want 2", len(filtered))
	}
	for _, d := range filtered {
		if d.RuleID == "BEY0002" && d.StartLine == 2 {
			t.Error("suppressed diagnostic survived")
		}
	}
}

func TestSuppressionIndex_IndentedPragma(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t,
		"class C\n"+
			"{\n"+
			"    #pragma warning disable BEY0002\n"+
			"    void M() {\n"+
			"}\n")

	if !idx.IsSuppressed("BEY0002", 4) {
		t.Error("indented pragma should still apply")
	}
}
