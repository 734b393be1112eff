package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/beylint/beylint/pkg/runner"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "Widget.cs", "class C { }\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: root,
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("files = %v", files)
	}
}

func TestDiscover_DirectoryByExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.cs", "class A { }\n")
	writeFile(t, root, "script.csx", "var x = 1;\n")
	writeFile(t, root, "sub/b.cs", "class B { }\n")
	writeFile(t, root, "readme.md", "# doc\n")
	writeFile(t, root, "prog.go", "package main\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	got := relPaths(t, root, files)
	want := []string{"a.cs", "script.csx", "sub/b.cs"}
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiscover_BuildOutputAlwaysExcluded(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "src/a.cs", "class A { }\n")
	writeFile(t, root, "bin/Debug/gen.cs", "class G { }\n")
	writeFile(t, root, "obj/tmp.cs", "class T { }\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "src/a.cs" {
		t.Errorf("files = %v, want only src/a.cs", got)
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.cs", "class A { }\n")
	writeFile(t, root, "gen/Schema.g.cs", "class S { }\n")
	writeFile(t, root, "vendor/dep.cs", "class D { }\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   root,
		ExcludeGlobs: []string{"*.g.cs", "vendor/**"},
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "a.cs" {
		t.Errorf("files = %v, want only a.cs", got)
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "src/a.cs", "class A { }\n")
	writeFile(t, root, "test/a_test.cs", "class AT { }\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   root,
		IncludeGlobs: []string{"src/**"},
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "src/a.cs" {
		t.Errorf("files = %v", got)
	}
}

func TestDiscover_Gitignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored/\nlocal.cs\n")
	writeFile(t, root, "a.cs", "class A { }\n")
	writeFile(t, root, "local.cs", "class L { }\n")
	writeFile(t, root, "ignored/b.cs", "class B { }\n")

	t.Run("respected", func(t *testing.T) {
		files, err := runner.Discover(context.Background(), runner.Options{
			Paths:            []string{"."},
			WorkingDir:       root,
			RespectGitignore: true,
		})
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}
		got := relPaths(t, root, files)
		if len(got) != 1 || got[0] != "a.cs" {
			t.Errorf("files = %v, want only a.cs", got)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		files, err := runner.Discover(context.Background(), runner.Options{
			Paths:      []string{"."},
			WorkingDir: root,
		})
		if err != nil {
			t.Fatalf("Discover error: %v", err)
		}
		if len(files) != 3 {
			t.Errorf("files = %v, want 3", relPaths(t, root, files))
		}
	})
}

func TestDiscover_HiddenEntriesSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.cs", "class A { }\n")
	writeFile(t, root, ".hidden.cs", "class H { }\n")
	writeFile(t, root, ".vs/cache.cs", "class C { }\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: root,
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "a.cs" {
		t.Errorf("files = %v, want only a.cs", got)
	}
}

func TestDiscover_ContentChecks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.cs", "namespace App\n{\n    class A { }\n}\n")
	writeFile(t, root, "Form1.Designer.cs",
		"// <auto-generated>\n// This code was generated by a tool.\n// </auto-generated>\nclass F { }\n")
	writeFile(t, root, "blob.cs", "\x00\x01\x02binary")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:         []string{"."},
		WorkingDir:    root,
		ContentChecks: true,
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}

	got := relPaths(t, root, files)
	if len(got) != 1 || got[0] != "a.cs" {
		t.Errorf("files = %v, want only a.cs", got)
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "a.cs", "class A { }\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "a.cs", path},
		WorkingDir: root,
	})
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("files = %v, want deduplicated single entry", files)
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"no-such-dir"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.cs", "class A { }\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{Paths: []string{"."}, WorkingDir: root})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
