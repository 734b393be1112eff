package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/beylint/beylint/pkg/langdetect"
)

// Discover finds C# source files matching opts under the given working
// directory. It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	// Resolve working directory.
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	paths := opts.effectivePaths()
	gi := loadGitignore(workDir, opts)

	// Use a map for deduplication.
	seen := make(map[string]struct{})
	var files []string

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		// Resolve to absolute path.
		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			// Walk directory.
			discovered, err := walkDirectory(ctx, absPath, workDir, extensions, gi, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					files = append(files, f)
				}
			}
		} else if matchesFile(absPath, workDir, extensions, gi, opts) {
			// Single file: check if it matches criteria.
			if _, ok := seen[absPath]; !ok {
				seen[absPath] = struct{}{}
				files = append(files, absPath)
			}
		}
	}

	// Sort for deterministic ordering.
	sort.Strings(files)

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// loadGitignore compiles the .gitignore at the working directory root.
// Returns nil when gitignore handling is disabled or no file exists.
func loadGitignore(workDir string, opts Options) *ignore.GitIgnore {
	if !opts.RespectGitignore {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(workDir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// walkDirectory recursively walks a directory and returns matching C# files.
func walkDirectory(
	ctx context.Context,
	root string,
	workDir string,
	extensions []string,
	gi *ignore.GitIgnore,
	opts Options,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		// Check for context cancellation.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Handle permission errors gracefully.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		// Get relative path for pattern matching.
		relPath, relErr := filepath.Rel(workDir, p)
		if relErr != nil {
			relPath = p
		}

		// Handle directories.
		if entry.IsDir() {
			// Skip hidden directories (except root).
			if p != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}

			// Check if directory should be excluded.
			if matchesExcludePattern(relPath, opts.effectiveExcludeGlobs(), true) {
				return filepath.SkipDir
			}
			if gi != nil && p != root && gi.MatchesPath(relPath) {
				return filepath.SkipDir
			}

			return nil
		}

		// Handle symlinks.
		if entry.Type()&fs.ModeSymlink != 0 {
			// Resolve symlink to check if it points to a file or directory.
			realPath, evalErr := filepath.EvalSymlinks(p)
			if evalErr != nil {
				// Broken symlink, skip silently.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				// Cannot stat target, skip silently.
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				// Directory symlink: skip unless FollowSymlinks is set.
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the symlink TARGET (realPath), not the symlink itself.
				// This avoids infinite recursion since WalkDir uses Lstat on root.
				subFiles, err := walkDirectory(ctx, realPath, workDir, extensions, gi, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
			// File symlink: continue to check as regular file.
		}

		// Skip hidden files.
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		// Check if file matches criteria.
		if matchesFile(p, workDir, extensions, gi, opts) {
			files = append(files, p)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile checks if a file path matches the inclusion criteria.
func matchesFile(p, workDir string, extensions []string, gi *ignore.GitIgnore, opts Options) bool {
	// Get relative path for pattern matching.
	relPath, err := filepath.Rel(workDir, p)
	if err != nil {
		relPath = p
	}

	// Check extension.
	if !hasMatchingExtension(p, extensions) {
		return false
	}

	// Check exclude patterns.
	if matchesExcludePattern(relPath, opts.effectiveExcludeGlobs(), false) {
		return false
	}

	// Check include patterns (if specified).
	if len(opts.IncludeGlobs) > 0 {
		if !matchesIncludePattern(relPath, opts.IncludeGlobs) {
			return false
		}
	}

	if gi != nil && gi.MatchesPath(relPath) {
		return false
	}

	// Content checks: drop non-C#, binary, vendored, and generated files.
	if opts.ContentChecks {
		content, readErr := os.ReadFile(p)
		if readErr != nil {
			return false
		}
		if !langdetect.IsCSharp(p, content) {
			return false
		}
		if langdetect.SkipReason(relPath, content) != "" {
			return false
		}
	}

	return true
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(p string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesExcludePattern checks if the path matches any exclude pattern.
// Directory paths additionally match "dir/**"-style patterns with the
// trailing globstar trimmed, so an excluded tree is pruned at its root.
func matchesExcludePattern(relPath string, patterns []string, isDir bool) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
		if isDir {
			if trimmed, ok := strings.CutSuffix(filepath.ToSlash(pattern), "/**"); ok {
				if matchGlob(relPath, trimmed) {
					return true
				}
			}
		}
	}
	return false
}

// matchesIncludePattern checks if the path matches any include pattern.
func matchesIncludePattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a doublestar glob pattern. Patterns
// without a path separator also match against the bare file name, so
// "*.g.cs" excludes generated files anywhere in the tree.
func matchGlob(relPath, pattern string) bool {
	rel := filepath.ToSlash(relPath)
	pat := filepath.ToSlash(pattern)

	if ok, err := doublestar.Match(pat, rel); err == nil && ok {
		return true
	}
	if !strings.Contains(pat, "/") {
		if ok, err := doublestar.Match(pat, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
