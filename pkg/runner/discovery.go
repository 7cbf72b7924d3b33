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
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.EffectiveExtensions()

	seen := make(map[string]struct{})
	var files []string
	add := func(f string) {
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}

	for _, inputPath := range opts.EffectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

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
			discovered, err := walkTree(ctx, absPath, workDir, extensions, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range discovered {
				add(f)
			}
		} else if fileMatches(absPath, workDir, extensions, opts) {
			add(absPath)
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

// walkTree recursively walks a directory and returns matching Markdown files.
func walkTree(
	ctx context.Context,
	root string,
	workDir string,
	extensions []string,
	opts Options,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Unreadable subtrees are skipped rather than aborting the run.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, p)
		if relErr != nil {
			relPath = p
		}

		if entry.IsDir() {
			// Skip hidden directories (except root).
			if p != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if matchesAny(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(p)
			if evalErr != nil {
				// Broken symlink, skip silently.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the symlink TARGET (realPath), not the symlink itself.
				// This avoids infinite recursion since WalkDir uses Lstat on root.
				subFiles, err := walkTree(ctx, realPath, workDir, extensions, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
			// File symlink: fall through to the regular file checks.
		}

		// Skip hidden files.
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if fileMatches(p, workDir, extensions, opts) {
			files = append(files, p)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// fileMatches checks if a file path matches the inclusion criteria.
func fileMatches(filePath, workDir string, extensions []string, opts Options) bool {
	relPath, err := filepath.Rel(workDir, filePath)
	if err != nil {
		relPath = filePath
	}

	if !hasMatchingExtension(filePath, extensions) {
		return false
	}

	// Exclude patterns apply to the file and to every ancestor directory,
	// so "**/vendor" skips files under any vendor directory.
	for p := filepath.ToSlash(relPath); p != "." && p != "/" && p != ""; p = path.Dir(p) {
		if matchesAny(p, opts.ExcludeGlobs) {
			return false
		}
	}

	if len(opts.IncludeGlobs) > 0 && !matchesAny(relPath, opts.IncludeGlobs) {
		return false
	}

	return true
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(filePath string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchesAny checks if the path matches any of the glob patterns.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if globMatch(relPath, pattern) {
			return true
		}
	}
	return false
}

// globMatch matches a slash-normalized path against a glob pattern.
// It supports patterns like "*.md", "docs/**" and "**/vendor" in addition
// to plain filepath.Match syntax.
func globMatch(p, pattern string) bool {
	p = filepath.ToSlash(p)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(p, "/"), strings.Split(pattern, "/"))
	}

	if ok, err := filepath.Match(pattern, p); err == nil && ok {
		return true
	}

	// Also try matching against just the filename, so "*.md" works for
	// files in subdirectories.
	ok, err := filepath.Match(pattern, path.Base(p))
	return err == nil && ok
}

// matchSegments matches path segments against pattern segments. A bare "**"
// pattern segment matches any run of path segments, including none.
func matchSegments(segs, pat []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			if len(pat) == 1 {
				return true
			}
			for skip := 0; skip <= len(segs); skip++ {
				if matchSegments(segs[skip:], pat[1:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := filepath.Match(pat[0], segs[0])
		if err != nil || !ok {
			return false
		}
		segs = segs[1:]
		pat = pat[1:]
	}
	return len(segs) == 0
}
