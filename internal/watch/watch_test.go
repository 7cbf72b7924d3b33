package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmittal27/mkforge/pkg/flavor"
	"github.com/vmittal27/mkforge/pkg/parse"
	"github.com/vmittal27/mkforge/pkg/runner"
)

func TestShouldIgnore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"docs/readme.md", false},
		{"notes.markdown", false},
		{"docs/.readme.md.swp", true},
		{"docs/readme.md~", true},
		{"docs/readme.md.swx", true},
		{"docs/#readme.md#", true},
		{"docs/.hidden.md", true},
		{".DS_Store", true},
	}

	for _, tt := range tests {
		if got := shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchesExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"a.md", []string{".md"}, true},
		{"a.MD", []string{".md"}, true},
		{"a.markdown", []string{".md", ".markdown"}, true},
		{"a.md", []string{".markdown"}, false},
		{"a.txt", []string{".md"}, false},
		{"noext", []string{".md"}, false},
	}

	for _, tt := range tests {
		if got := matchesExtension(tt.path, tt.exts); got != tt.want {
			t.Errorf("matchesExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

func TestTrigger_Coalesces(t *testing.T) {
	t.Parallel()

	runCh := make(chan struct{}, 1)
	tr := newTrigger(20*time.Millisecond, runCh)
	defer tr.stop()

	tr.hit()
	tr.hit()
	tr.hit()

	select {
	case <-runCh:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a run request after the quiet period")
	}

	select {
	case <-runCh:
		t.Fatal("a burst should coalesce into a single run request")
	case <-time.After(100 * time.Millisecond):
	}

	tr.hit()
	select {
	case <-runCh:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a run request after a new change")
	}
}

func TestNew_DefaultDebounce(t *testing.T) {
	t.Parallel()

	w := New(nil, runner.Options{}, 0, nil)
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}

	w = New(nil, runner.Options{}, time.Second, nil)
	if w.debounce != time.Second {
		t.Errorf("debounce = %v, want %v", w.debounce, time.Second)
	}
}

func TestWatcher_RerunsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# One\n")

	results := make(chan *runner.Result, 4)
	run := runner.New(parse.New(flavor.GitHub))
	w := New(run, runner.Options{Paths: []string{dir}}, 30*time.Millisecond, func(result *runner.Result, err error) {
		if err != nil {
			t.Errorf("run failed: %v", err)
			return
		}
		results <- result
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	first := waitForResult(t, results)
	if first.Stats.FilesParsed != 1 {
		t.Fatalf("initial run parsed %d files, want 1", first.Stats.FilesParsed)
	}

	writeFile(t, filepath.Join(dir, "b.md"), "# Two\n")

	second := waitForResult(t, results)
	if second.Stats.FilesParsed != 2 {
		t.Fatalf("rerun parsed %d files, want 2", second.Stats.FilesParsed)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned %v after cancellation, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	t.Parallel()

	run := runner.New(parse.New(flavor.CommonMark))
	w := New(run, runner.Options{Paths: []string{filepath.Join(t.TempDir(), "absent")}}, 0, nil)

	if err := w.Watch(context.Background()); err == nil {
		t.Fatal("expected an error for a missing watch path")
	}
}

func waitForResult(t *testing.T, results <-chan *runner.Result) *runner.Result {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a run result")
		return nil
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
