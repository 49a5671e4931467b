package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// UpdateEnv names the variable that makes golden helpers rewrite their files.
const UpdateEnv = "UPDATE_GOLDENS"

// LoadJSON decodes the JSON file at path into dst.
func LoadJSON(path string, dst any) error {
	if path == "" {
		return errors.New("testsupport: fixture path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read fixture: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("testsupport: unmarshal fixture: %w", err)
	}
	return nil
}

// CompareJSONGolden marshals got and diffs it against the JSON golden at
// path, ignoring formatting and key order. With UPDATE_GOLDENS set the golden
// is rewritten first.
func CompareJSONGolden(t *testing.T, path string, got any) string {
	t.Helper()

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	if os.Getenv(UpdateEnv) != "" {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			t.Fatalf("indent golden: %v", err)
		}
		pretty.WriteByte('\n')
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	var gotTree, wantTree any
	if err := json.Unmarshal(raw, &gotTree); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if err := LoadJSON(path, &wantTree); err != nil {
		t.Fatalf("load golden: %v", err)
	}
	return cmp.Diff(wantTree, gotTree)
}

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// CaptureTemplateOutput runs a render function that also streams to a writer
// and returns both the returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
