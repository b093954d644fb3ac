// Package runlog manages per-run output directories and their JSON
// artifacts: the argument snapshot, the per-stage coverage/accuracy
// records, and the final gender assignment.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run is one output directory under the configured root.
type Run struct {
	ID  string
	Dir string
}

// New creates <root>/<run-id>/ and returns the run handle. The run ID is
// the creation timestamp plus a short random suffix, so concurrent runs
// started in the same second cannot collide.
func New(root string) (*Run, error) {
	id := fmt.Sprintf("%s_%s", time.Now().Format("2006-01-02_150405"), uuid.NewString()[:8])
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &Run{ID: id, Dir: dir}, nil
}

// WriteJSON writes v as indented UTF-8 JSON to <run dir>/<name>.
func (r *Run) WriteJSON(name string, v any) error {
	f, err := os.Create(filepath.Join(r.Dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
