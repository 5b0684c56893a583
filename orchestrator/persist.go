package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// PersistBundle is the on-disk shape of a completed run.
type PersistBundle struct {
	RunID       string    `json:"run_id"`
	DialoguesIn string    `json:"dialogues_path"`
	GeneratedAt time.Time `json:"generated_at"`
	Report      *Report   `json:"report"`
}

func mkRunDir(outputsRoot string) (string, string, error) {
	ts := time.Now().Format("20060102-150405")
	rid := "run_" + ts
	dir := filepath.Join(outputsRoot, rid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	return rid, dir, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Persist writes the report as JSON into a timestamped run directory under
// outputsRoot and returns the written path.
func Persist(outputsRoot, dialoguesPath string, rep *Report) (string, error) {
	rid, outDir, err := mkRunDir(outputsRoot)
	if err != nil {
		return "", err
	}

	bundle := PersistBundle{
		RunID:       rid,
		DialoguesIn: dialoguesPath,
		GeneratedAt: time.Now(),
		Report:      rep,
	}
	path := filepath.Join(outDir, "report.json")
	if err := writeJSON(path, bundle); err != nil {
		return "", err
	}
	return path, nil
}
