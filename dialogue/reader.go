package dialogue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Transcript files are JSON exports of generated dialogues: a top-level array
// of dialogue objects, each with an id, ordered turns (speaker, text, one or
// more act labels, optional slot-value pairs) and an optional generation-error
// record. Composite act annotations joined with "+" are split into separate
// labels.

type rawTurn struct {
	Speaker string            `json:"speaker"`
	Text    string            `json:"text"`
	Acts    []string          `json:"acts"`
	Act     string            `json:"act"`
	Slots   map[string]string `json:"slots"`
}

type rawError struct {
	Type string `json:"type"`
	Turn *int   `json:"turn"`
}

type rawDialogue struct {
	ID    string    `json:"id"`
	Turns []rawTurn `json:"turns"`
	Err   *rawError `json:"error"`
}

// Load reads dialogues from a transcript file, or from every *.json file in a
// directory, and returns them in a stable order.
func Load(path string) ([]Dialogue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return ReadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no transcript files in %s", path)
	}

	var all []Dialogue
	for _, f := range files {
		ds, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		all = append(all, ds...)
	}
	return all, nil
}

// ReadFile parses a single transcript file.
func ReadFile(path string) ([]Dialogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raws []rawDialogue
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	dialogues := make([]Dialogue, 0, len(raws))
	for di, r := range raws {
		d, err := r.build()
		if err != nil {
			return nil, fmt.Errorf("%s: dialogue %d: %w", path, di, err)
		}
		dialogues = append(dialogues, d)
	}
	return dialogues, nil
}

func (r rawDialogue) build() (Dialogue, error) {
	if r.ID == "" {
		return Dialogue{}, fmt.Errorf("missing dialogue id")
	}

	d := Dialogue{ID: r.ID, Turns: make([]Turn, 0, len(r.Turns))}
	for i, rt := range r.Turns {
		speaker, err := parseSpeaker(rt.Speaker)
		if err != nil {
			return Dialogue{}, fmt.Errorf("turn %d: %w", i, err)
		}
		acts := splitActs(rt.Acts, rt.Act)
		if len(acts) == 0 {
			return Dialogue{}, fmt.Errorf("turn %d: no dialogue acts", i)
		}
		d.Turns = append(d.Turns, Turn{
			Position:  i,
			Utterance: Utterance{Text: rt.Text, Speaker: speaker, Slots: rt.Slots},
			Acts:      acts,
		})
	}

	if r.Err != nil {
		turn := -1
		if r.Err.Turn != nil {
			turn = *r.Err.Turn
		}
		d.Err = &GenerationError{Type: r.Err.Type, Turn: turn}
	}
	return d, nil
}

func parseSpeaker(s string) (Speaker, error) {
	switch strings.ToLower(s) {
	case "agent":
		return Agent, nil
	case "user", "simulator":
		return User, nil
	}
	return "", fmt.Errorf("unknown speaker role %q", s)
}

// splitActs accepts either an "acts" array or a single "act" string, and
// splits composite "+"-joined annotations either way.
func splitActs(acts []string, single string) []Act {
	labels := acts
	if len(labels) == 0 && single != "" {
		labels = []string{single}
	}
	var out []Act
	for _, l := range labels {
		for _, part := range strings.Split(l, "+") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, Act(part))
			}
		}
	}
	return out
}
