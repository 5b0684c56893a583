package orchestrator

import (
	"sort"
	"strings"

	"github.com/iai-group/breakdowns/detector"
)

// Report maps dialogue ids to their findings, in non-decreasing turn order,
// plus summary counts per breakdown type. It is built incrementally during a
// run and read-only once Run returns it.
type Report struct {
	// Order lists dialogue ids as they appeared in the batch.
	Order    []string                      `json:"order"`
	Findings map[string][]detector.Finding `json:"findings"`
	Counts   map[detector.Type]int         `json:"counts"`
}

func newReport() *Report {
	return &Report{
		Findings: make(map[string][]detector.Finding),
		Counts:   make(map[detector.Type]int),
	}
}

func (r *Report) add(dialogueID string, findings []detector.Finding) {
	if _, seen := r.Findings[dialogueID]; !seen {
		r.Order = append(r.Order, dialogueID)
		r.Findings[dialogueID] = nil
	}
	r.Findings[dialogueID] = append(r.Findings[dialogueID], findings...)
	for _, f := range findings {
		r.Counts[f.Type]++
	}
}

// seal fixes the externally observable ordering guarantee: findings within a
// dialogue follow transcript turn order, regardless of which detector
// produced them. The sort is stable so detectors' own ordering breaks ties.
func (r *Report) seal(dialogueID string) {
	fs := r.Findings[dialogueID]
	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Turn < fs[j].Turn })
}

// Total returns the number of findings across the batch.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// Types returns the breakdown types present in the report, sorted.
func (r *Report) Types() []detector.Type {
	out := make([]detector.Type, 0, len(r.Counts))
	for t := range r.Counts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Pattern is a recurring act sub-sequence observed in finding contexts.
type Pattern struct {
	Sequence string `json:"sequence"`
	Length   int    `json:"length"`
	Count    int    `json:"count"`
}

// Patterns mines the act paths attached to findings of the given type for
// recurring n-grams of length 2..maxLen, the conversational patterns most
// often leading into that breakdown. Results are sorted by descending count,
// then by sequence for determinism.
func (r *Report) Patterns(typ detector.Type, maxLen int) []Pattern {
	if maxLen < 2 {
		maxLen = 2
	}
	counts := make(map[string]int)
	lengths := make(map[string]int)
	for _, id := range r.Order {
		for _, f := range r.Findings[id] {
			if f.Type != typ || len(f.ActPath) == 0 {
				continue
			}
			for n := 2; n <= maxLen; n++ {
				for _, gram := range ngrams(f.ActPath, n) {
					counts[gram]++
					lengths[gram] = n
				}
			}
		}
	}

	out := make([]Pattern, 0, len(counts))
	for seq, c := range counts {
		out = append(out, Pattern{Sequence: seq, Length: lengths[seq], Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}

func ngrams(path []string, n int) []string {
	if n > len(path) {
		return nil
	}
	out := make([]string, 0, len(path)-n+1)
	for i := 0; i+n <= len(path); i++ {
		out = append(out, strings.Join(path[i:i+n], " "))
	}
	return out
}
