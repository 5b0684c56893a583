// Package dialogue holds the transcript data model shared by all detectors.
// Values are built once by the reader and treated as read-only afterwards.
package dialogue

// Speaker identifies which participant produced a turn.
type Speaker string

const (
	Agent Speaker = "agent"
	User  Speaker = "user"
)

// Prefix returns the role prefix used in qualified act labels, matching the
// node labels of role-qualified interaction models ("A_request", "U_inform").
func (s Speaker) Prefix() string {
	if s == Agent {
		return "A_"
	}
	return "U_"
}

// Act is a dialogue-act label drawn from the annotation vocabulary, e.g.
// "request", "recommend", "reject".
type Act string

// Qualified returns the act label prefixed with the speaker role.
func (a Act) Qualified(s Speaker) string { return s.Prefix() + string(a) }

// Utterance is a single surface utterance with optional slot annotations.
type Utterance struct {
	Text    string            `json:"text"`
	Speaker Speaker           `json:"speaker"`
	Slots   map[string]string `json:"slots,omitempty"`
}

// Turn pairs one utterance with the dialogue acts annotated on it. Position is
// the zero-based index within the dialogue; consecutive turns by the same
// speaker are allowed and are themselves a signal detectors look for.
type Turn struct {
	Position  int       `json:"position"`
	Utterance Utterance `json:"utterance"`
	Acts      []Act     `json:"acts"`
}

// Speaker is the role that produced this turn.
func (t Turn) Speaker() Speaker { return t.Utterance.Speaker }

// GenerationError records a system error raised while the dialogue was being
// generated. Turn is the index at which the transcript was truncated, or -1
// when the generator did not record one.
type GenerationError struct {
	Type string `json:"type"`
	Turn int    `json:"turn"`
}

// Dialogue is an ordered transcript plus generation metadata.
type Dialogue struct {
	ID    string           `json:"id"`
	Turns []Turn           `json:"turns"`
	Err   *GenerationError `json:"error,omitempty"`
}

// TurnsBy returns the turns produced by the given role, in transcript order,
// keeping their original positions.
func (d *Dialogue) TurnsBy(role Speaker) []Turn {
	var out []Turn
	for _, t := range d.Turns {
		if t.Speaker() == role {
			out = append(out, t)
		}
	}
	return out
}

// ActPath returns the role-qualified act labels of turns [0, upto], in
// transcript order. Multi-act turns contribute one label per act.
func (d *Dialogue) ActPath(upto int) []string {
	if upto >= len(d.Turns) {
		upto = len(d.Turns) - 1
	}
	var path []string
	for _, t := range d.Turns[:upto+1] {
		for _, a := range t.Acts {
			path = append(path, a.Qualified(t.Speaker()))
		}
	}
	return path
}
