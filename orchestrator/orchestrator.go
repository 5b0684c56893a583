// Package orchestrator runs a selection of breakdown detectors over a batch
// of dialogues and aggregates their findings into a report.
package orchestrator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iai-group/breakdowns/detector"
	"github.com/iai-group/breakdowns/dialogue"
	"github.com/iai-group/breakdowns/flow"
)

// State tracks the runner through its single pass over the batch.
type State int

const (
	Idle State = iota
	Running
	Complete
)

// Runner evaluates each (dialogue, detector) pair exactly once. Detectors are
// stateless, so the runner owns the dialogues and the model for the duration
// of the run and passes them by read-only reference.
type Runner struct {
	detectors []detector.Detector
	state     State
	log       *logrus.Logger
}

// New builds a runner over already-constructed detectors. Custom detector
// implementations plug in here without any change to the run loop.
func New(detectors []detector.Detector, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{detectors: detectors, log: log}
}

// FromSelection resolves detector identifiers through the registry. Unknown
// identifiers and a missing interaction model are configuration errors: they
// fail here, before any detection runs.
func FromSelection(names []string, model *flow.Model, opts detector.Options, log *logrus.Logger) (*Runner, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no breakdown detectors selected")
	}
	detectors := make([]detector.Detector, 0, len(names))
	for _, name := range names {
		det, err := detector.New(name, model, opts)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, det)
	}
	return New(detectors, log), nil
}

// State returns the runner's current phase.
func (r *Runner) State() State { return r.state }

// Run evaluates every dialogue with every detector and returns the aggregated
// report. A runner is single-use: the batch is closed and offline, so there is
// no partial-completion path.
//
// An error inside one (dialogue, detector) pair is isolated: it becomes a
// detector_error finding for that pair and the run continues, so one bad
// dialogue cannot suppress findings from the rest of the batch.
func (r *Runner) Run(dialogues []dialogue.Dialogue) (*Report, error) {
	if r.state != Idle {
		return nil, fmt.Errorf("runner already used (state %d)", r.state)
	}
	r.state = Running

	rep := newReport()
	for i := range dialogues {
		d := &dialogues[i]
		for _, det := range r.detectors {
			findings := r.evaluate(det, d)
			r.log.WithFields(logrus.Fields{
				"dialogue_id": d.ID,
				"detector":    det.Name(),
				"findings":    len(findings),
			}).Debug("evaluated")
			rep.add(d.ID, findings)
		}
		rep.seal(d.ID)
	}

	r.state = Complete
	r.log.WithFields(logrus.Fields{
		"dialogues": len(dialogues),
		"detectors": len(r.detectors),
		"findings":  rep.Total(),
	}).Info("detection complete")
	return rep, nil
}

// evaluate shields the run loop from a misbehaving detector: both returned
// errors and panics degrade to a detector_error finding for this pair.
func (r *Runner) evaluate(det detector.Detector, d *dialogue.Dialogue) (findings []detector.Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithFields(logrus.Fields{
				"dialogue_id": d.ID,
				"detector":    det.Name(),
			}).Warnf("detector panicked: %v", rec)
			findings = []detector.Finding{degraded(det, d, fmt.Sprintf("panic: %v", rec))}
		}
	}()

	findings, err := det.Detect(d)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"dialogue_id": d.ID,
			"detector":    det.Name(),
		}).Warnf("detector failed: %v", err)
		return []detector.Finding{degraded(det, d, err.Error())}
	}
	return findings
}

func degraded(det detector.Detector, d *dialogue.Dialogue, msg string) detector.Finding {
	return detector.Finding{
		Type:        detector.DetectorError,
		DialogueID:  d.ID,
		Turn:        -1,
		RefTurn:     -1,
		Explanation: fmt.Sprintf("%s could not evaluate this dialogue: %s", det.Name(), msg),
	}
}
