package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/iai-group/breakdowns/config"
	"github.com/iai-group/breakdowns/detector"
	"github.com/iai-group/breakdowns/dialogue"
	"github.com/iai-group/breakdowns/flow"
	"github.com/iai-group/breakdowns/orchestrator"
	"github.com/iai-group/breakdowns/report"
)

var (
	flagFlow       string
	flagComponents []string
	flagOutput     string
	flagOutputsDir string
	flagFlowDOT    string
	flagPatternLen int
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "breakdowns <dialogues-path>",
	Short: "Detect conversational breakdowns in generated dialogues",
	Long: `Runs breakdown detectors over a batch of dialogue transcripts and
summarizes the findings.

The dialogues path is a JSON transcript file or a directory of them. The
conversation_flow detector additionally needs an interaction model (--flow),
a directed graph of legal dialogue-act transitions in networkx node-link JSON
or YAML nodes/edges format.`,
	Args:         cobra.ExactArgs(1),
	RunE:         runDetection,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagFlow, "flow", "", "path to the interaction model specification")
	rootCmd.Flags().StringSliceVar(&flagComponents, "components", nil,
		fmt.Sprintf("breakdown detectors to run (known: %v; default from config)", detector.Known()))
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "write the summary to this Excel file")
	rootCmd.Flags().StringVar(&flagOutputsDir, "outputs-dir", "", "root directory for persisted run reports")
	rootCmd.Flags().StringVar(&flagFlowDOT, "flow-dot", "", "also export the interaction model as Graphviz DOT")
	rootCmd.Flags().IntVarP(&flagPatternLen, "pattern-len", "n", 0, "maximum length of act patterns in the summary")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func runDetection(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conf, err := cfg.Load()
	if err != nil {
		return err
	}
	applyFlags(conf)

	level, err := logrus.ParseLevel(conf.Pipeline.LogLvl)
	if err != nil {
		return err
	}
	if flagDebug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	dialogues, err := dialogue.Load(args[0])
	if err != nil {
		return err
	}
	log.WithField("dialogues", len(dialogues)).Infof("loaded dialogues from %s", args[0])

	var model *flow.Model
	if flagFlow != "" {
		if model, err = flow.Load(flagFlow); err != nil {
			return err
		}
		log.WithField("acts", len(model.Labels())).Infof("interaction model loaded from %s", flagFlow)
	}
	if flagFlowDOT != "" {
		if model == nil {
			return fmt.Errorf("--flow-dot requires --flow")
		}
		if err := exportDOT(model, flagFlowDOT); err != nil {
			return err
		}
		log.Infof("interaction model visualization saved to %s", flagFlowDOT)
	}

	opts, err := detectorOptions(conf)
	if err != nil {
		return err
	}
	runner, err := orchestrator.FromSelection(conf.Detection.Components, model, opts, log)
	if err != nil {
		return err
	}

	rep, err := runner.Run(dialogues)
	if err != nil {
		return err
	}

	if conf.Paths.Outputs != "" {
		path, err := orchestrator.Persist(conf.Paths.Outputs, args[0], rep)
		if err != nil {
			return err
		}
		log.Infof("report persisted to %s", path)
	}
	if flagOutput != "" {
		if err := report.WriteExcel(rep, flagOutput); err != nil {
			return err
		}
		log.Infof("summary written to %s", flagOutput)
	}
	return report.RenderConsole(rep, conf.Detection.PatternLen)
}

func applyFlags(conf *cfg.Root) {
	if len(flagComponents) > 0 {
		conf.Detection.Components = flagComponents
	}
	if flagOutputsDir != "" {
		conf.Paths.Outputs = flagOutputsDir
	}
	if flagPatternLen > 0 {
		conf.Detection.PatternLen = flagPatternLen
	}
}

func detectorOptions(conf *cfg.Root) (detector.Options, error) {
	switch conf.Detection.Role {
	case "", "agent", "user":
	default:
		return detector.Options{}, fmt.Errorf("unknown speaker role %q", conf.Detection.Role)
	}
	opts := detector.Options{
		Role:        dialogue.Speaker(conf.Detection.Role),
		QualifyActs: conf.Detection.QualifiedActs,
	}
	switch conf.Detection.Signal {
	case "", "transition":
		// default signal, built by the detector itself
	case "slots":
		opts.Signal = detector.SlotSignal{}
	default:
		return detector.Options{}, fmt.Errorf("unknown delayed-reply signal %q", conf.Detection.Signal)
	}
	return opts, nil
}

func exportDOT(model *flow.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return model.WriteDOT(f)
}
