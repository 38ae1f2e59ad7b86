package main

import (
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// options collects the flags shared by all sub-commands.
type options struct {
	treebank string // path of the training treebank
	root     string // restrict parses to this root symbol
	oov      bool   // substitute out-of-vocabulary tokens
	simplify bool   // undo CNF wrappers before printing
	workers  int    // goroutines per chart row
	trace    string // trace level
}

func addFlags(cmd *cobra.Command, o *options) {
	cmd.PersistentFlags().StringVarP(&o.treebank, "treebank", "t", "", "bracketed treebank file, one tree per line")
	cmd.PersistentFlags().StringVarP(&o.root, "root", "r", "", "root symbol of parse trees, e.g. SENT (default: most probable symbol)")
	cmd.PersistentFlags().BoolVar(&o.oov, "oov", false, "replace unknown tokens by close vocabulary words or <UNK>")
	cmd.PersistentFlags().BoolVarP(&o.simplify, "simplify", "s", false, "undo binarization and terminal wrappers in output trees")
	cmd.PersistentFlags().IntVarP(&o.workers, "workers", "w", 0, "goroutines per chart row (default: configuration key cyk-workers)")
	cmd.PersistentFlags().StringVar(&o.trace, "trace", "Info", "trace level [Debug|Info|Error]")
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "pcfg",
		Short: "Induce a probabilistic grammar from a treebank and parse with it",
		Example: `
pcfg train -t sequoia.mrg                          # induce and print grammar statistics
pcfg parse -t sequoia.mrg -r SENT "le chat dort"   # parse a sentence
pcfg eval -t sequoia.mrg --oov                     # train on 80%, test on the last 10%
pcfg repl -t sequoia.mrg -s                        # parse interactively
`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initConfig(c, o)
		},
	}
	addFlags(cmd, o)
	cmd.AddCommand(
		newTrainCmd(o),
		newParseCmd(o),
		newEvalCmd(o),
		newReplCmd(o),
	)
	return cmd
}

// initConfig sets up global configuration and tracing. Configuration files
// are loaded first, flags given on the command line override them.
func initConfig(c *cobra.Command, o *options) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, "pcfg", []string{"nt"})
	gconf.Initialize(conf)
	if c.Flags().Changed("trace") || !conf.IsSet("tracelevel.root") {
		conf.Set("tracelevel.root", o.trace)
		for _, key := range []string{"cli", "tree", "treebank", "cnf", "grammar", "cyk", "oov", "eval"} {
			conf.Set("tracelevel.pcfg."+key, o.trace)
		}
	}
	if c.Flags().Changed("workers") {
		conf.Set("cyk-workers", o.workers)
	}
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("trace level is %s", o.trace)
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}
