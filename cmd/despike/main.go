// Command despike classifies spikes in instrument time series read from
// CSV or pcap files.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceansense/despike/pkg/config"
	"github.com/oceansense/despike/pkg/signalio"
	csvio "github.com/oceansense/despike/pkg/signalio/csv"
	pcapio "github.com/oceansense/despike/pkg/signalio/pcap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "despike",
		Short:         "Spike detection for instrument time series",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newLimitsCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		runPath   string
		propsPath string
		input     string
		format    string
		column    int
		burstCol  int
		noHeader  bool
		burstGap  time.Duration
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify spikes in a signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := config.InputSpec{
				Path:        input,
				Format:      format,
				Column:      column,
				BurstColumn: burstCol,
				Header:      !noHeader,
			}
			var src config.PropertySource

			if runPath != "" {
				run, err := config.LoadRunFile(runPath)
				if err != nil {
					return err
				}
				spec = run.Input
				src = run.PropertySource()
			} else {
				if input == "" {
					return fmt.Errorf("either --run or --input is required")
				}
				if propsPath == "" {
					return fmt.Errorf("either --run or --props is required")
				}
				props, err := config.LoadProperties(propsPath)
				if err != nil {
					return err
				}
				src = props
			}

			source, err := openSource(spec, burstGap)
			if err != nil {
				return err
			}
			defer source.Close()

			signal, bursts, err := source.Read()
			if err != nil {
				return err
			}

			cfg, err := config.Resolve(src, len(signal), bursts != nil)
			if err != nil {
				return err
			}

			spikes, err := cfg.Classify(signal, bursts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "classifier: %s\n", cfg.Family())
			fmt.Fprintf(out, "samples: %d, bursts: %d, spikes: %d\n",
				len(signal), len(bursts), len(spikes))
			for _, idx := range spikes {
				if verbose {
					fmt.Fprintf(out, "%d\t%g\n", idx, signal[idx-1])
				} else {
					fmt.Fprintln(out, idx)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runPath, "run", "", "YAML run file describing input and classifier")
	cmd.Flags().StringVar(&propsPath, "props", "", "classifier property file (name = value)")
	cmd.Flags().StringVar(&input, "input", "", "input file path")
	cmd.Flags().StringVar(&format, "format", "csv", "input format: csv or pcap")
	cmd.Flags().IntVar(&column, "column", 0, "CSV signal column (zero-based)")
	cmd.Flags().IntVar(&burstCol, "burst-column", -1, "CSV burst-id column, -1 for none")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "CSV file has no header row")
	cmd.Flags().DurationVar(&burstGap, "burst-gap", 0, "pcap: gap starting a new burst")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print sample values alongside indices")

	return cmd
}

func newLimitsCmd() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show classifier parameters and their valid ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tables := config.LimitsFor(length)
			for _, family := range config.Families() {
				fmt.Fprintf(out, "%s:\n", family)
				for _, limit := range tables[family] {
					fmt.Fprintf(out, "  %-18s %s\n", limit.Name(), limit.Help())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&length, "length", 1000, "signal length the window limits scale with")

	return cmd
}

func openSource(spec config.InputSpec, burstGap time.Duration) (signalio.Source, error) {
	switch spec.Format {
	case "", "csv":
		return csvio.NewReader(spec.Path,
			csvio.WithHeader(spec.Header),
			csvio.WithColumn(spec.Column),
			csvio.WithBurstColumn(spec.BurstColumn),
		)
	case "pcap":
		opts := []pcapio.Option{pcapio.WithSeries(pcapio.SeriesLength)}
		if burstGap > 0 {
			opts = append(opts, pcapio.WithBurstGap(burstGap))
		}
		return pcapio.NewFileReader(spec.Path, opts...)
	}
	return nil, fmt.Errorf("unknown input format %q", spec.Format)
}
