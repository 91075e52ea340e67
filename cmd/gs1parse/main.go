/* Apache v2 license
 * Copyright (C) 2024 the gs1syntax authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Command gs1parse parses a GS1 data string given in any surface format
// and prints every rendition of it.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barcodeops/gs1syntax/gs1"
)

var symbologies = map[string]gs1.Symbology{
	"databar-omni":         gs1.SymDataBarOmni,
	"databar-truncated":    gs1.SymDataBarTruncated,
	"databar-stacked":      gs1.SymDataBarStacked,
	"databar-stacked-omni": gs1.SymDataBarStackedOmni,
	"databar-limited":      gs1.SymDataBarLimited,
	"databar-expanded":     gs1.SymDataBarExpanded,
	"upc-a":                gs1.SymUPCA,
	"upc-e":                gs1.SymUPCE,
	"ean-13":               gs1.SymEAN13,
	"ean-8":                gs1.SymEAN8,
	"gs1-128-cca":          gs1.SymGS1_128_CCA,
	"gs1-128-ccc":          gs1.SymGS1_128_CCC,
	"qr":                   gs1.SymQR,
	"dm":                   gs1.SymDM,
	"dotcode":              gs1.SymDotCode,
}

func symbologyNames() []string {
	names := make([]string, 0, len(symbologies))
	for n := range symbologies {
		names = append(names, n)
	}
	return names
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	root := &cobra.Command{
		Use:   "gs1parse [input]",
		Short: "Parse and inter-convert GS1 AI data",
		Long: "gs1parse accepts GS1 data in any surface format: a bracketed or\n" +
			"unbracketed element string, barcode scan data, a GS1 Digital Link URI\n" +
			"or a plain GTIN, and prints every rendition of it. Input is taken from\n" +
			"the argument, or from stdin when absent.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			return run(cmd, input)
		},
	}

	flags := root.Flags()
	flags.String("symbology", "", "carrier for scan data output, one of: "+
		strings.Join(symbologyNames(), ", "))
	flags.Bool("add-check-digit", false, "compute the check digit of primary data given without one")
	flags.Bool("hri-titles", false, "include AI titles in the human-readable interpretation")
	flags.Bool("permit-unknown-ais", false, "admit AIs absent from the dictionary when their shape is inferable")
	flags.Bool("permit-zero-suppressed-gtin", false, "expand short GTIN path components of Digital Link URIs")
	flags.Bool("no-requisites", false, "skip the requisite AI association check")
	flags.String("domain", "", "domain for Digital Link output (default "+gs1.DefaultDLDomain+")")

	viper.SetEnvPrefix("GS1PARSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(flags); err != nil {
		logger.Fatal("binding flags", "err", err)
	}

	if err := root.Execute(); err != nil {
		if gerr, ok := err.(*gs1.Error); ok && gerr.Markup() != "" {
			logger.Error(gerr.Error(), "markup", gerr.Markup())
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return "", errors.New("no input")
	}
	return strings.TrimRight(sc.Text(), "\r\n"), nil
}

func run(cmd *cobra.Command, input string) error {
	cfg := gs1.DefaultConfig()
	cfg.AddCheckDigit = viper.GetBool("add-check-digit")
	cfg.IncludeHRITitles = viper.GetBool("hri-titles")
	cfg.PermitUnknownAIs = viper.GetBool("permit-unknown-ais")
	cfg.PermitZeroSuppressedGTIN = viper.GetBool("permit-zero-suppressed-gtin")
	cfg.ValidateRequisites = !viper.GetBool("no-requisites")
	cfg.DLDomain = viper.GetString("domain")

	if name := viper.GetString("symbology"); name != "" {
		sym, ok := symbologies[name]
		if !ok {
			return errors.Errorf("unknown symbology %q", name)
		}
		cfg.Symbology = sym
	}

	eng := gs1.New()
	eng.SetConfig(cfg)

	if err := eng.SetInput(input); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	show := func(label string, render func() (string, error)) {
		s, err := render()
		if err != nil {
			fmt.Fprintf(out, "%-13s %s\n", label+":", "-")
			return
		}
		fmt.Fprintf(out, "%-13s %s\n", label+":", s)
	}

	show("bracketed", eng.Bracketed)
	show("unbracketed", eng.Unbracketed)
	show("scan data", func() (string, error) {
		s, err := eng.ScanData()
		// A control picture keeps the GS separator printable.
		return strings.ReplaceAll(s, "\x1d", "␝"), err
	})
	show("digital link", eng.DigitalLink)

	if lines, err := eng.HRI(); err == nil && len(lines) > 0 {
		fmt.Fprintln(out, "hri:")
		for _, l := range lines {
			fmt.Fprintf(out, "    %s\n", l)
		}
	}
	if ignored := eng.IgnoredQueryParams(); len(ignored) > 0 {
		fmt.Fprintf(out, "%-13s %s\n", "ignored:", strings.Join(ignored, " "))
	}
	return nil
}
