package main

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tsawler/rtf/parser"
	"github.com/tsawler/rtf/text"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Print document metadata, styles and statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	// Standard input can only be read once; buffer it for the two passes.
	name := args[0]
	var data []byte
	if name == "-" {
		var err error
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return err
		}
		cmd.SetIn(bytes.NewReader(data))
	}

	ex := text.NewExtractor()
	stats, warnings, err := newExtractor(cmd, name).Parse(ex)
	printWarnings(cmd, warnings)
	if err != nil {
		return err
	}

	if name == "-" {
		cmd.SetIn(bytes.NewReader(data))
	}
	enc, err := newExtractor(cmd, name).Encapsulation()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printInfo(out, ex, stats)
	fmt.Fprintf(out, "encapsulation: %s\n", enc)
	return nil
}

func printInfo(out io.Writer, ex *text.Extractor, stats parser.Stats) {
	info := ex.Info()
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, info[k])
	}

	for i, name := range ex.Styles() {
		fmt.Fprintf(out, "style %d: %s\n", i+1, name)
	}

	fmt.Fprintf(out, "paragraphs: %d\n", len(ex.Paragraphs()))
	fmt.Fprintf(out, "groups: %d (max depth %d)\n", stats.Groups, stats.MaxDepth)
	fmt.Fprintf(out, "binary payloads: %d (%d bytes)\n", stats.BinaryPayloads, stats.BinaryBytes)
}
