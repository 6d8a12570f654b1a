// Command dartrie-query loads a dictionary built by dartrie-write and
// runs common-prefix search over a haystack at every character
// position, printing the total hit count (for benchmarking). It is a
// thin collaborator around the dartrie library.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-dartrie/dartrie"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	root := &cobra.Command{
		Use:     "dartrie-query",
		Short:   "Run common-prefix search over a haystack using a built trie",
		Version: "0.1.0",
	}
	root.AddCommand(variantCommand("reduced", queryReduced))
	root.AddCommand(variantCommand("mp", queryMinimalPrefix))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func variantCommand(use string, run func(dictPath, haystackPath string) (int, error)) *cobra.Command {
	var dictPath, haystackPath string
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Query the %s-variant dictionary", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			hits, err := run(dictPath, haystackPath)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			logger.Info("query complete", "variant", use, "hits", hits, "elapsed", elapsed)
			fmt.Println(hits)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dictPath, "input", "i", "", "serialized dictionary path (required)")
	cmd.Flags().StringVarP(&haystackPath, "text", "t", "", "haystack text file (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func queryReduced(dictPath, haystackPath string) (int, error) {
	f, err := os.Open(dictPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	trie, err := dartrie.LoadTrie(f)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", dictPath, err)
	}

	text, err := os.ReadFile(haystackPath)
	if err != nil {
		return 0, err
	}

	hits := 0
	s := string(text)
	for pos := range s {
		for range trie.CommonPrefixSearch(s, pos) {
			hits++
		}
	}
	return hits, nil
}

func queryMinimalPrefix(dictPath, haystackPath string) (int, error) {
	f, err := os.Open(dictPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	trie, err := dartrie.LoadMinimalPrefixTrie(f)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", dictPath, err)
	}

	text, err := os.ReadFile(haystackPath)
	if err != nil {
		return 0, err
	}

	hits := 0
	s := string(text)
	for pos := range s {
		for range trie.CommonPrefixSearch(s, pos) {
			hits++
		}
	}
	return hits, nil
}
