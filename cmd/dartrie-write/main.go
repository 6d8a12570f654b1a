// Command dartrie-write reads a newline-delimited key file, builds
// both trie variants, and writes them to disk. It is a thin
// collaborator around the dartrie library: all algorithmic content
// lives in the package itself.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/go-dartrie/dartrie"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	var inPath, outPrefix string
	var threshold int

	root := &cobra.Command{
		Use:     "dartrie-write",
		Short:   "Build reduced and minimal-prefix double-array tries from a key file",
		Version: "0.1.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inPath, outPrefix, threshold)
		},
	}
	root.Flags().StringVarP(&inPath, "input", "i", "", "newline-delimited key file (required)")
	root.Flags().StringVarP(&outPrefix, "output", "o", "", "output path prefix (required)")
	root.Flags().IntVar(&threshold, "tail-threshold", 1, "minimal-prefix tail-collapse threshold")
	_ = root.MarkFlagRequired("input")
	_ = root.MarkFlagRequired("output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inPath, outPrefix string, threshold int) error {
	keys, err := readKeys(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}
	logger.Info("loaded keys", "count", len(keys), "path", inPath)

	reduced, err := dartrie.FromKeys(keys)
	if err != nil {
		return fmt.Errorf("building reduced trie: %w", err)
	}
	logger.Info("built reduced trie", "cells", reduced.Stats().Cells, "load_factor", reduced.Stats().LoadFactor)

	mp, err := dartrie.FromKeysMinimalPrefix(keys, dartrie.WithTailThreshold(threshold))
	if err != nil {
		return fmt.Errorf("building minimal-prefix trie: %w", err)
	}
	logger.Info("built minimal-prefix trie", "cells", mp.Stats().Cells, "tail_bytes", mp.Stats().TailBytes)

	if err := writeFile(outPrefix+".reduced", reduced.Save); err != nil {
		return err
	}
	if err := writeFile(outPrefix+".mp", mp.Save); err != nil {
		return err
	}
	return nil
}

func readKeys(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]struct{})
	var keys []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		keys = append(keys, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func writeFile(path string, save func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := save(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote trie", "path", path)
	return nil
}
