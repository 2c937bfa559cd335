// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hkrish/concept-engine/internal/embed"
	"github.com/hkrish/concept-engine/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or load the semantic chunk index",
}

// --- load subcommand ---

var indexLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Load a chunk record file into the index",
	Long: `Load reads a YAML file of chunk records produced by the external
content pipeline (each record carries topic, stage, and summary), embeds
any record without a stored vector, and writes the batch into the
configured index backend. Scraping, chunking, and classification happen
upstream; load only materializes their output.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexLoad,
}

func runIndexLoad(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	records, err := index.ReadRecords(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no chunk records in %s", args[0])
	}

	store, err := openIndex(cfg.Index)
	if err != nil {
		return err
	}
	defer store.Close()

	embedder, err := embed.NewEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}

	_, err = index.Load(context.Background(), store, embedder, records, os.Stdout)
	return err
}

// --- topics subcommand ---

var indexTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the distinct topics present in the index",
	RunE:  runIndexTopics,
}

func runIndexTopics(cmd *cobra.Command, args []string) error {
	store, err := openIndex(engineConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	browser, ok := store.(index.Browser)
	if !ok {
		return fmt.Errorf("the %T backend does not support listing; use the sqlite backend", store)
	}

	topics, err := browser.Topics(context.Background())
	if err != nil {
		return err
	}
	for _, t := range topics {
		fmt.Println(t)
	}
	fmt.Printf("\n%d topics\n", len(topics))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export indexed chunk records as YAML",
	RunE:  runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	store, err := openIndex(engineConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	browser, ok := store.(index.Browser)
	if !ok {
		return fmt.Errorf("the %T backend does not support export; use the sqlite backend", store)
	}

	return index.ExportYAML(context.Background(), browser, os.Stdout)
}

// --- stats subcommand ---

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print index size",
	RunE:  runIndexStats,
}

func runIndexStats(cmd *cobra.Command, args []string) error {
	store, err := openIndex(engineConfig().Index)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Count(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%d chunks indexed\n", n)
	return nil
}

func init() {
	indexCmd.AddCommand(indexLoadCmd)
	indexCmd.AddCommand(indexTopicsCmd)
	indexCmd.AddCommand(indexExportCmd)
	indexCmd.AddCommand(indexStatsCmd)
	rootCmd.AddCommand(indexCmd)
}
