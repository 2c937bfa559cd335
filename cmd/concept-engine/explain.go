// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [topic]",
	Short: "Explain a topic within a study-time word budget",
	Long: `Explain queries the semantic index for the given topic and prints a
stage-ordered explanation sized to the requested study time, followed by
related topics worth exploring next.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().Int("minutes", 5, "study time in minutes (sets the word budget)")
	explainCmd.Flags().Bool("json", false, "output the full response as JSON")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic is required")
	}

	minutes, _ := cmd.Flags().GetInt("minutes")
	if minutes <= 0 {
		minutes = 5
	}

	engine, closeIndex, err := newEngine(engineConfig())
	if err != nil {
		return err
	}
	defer closeIndex()

	result, err := engine.Explain(context.Background(), topic, minutes)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(result.Explanation)
	if len(result.RelatedTopics) > 0 {
		fmt.Printf("\nRelated topics: %s\n", strings.Join(result.RelatedTopics, ", "))
	}
	return nil
}
