package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TNAJanssen/JMSTranslationBundle2/php/parser"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a PHP file and dump the tree the extractor sees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read php file: %w", err)
			}
			for _, node := range parser.Parse(data, args[0]) {
				fmt.Print(parser.Sprint(node))
			}
			return nil
		},
	}
}
