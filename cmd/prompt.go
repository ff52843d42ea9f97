package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/ai/prompt"
	"quill/internal/service/generation"
)

var promptFile string

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Validate a request and print its prompt pair",
	Long: `Validate a generation request body and print the system and user prompts
that would be sent to the model, without calling it.

Reads the request from --file, or from stdin when the file is "-".`,
	Example: `  quill prompt -f request.json
  echo '{"intent":"synopsis","idea":"a clockmaker","genre":"Fantasy"}' | quill prompt -f -`,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringVarP(&promptFile, "file", "f", "-", "request body JSON file (- for stdin)")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	body, err := readRequest(promptFile)
	if err != nil {
		return err
	}

	req, err := generation.NewValidator().Validate(body)
	if err != nil {
		return err
	}

	pair, err := prompt.Build(req)
	if err != nil {
		return fmt.Errorf("build prompt: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(pair)
}

func readRequest(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request file: %w", err)
	}
	return body, nil
}
