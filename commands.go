package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"scenario-runner/internal/panels"
	"scenario-runner/internal/report"
	"scenario-runner/internal/snippet"
)

func NewDefaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print the default situation for a panel",
		Example: `  scenario-runner default
  scenario-runner default --mode us --reform > reform.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := panelFromFlags(cmd, e.cfg.DefaultJurisdiction)
			if err != nil {
				return err
			}
			text, err := panels.Render(p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	addPanelFlags(cmd)
	return cmd
}

func NewSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a situation to the calculator and print the response",
		Long: `Send a situation to the calculator and print the response.

The situation is read from --file ("-" for stdin). Without --file the
panel's default situation is sent.`,
		Example: `  scenario-runner submit --mode uk
  scenario-runner default --mode us | scenario-runner submit --mode us -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := panelFromFlags(cmd, e.cfg.DefaultJurisdiction)
			if err != nil {
				return err
			}
			text, err := readSituation(cmd, p)
			if err != nil {
				return err
			}

			if full, _ := cmd.Flags().GetBool("full"); full {
				lang, err := languageFlag(cmd)
				if err != nil {
					return err
				}
				resp, err := e.runner.Run(p, text, lang)
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(resp, "", "    ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			}

			sub, err := e.runner.Submit(p, text)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, sub.Result, "", "    "); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return err
		},
	}
	addPanelFlags(cmd)
	addInputFlags(cmd)
	cmd.Flags().Bool("full", false, "Print request, response, snippet and edits as one JSON document")
	return cmd
}

func NewSnippetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Print code that reproduces the calculate call",
		Example: `  scenario-runner snippet --mode us
  scenario-runner snippet --lang curl -f situation.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := panelFromFlags(cmd, e.cfg.DefaultJurisdiction)
			if err != nil {
				return err
			}
			text, err := readSituation(cmd, p)
			if err != nil {
				return err
			}
			lang, err := languageFlag(cmd)
			if err != nil {
				return err
			}
			code, err := e.runner.GenerateSnippet(p, text, lang)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), code)
			return err
		},
	}
	addPanelFlags(cmd)
	addInputFlags(cmd)
	return cmd
}

func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Submit a situation and print a Markdown report of the interaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := panelFromFlags(cmd, e.cfg.DefaultJurisdiction)
			if err != nil {
				return err
			}
			text, err := readSituation(cmd, p)
			if err != nil {
				return err
			}
			lang, err := languageFlag(cmd)
			if err != nil {
				return err
			}
			resp, err := e.runner.Run(p, text, lang)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), report.Interaction{
				Panel:     p,
				Situation: text,
				Response:  resp,
			})
		},
	}
	addPanelFlags(cmd)
	addInputFlags(cmd)
	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", `Situation JSON file, "-" for stdin (default: the panel's default)`)
	cmd.Flags().String("lang", "", "Snippet language: python or curl (default from config)")
}

// languageFlag returns "" when --lang is unset so the configured default
// applies.
func languageFlag(cmd *cobra.Command) (snippet.Language, error) {
	raw, _ := cmd.Flags().GetString("lang")
	if raw == "" {
		return "", nil
	}
	return snippet.ParseLanguage(raw)
}

func readSituation(cmd *cobra.Command, p *panels.Panel) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	switch path {
	case "":
		return panels.Render(p)
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-chosen input file
	if err != nil {
		return "", fmt.Errorf("read situation: %w", err)
	}
	return string(data), nil
}
