package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ppttheme/internal/models"
	"ppttheme/internal/services"
)

// readDocument decodes a presentation document from a JSON file
func readDocument(path string) (*models.PresentationSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc models.PresentationSettings
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &doc, nil
}

// printValidation lists the failing fields of a validation error
func printValidation(cmd *cobra.Command, err error) {
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, f := range verr.Fields {
		cmd.PrintErrf("  %s: %s\n", f.Field, f.Reason)
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a presentation document is complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			if err := services.ValidateSettings(doc); err != nil {
				printValidation(cmd, err)
				return err
			}

			cmd.Printf("%s is valid (%d slides)\n", args[0], len(doc.Slides))
			return nil
		},
	}
}

type exportFlags struct {
	format string
	out    string
}

func newExportCmd(a *app) *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a presentation document as JSON or PowerPoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			format := models.ExportFormat(f.format)
			data, err := services.RenderDocument(doc, format)
			if err != nil {
				printValidation(cmd, err)
				return err
			}

			out := f.out
			if out == "" {
				out = format.FileName()
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			a.logger.Debug("Export written", zap.String("path", out), zap.Int("bytes", len(data)))
			cmd.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", string(models.ExportJSON), "Export format: json or pptx")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output path (default presentation.<format>)")

	return cmd
}

func newPushCmd(a *app) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Send a presentation document to a settings service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			if baseURL == "" {
				baseURL = a.cfg.Gateway.URL
			}
			gateway, err := services.NewHTTPGateway(baseURL, a.cfg.Gateway.Timeout, a.logger)
			if err != nil {
				return err
			}

			ack, err := gateway.SaveSettings(cmd.Context(), doc)
			if err != nil {
				printValidation(cmd, err)
				return err
			}

			message := ack.Message
			if message == "" {
				message = "Settings saved"
			}
			cmd.Println(message)
			if len(ack.Data) > 0 {
				cmd.Println(string(ack.Data))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Base URL of the settings service (default from config)")

	return cmd
}
