package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prasenjit/go-oasgen/internal/convert"
	"github.com/prasenjit/go-oasgen/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch the generated document from a running service",
	Long: `Downloads the Swagger document served by a running application and
writes it to a file. Output paths ending in .yaml or .yml are written as YAML.

With --v3 the document is converted to OpenAPI 3 before it is written;
--validate additionally checks the converted document.`,
	RunE: runExport,
}

var (
	exportURL      string
	exportOutput   string
	exportV3       bool
	exportValidate bool
	exportTimeout  time.Duration
)

func init() {
	exportCmd.Flags().StringVarP(&exportURL, "url", "u", "http://localhost:8080/api-spec", "URL of the served specification")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "openapi.json", "Output file")
	exportCmd.Flags().BoolVar(&exportV3, "v3", false, "Convert to OpenAPI 3")
	exportCmd.Flags().BoolVar(&exportValidate, "validate", false, "Validate the converted OpenAPI 3 document")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 10*time.Second, "Request timeout")
}

func runExport(cmd *cobra.Command, args []string) error {
	client := resty.New().SetTimeout(exportTimeout)

	n, err := export(cmd.Context(), client, exportURL, exportOutput, exportV3, exportValidate)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", n, exportOutput)
	return nil
}

// export fetches the document at url and saves it to output
func export(ctx context.Context, client *resty.Client, url, output string, v3, validate bool) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("failed to fetch %s: %s", url, resp.Status())
	}

	data := resp.Body()
	if v3 || validate {
		doc, err := convert.ToV3(data)
		if err != nil {
			return 0, err
		}
		if validate {
			if err := convert.Validate(ctx, doc); err != nil {
				return 0, err
			}
		}
		if v3 {
			if data, err = doc.MarshalJSON(); err != nil {
				return 0, fmt.Errorf("failed to render OpenAPI 3 document: %w", err)
			}
		}
	}

	store, err := storage.NewFileStorage(output)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.SaveSpec(data); err != nil {
		return 0, err
	}
	return len(data), nil
}
