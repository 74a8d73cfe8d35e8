package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"invplanner/internal/importer"
	"invplanner/internal/model"
	"invplanner/internal/service/analysis"
	"invplanner/internal/service/excel"
)

var (
	inspectPretty   bool
	inspectProgress bool
	inspectExport   string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Classify a workbook and print the extracted records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return model.NewWorkbookError(model.KindMissingFile, "cannot open "+path, err)
		}
		if !cfg.AllowsExtension(path) {
			return model.NewWorkbookError(model.KindInvalidFileType, "unsupported file "+path, nil)
		}
		if info.Size() > cfg.Upload.MaxBytes {
			return model.NewWorkbookError(model.KindFileTooLarge,
				fmt.Sprintf("%s is %d bytes, limit %d", path, info.Size(), cfg.Upload.MaxBytes), nil)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		analyzer := analysis.NewAnalyzer(analysis.Options{
			Extract: importer.Options{
				SampleRows:     cfg.Extract.SampleRows,
				HeaderScanRows: cfg.Extract.HeaderScanRows,
				TypeSampleRows: cfg.Extract.TypeSampleRows,
			},
			ClassifySampleRows: cfg.Extract.ClassifySampleRows,
		}, logger)

		out := cmd.OutOrStdout()
		if inspectProgress {
			events, err := analyzer.Stream(cmd.Context(), path, data)
			if err != nil {
				return err
			}
			for e := range events {
				if err := writeJSON(out, e, false); err != nil {
					return err
				}
			}
			return nil
		}

		res, err := analyzer.Analyze(cmd.Context(), path, data)
		if res != nil {
			if werr := writeJSON(out, res, inspectPretty); werr != nil {
				return werr
			}
		}
		if err != nil {
			return err
		}
		if inspectExport != "" {
			return exportWorkbook(res, inspectExport)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPretty, "pretty", false, "indent JSON output")
	inspectCmd.Flags().BoolVar(&inspectProgress, "progress", false, "stream progress events as JSON lines")
	inspectCmd.Flags().StringVarP(&inspectExport, "export", "o", "", "write the extracted records to a normalized xlsx file")
}

func exportWorkbook(res *analysis.Result, path string) error {
	f, err := excel.NewExporter().Export(res.ExtractedData, res.Classification)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("records", res.ExtractedData.Count()).Msg("export written")
	return nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
