package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/depotops/crewboard/app"
	"github.com/depotops/crewboard/config"
	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/model"
	"github.com/depotops/crewboard/pkg/export"
)

var (
	exportFormat string
	exportFrom   string
	exportTo     string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a date window of the schedule",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json, csv or ics")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "window start (2006-01-02)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "window end (2006-01-02)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	from, err := time.Parse("2006-01-02", exportFrom)
	if err != nil {
		return fmt.Errorf("parse from: %w", err)
	}
	to, err := time.Parse("2006-01-02", exportTo)
	if err != nil {
		return fmt.Errorf("parse to: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	items, err := svc.Store.Items(context.Background())
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	window := make([]model.ScheduleItem, 0, len(items))
	for _, it := range items {
		d := it.Day()
		if !d.Before(calendar.DateOnly(from)) && !d.After(calendar.DateOnly(to)) {
			window = append(window, it)
		}
	}

	var w io.Writer = os.Stdout
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	switch exportFormat {
	case "json":
		return export.WriteJSON(w, window)
	case "csv":
		return export.WriteCSV(w, window)
	case "ics":
		crews, err := svc.Store.Crews(context.Background())
		if err != nil {
			return fmt.Errorf("load crews: %w", err)
		}
		return export.WriteICS(w, window, crews)
	}
	return fmt.Errorf("unknown format %s", exportFormat)
}
