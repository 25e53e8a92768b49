package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/five82/curator/internal/harvard"
	"github.com/five82/curator/internal/state"
)

// Output formats accepted by WritePage.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// PageReport is the printable form of one fetched page.
type PageReport struct {
	Page       int            `json:"page" yaml:"page"`
	TotalPages int            `json:"total_pages" yaml:"total_pages"`
	Records    []RecordReport `json:"records" yaml:"records"`
}

// RecordReport is the printable form of one artwork.
type RecordReport struct {
	ID             int      `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Dated          string   `json:"dated,omitempty" yaml:"dated,omitempty"`
	Classification string   `json:"classification,omitempty" yaml:"classification,omitempty"`
	People         []string `json:"people,omitempty" yaml:"people,omitempty"`
	Images         int      `json:"images" yaml:"images"`
	PrimaryImage   string   `json:"primary_image,omitempty" yaml:"primary_image,omitempty"`
	URL            string   `json:"url" yaml:"url"`
}

// NewPageReport projects a record group and snapshot into a report.
func NewPageReport(group state.RecordGroup, snap state.Snapshot) PageReport {
	report := PageReport{
		Page:       group.Page,
		TotalPages: snap.TotalPages,
		Records:    make([]RecordReport, 0, len(group.Records)),
	}
	for _, obj := range group.Records {
		report.Records = append(report.Records, newRecordReport(obj))
	}
	return report
}

func newRecordReport(obj harvard.Object) RecordReport {
	r := RecordReport{
		ID:             obj.ID,
		Title:          obj.Title,
		Dated:          obj.Dated,
		Classification: obj.Classification,
		People:         obj.PeopleNames(),
		Images:         len(obj.Images),
		URL:            obj.URL,
	}
	if img, ok := obj.PrimaryImage(); ok {
		r.PrimaryImage = img.BaseImageURL
	} else {
		r.PrimaryImage = obj.PrimaryImageURL
	}
	return r
}

// WritePage renders report to w in the given format.
func WritePage(w io.Writer, report PageReport, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return writeText(w, report)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, report PageReport) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "DATED", "PEOPLE", "IMAGES")
	for _, r := range report.Records {
		t.Row(
			strconv.Itoa(r.ID),
			truncate(r.Title, 48),
			r.Dated,
			truncate(strings.Join(r.People, ", "), 32),
			strconv.Itoa(r.Images),
		)
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d records)\n%s\n",
		report.Page, report.TotalPages, len(report.Records), t.Render())
	return err
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return string(runes[:1])
	}
	return string(runes[:limit-1]) + "…"
}
