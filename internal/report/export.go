package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"rippl-backend/internal/tasks"
	"rippl-backend/internal/users"
)

var ErrUnknownFormat = errors.New("unknown export format")

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

type TaskSource interface {
	List() []tasks.Task
}

type ProfileSource interface {
	Profile() users.Profile
	Achievements() []users.Achievement
}

// Impact is the volunteer's verified record.
type Impact struct {
	Volunteer    string              `json:"volunteer"`
	GeneratedAt  time.Time           `json:"generated_at"`
	Missions     []tasks.Task        `json:"missions"`
	Achievements []users.Achievement `json:"achievements"`
	TotalXP      int                 `json:"total_xp"`
	TotalHours   float64             `json:"total_hours"`
}

type Exporter struct {
	tasks    TaskSource
	profile  ProfileSource
	now      func() time.Time
	compress bool
}

func NewExporter(ts TaskSource, ps ProfileSource) *Exporter {
	return &Exporter{tasks: ts, profile: ps, now: time.Now, compress: true}
}

// Collect builds the impact record from completed missions. Totals come from
// the profile, which includes hours logged before the current catalog.
func (e *Exporter) Collect() Impact {
	p := e.profile.Profile()
	done := tasks.ByStatus(e.tasks.List(), tasks.StatusCompleted)
	return Impact{
		Volunteer:    p.Name,
		GeneratedAt:  e.now().UTC(),
		Missions:     done,
		Achievements: e.profile.Achievements(),
		TotalXP:      p.TotalXP,
		TotalHours:   p.TotalHours,
	}
}

func (e *Exporter) Export(f Format) ([]byte, error) {
	imp := e.Collect()
	switch f {
	case FormatJSON:
		return json.MarshalIndent(imp, "", "  ")
	case FormatCSV:
		return exportCSV(imp)
	case FormatPDF:
		return exportPDF(imp, e.compress)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

func exportCSV(imp Impact) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "title", "organization", "category", "xp", "hours", "evidence_link"})
	for _, t := range imp.Missions {
		link := ""
		if t.Evidence != nil {
			link = t.Evidence.Link
		}
		_ = w.Write([]string{
			t.ID, t.Title, t.Organization, t.Category,
			fmt.Sprint(t.XP), fmt.Sprintf("%.1f", t.Hours), link,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// exportPDF uses the core fonts, so every string is translated from UTF-8 to
// cp1252 before it is drawn.
func exportPDF(imp Impact, compress bool) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle("Impact Report", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Impact Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, tr("Volunteer: "+imp.Volunteer))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total XP: %d   Total hours: %.1f", imp.TotalXP, imp.TotalHours))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated: "+imp.GeneratedAt.Format(time.RFC1123))
	pdf.Ln(10)

	if len(imp.Achievements) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Achievements")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, a := range imp.Achievements {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s (%s): %s", a.Title, a.Type, a.Description)), "0", "L", false)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Verified missions")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	if len(imp.Missions) == 0 {
		pdf.MultiCell(0, 6, "No verified missions yet.", "0", "L", false)
	}
	for _, t := range imp.Missions {
		line := fmt.Sprintf("[%s] %s - %s (+%d XP, %.1f h)", t.Category, t.Title, t.Organization, t.XP, t.Hours)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
