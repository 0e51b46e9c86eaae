package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// reportField is one "Label: value" row of the user block.
type reportField struct {
	Label string
	Value string
}

// report is the document handed to a renderer.
type report struct {
	UserInfo []reportField
	DietType string
	Calories int
	Daily    dietPlan
	Weekly   weeklyPlan
}

func newReport(p userProfile, bmi float64, rec recommendation) report {
	return report{
		UserInfo: []reportField{
			{Label: "Age", Value: strconv.Itoa(p.Age)},
			{Label: "Gender", Value: p.Gender},
			{Label: "Weight", Value: strconv.FormatFloat(p.WeightKG, 'f', 1, 64)},
			{Label: "Height", Value: strconv.FormatFloat(p.HeightCM, 'f', 1, 64)},
			{Label: "BMI", Value: strconv.FormatFloat(bmi, 'f', 1, 64)},
			{Label: "Disease", Value: p.Disease},
		},
		DietType: rec.DietType,
		Calories: rec.Calories,
		Daily:    rec.DailyPlan,
		Weekly:   rec.WeeklyPlan,
	}
}

/* ─── Layout shared by all renderers ─────────────────────────────────── */

type lineStyle int

const (
	styleTitle lineStyle = iota
	styleHeading
	styleSubheading
	styleBody
	styleSpacer
)

type reportLine struct {
	style lineStyle
	text  string
}

// lines flattens the report into styled lines in display order.
func (r report) lines() []reportLine {
	out := []reportLine{
		{styleTitle, "Personalized Diet Report"},
		{styleSpacer, ""},
	}
	for _, f := range r.UserInfo {
		out = append(out, reportLine{styleBody, f.Label + ": " + f.Value})
	}
	out = append(out,
		reportLine{styleBody, "Diet Type: " + r.DietType},
		reportLine{styleBody, fmt.Sprintf("Calories/day: %d kcal", r.Calories)},
		reportLine{styleSpacer, ""},
		reportLine{styleHeading, "Daily Diet Plan:"},
	)
	for _, slot := range r.Daily {
		out = append(out, reportLine{styleSubheading, slot.Name + ":"})
		for _, item := range slot.Items {
			out = append(out, reportLine{styleBody, "• " + item})
		}
	}
	out = append(out,
		reportLine{styleSpacer, ""},
		reportLine{styleHeading, "Weekly Diet Plan:"},
	)
	for _, d := range r.Weekly {
		out = append(out, reportLine{styleBody, d.Day + ": " + d.Summary})
	}
	return out
}

// reportRenderer writes a report document to w.
type reportRenderer interface {
	Render(w io.Writer, r report) error
	ContentType() string
	Extension() string
}

// reportFormats maps REPORT_FORMAT values to renderer constructors.
var reportFormats = map[string]func() (reportRenderer, error){
	"pdf": func() (reportRenderer, error) { return pdfRenderer{}, nil },
	"png": func() (reportRenderer, error) {
		r, err := newPNGRenderer()
		if err != nil {
			return nil, err
		}
		return r, nil
	},
}

func rendererFor(format string) (reportRenderer, error) {
	mk, ok := reportFormats[format]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	return mk()
}

/* ─── PDF ────────────────────────────────────────────────────────────── */

type pdfRenderer struct{}

func (pdfRenderer) ContentType() string { return "application/pdf" }
func (pdfRenderer) Extension() string   { return ".pdf" }

func (pdfRenderer) Render(w io.Writer, r report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; the translator maps characters such as "•".
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Personalized Diet Report", true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	for _, l := range r.lines() {
		switch l.style {
		case styleTitle:
			pdf.SetFont("Helvetica", "B", 18)
			pdf.CellFormat(0, 12, tr(l.text), "", 1, "C", false, 0, "")
		case styleHeading:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 9, tr(l.text), "", 1, "L", false, 0, "")
		case styleSubheading:
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, tr(l.text), "", 1, "L", false, 0, "")
		case styleBody:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(l.text), "", "L", false)
		case styleSpacer:
			pdf.Ln(4)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", errRender, err)
	}
	return nil
}

/* ─── PNG ────────────────────────────────────────────────────────────── */

const (
	pngWidth  = 1000
	pngMargin = 48.0
)

// pngRenderer draws the report onto a single tall page with the Go fonts.
// Faces are created per render because truetype faces are not safe for
// concurrent use.
type pngRenderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

func newPNGRenderer() (*pngRenderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &pngRenderer{regular: regular, bold: bold}, nil
}

func (*pngRenderer) ContentType() string { return "image/png" }
func (*pngRenderer) Extension() string   { return ".png" }

type pngStyle struct {
	face       font.Face
	lineHeight float64
}

func (p *pngRenderer) styles() map[lineStyle]pngStyle {
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	}
	return map[lineStyle]pngStyle{
		styleTitle:      {face(p.bold, 34), 52},
		styleHeading:    {face(p.bold, 26), 40},
		styleSubheading: {face(p.bold, 21), 32},
		styleBody:       {face(p.regular, 19), 28},
		styleSpacer:     {nil, 16},
	}
}

func (p *pngRenderer) Render(w io.Writer, r report) error {
	styles := p.styles()
	maxWidth := pngWidth - 2*pngMargin

	// First pass wraps text and sizes the page.
	measure := gg.NewContext(1, 1)
	type wrapped struct {
		style lineStyle
		text  string
	}
	var rows []wrapped
	height := 2 * pngMargin
	for _, l := range r.lines() {
		st := styles[l.style]
		if st.face == nil {
			rows = append(rows, wrapped{l.style, ""})
			height += st.lineHeight
			continue
		}
		measure.SetFontFace(st.face)
		for _, part := range measure.WordWrap(l.text, maxWidth) {
			rows = append(rows, wrapped{l.style, part})
			height += st.lineHeight
		}
	}

	dc := gg.NewContext(pngWidth, int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.12, 0.12, 0.12)
	y := pngMargin
	for _, row := range rows {
		st := styles[row.style]
		y += st.lineHeight
		if st.face == nil {
			continue
		}
		dc.SetFontFace(st.face)
		if row.style == styleTitle {
			dc.DrawStringAnchored(row.text, pngWidth/2, y-st.lineHeight/3, 0.5, 0)
			continue
		}
		dc.DrawString(row.text, pngMargin, y-st.lineHeight/3)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("%w: %v", errRender, err)
	}
	return nil
}
