package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"scopereport/domain/document"
	apperrors "scopereport/internal/errors"
)

type tableOutline struct {
	Heading string `json:"heading"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

type reportOutline struct {
	Title    string         `json:"title"`
	Headings []string       `json:"headings"`
	Tables   []tableOutline `json:"tables"`
	Formats  []string       `json:"formats"`
}

// handleIndex renders the report as an html page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.serveFormat(w, document.FormatHTML, false)
}

// handleHealth reports liveness
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOutline returns headings and table shapes as JSON
func (a *App) handleOutline(w http.ResponseWriter, r *http.Request) {
	doc, err := a.load()
	if err != nil {
		a.writeError(w, err)
		return
	}

	outline := reportOutline{
		Title:    doc.Title,
		Headings: doc.Headings(),
		Tables:   []tableOutline{},
	}
	if outline.Headings == nil {
		outline.Headings = []string{}
	}
	for _, s := range doc.Sections() {
		outline.Tables = append(outline.Tables, tableOutline{
			Heading: s.Heading,
			Columns: s.Table.Columns(),
			Rows:    len(s.Table.Rows),
		})
	}
	for _, f := range document.Formats {
		outline.Formats = append(outline.Formats, string(f))
	}
	writeJSON(w, http.StatusOK, outline)
}

// handleDownload serves the report in the requested format as an attachment
func (a *App) handleDownload(w http.ResponseWriter, r *http.Request) {
	format, ok := document.ParseFormat(chi.URLParam(r, "format"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown format"})
		return
	}
	a.serveFormat(w, format, true)
}

// handleGenerations lists recent ledger entries, newest first
func (a *App) handleGenerations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			a.writeError(w, apperrors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = n
	}
	gens, err := a.service.History(r.Context(), limit)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gens)
}

func (a *App) serveFormat(w http.ResponseWriter, format document.Format, attachment bool) {
	doc, err := a.load()
	if err != nil {
		a.writeError(w, err)
		return
	}
	data, err := a.service.Render(format, doc)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if attachment {
		name := format.PathFor(fileStem(doc.Title))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		a.logger.Warn("failed to write %s response: %v", format, err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeUnsupportedFormat:
		status = http.StatusNotFound
	}
	a.logger.Error("request failed: %v", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// stripMarks drops combining accents after decomposition, so Š becomes S.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fileStem turns a title into an ASCII download name.
func fileStem(title string) string {
	plain, _, err := transform.String(stripMarks, title)
	if err != nil {
		plain = title
	}
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteByte('-')
			lastDash = true
		}
	}
	stem := strings.TrimSuffix(b.String(), "-")
	if stem == "" {
		stem = "report"
	}
	return stem
}
