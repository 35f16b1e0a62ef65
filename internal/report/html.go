package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

const pageStyle = `body{font-family:sans-serif;margin:2rem;color:#222}` +
	`table{border-collapse:collapse;margin:1rem 0}` +
	`th,td{border:1px solid #ccc;padding:.3rem .7rem;text-align:right}` +
	`th:first-child,td:first-child{text-align:left}` +
	`.up{color:#1a7f37}.down{color:#cf222e}` +
	`.good{background:#dafbe1}.warning{background:#fff8c5}.bad{background:#ffebe9}`

// KPIPage renders the before/after comparison and the per-column
// completeness of both snapshots as a standalone HTML page.
func KPIPage(title, runID string, rows []KPIRow, before, after core.QualityMetrics, warnThreshold float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.printf(`<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8"><title>%s</title><style>%s</style></head><body>`,
			templ.EscapeString(title), pageStyle)
		p.printf(`<h1>%s</h1>`, templ.EscapeString(title))
		if runID != "" {
			p.printf(`<p>Run <code>%s</code></p>`, templ.EscapeString(runID))
		}

		p.printf(`<h2>Comparaison avant/après</h2><table><thead><tr>`)
		for _, h := range KPIHeader {
			p.printf(`<th>%s</th>`, templ.EscapeString(h))
		}
		p.printf(`</tr></thead><tbody>`)
		for _, r := range rows {
			p.printf(`<tr><td>%s</td><td>%s</td><td>%s</td><td class="%s">%s</td></tr>`,
				templ.EscapeString(r.Metric),
				core.FormatFloat(r.Before),
				core.FormatFloat(r.After),
				trend(r.Improvement),
				core.FormatFloat(r.Improvement))
		}
		p.printf(`</tbody></table>`)

		p.printf(`<h2>Complétude par colonne</h2><table><thead><tr><th>Colonne</th><th>%s</th><th>%s</th></tr></thead><tbody>`,
			templ.EscapeString(before.DatasetName), templ.EscapeString(after.DatasetName))
		for _, cc := range after.CompletenessPerColumn {
			prev := "-"
			if pct, ok := before.Completeness(cc.Column); ok {
				prev = core.FormatFloat(pct)
			}
			p.printf(`<tr><td>%s</td><td>%s</td><td class="%s">%s</td></tr>`,
				templ.EscapeString(cc.Column), prev, Status(cc.Percent, warnThreshold), core.FormatFloat(cc.Percent))
		}
		p.printf(`</tbody></table></body></html>`)
		return p.err
	})
}

func trend(delta float64) string {
	switch {
	case delta > 0:
		return "up"
	case delta < 0:
		return "down"
	default:
		return ""
	}
}

// htmlWriter keeps the first write error so the page body reads linearly.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (p *htmlWriter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteHTML renders c into path, creating parent directories.
func WriteHTML(ctx context.Context, path string, c templ.Component) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := c.Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
