package http

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/pmrmap/internal/core/domain"
)

const dashboardHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
  <style>
    html,body{margin:0;height:100%;font-family:system-ui,sans-serif}
    header{display:flex;gap:.75rem;align-items:center;padding:.5rem 1rem;border-bottom:1px solid #ddd}
    #map{height:calc(100% - 3rem)}
    #error{color:#b00020}
  </style>
</head>
<body>
  <header>
    <label for="color-by">Colorer par</label>
    <select id="color-by">
      {{range .Fields}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{end}}
    </select>
    <span id="error"></span>
  </header>
  <div id="map"></div>
  <script>
    const figure = {{.Figure}};
    Plotly.newPlot('map', figure.data, figure.layout, {responsive: true});

    document.getElementById('color-by').addEventListener('change', async (ev) => {
      const errEl = document.getElementById('error');
      errEl.textContent = '';
      const res = await fetch('/dashboard/figure?color_by=' + encodeURIComponent(ev.target.value));
      const body = await res.json();
      if (!res.ok) {
        errEl.textContent = body.message || res.statusText;
        return;
      }
      Plotly.react('map', body.data, body.layout);
    });
  </script>
</body>
</html>`

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type fieldOption struct {
	Value    string
	Label    string
	Selected bool
}

type dashboardPage struct {
	Title  string
	Fields []fieldOption
	Figure template.JS
}

// DashboardHandler renders the dashboard page with the figure for ?color_by=
// embedded, so the first paint needs no extra request.
func DashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		field, err := colorField(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		fig, err := deps.Dashboard.Figure(c.UserContext(), field)
		if err != nil {
			return errFromDomain(c, err)
		}

		raw, err := json.Marshal(fig)
		if err != nil {
			return errInternal(c, err.Error())
		}

		page := dashboardPage{
			Title:  fig.Layout.Title.Text,
			Figure: template.JS(raw),
		}
		for _, f := range domain.ColorFields() {
			page.Fields = append(page.Fields, fieldOption{
				Value:    string(f),
				Label:    f.Label(),
				Selected: f == field,
			})
		}

		var buf bytes.Buffer
		if err := dashboardTmpl.Execute(&buf, page); err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "no-cache")
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}
