package usecases

import (
	"github.com/samirrijal/pmrmap/internal/core/domain"
	"github.com/samirrijal/pmrmap/internal/pkg/geospatial"
	"github.com/samirrijal/pmrmap/internal/pkg/plotly"
)

const (
	mapStyle = "open-street-map"

	overlayColor = "black"
	overlaySize  = 11
	typedSize    = 8

	pointHover = "<b>%{text}</b><br>%{customdata}<extra></extra>"
)

// FigureOptions are the fixed parts of the dashboard figure.
type FigureOptions struct {
	Title string
	Zoom  float64
}

// BuildFigure lays out the dashboard map for data coloured by field. The
// base layer has one trace per class present, most urgent first, then the
// unclassified points. The two establishment overlays follow.
func BuildFigure(data *domain.DashboardData, field domain.ColorField, opts FigureOptions) *plotly.Figure {
	byClass := make(map[domain.PriorityClass][]domain.AccessPoint)
	locations := make([]domain.GeoPoint, 0, len(data.Points))
	for _, p := range data.Points {
		c := p.Class(field)
		if !c.Valid() {
			c = domain.PriorityUnclassified
		}
		byClass[c] = append(byClass[c], p)
		locations = append(locations, p.Location)
	}

	fig := &plotly.Figure{}
	order := append(domain.PriorityClasses(), domain.PriorityUnclassified)
	for _, c := range order {
		if pts := byClass[c]; len(pts) > 0 {
			fig.Data = append(fig.Data, classTrace(c, pts))
		}
	}
	if len(data.Establishments) > 0 {
		fig.Data = append(fig.Data, establishmentsTrace(data.Establishments), typedEstablishmentsTrace(data.Establishments))
	}

	center, _ := geospatial.Centroid(locations)
	fig.Layout = plotly.Layout{
		Title: plotly.Title{Text: opts.Title, X: 0.5, XAnchor: "center"},
		Mapbox: plotly.Mapbox{
			Style:  mapStyle,
			Zoom:   opts.Zoom,
			Center: plotly.Center{Lat: center.Lat, Lon: center.Lon},
		},
		Margin:     plotly.Margin{R: 0, T: 50, L: 0, B: 0},
		Legend:     &plotly.Legend{Title: plotly.LegendTitle{Text: field.Label()}, Y: 0.99, X: 0.01},
		ShowLegend: true,
	}
	return fig
}

func classTrace(c domain.PriorityClass, pts []domain.AccessPoint) plotly.Trace {
	t := plotly.Trace{
		Type:          "scattermapbox",
		Name:          c.String(),
		Mode:          "markers",
		Lat:           make([]float64, len(pts)),
		Lon:           make([]float64, len(pts)),
		Text:          make([]string, len(pts)),
		CustomData:    make([]string, len(pts)),
		HoverTemplate: pointHover,
		LegendGroup:   "points",
	}
	sizes := make([]float64, len(pts))
	for i, p := range pts {
		style := p.Style()
		t.Lat[i] = p.Location.Lat
		t.Lon[i] = p.Location.Lon
		t.Text[i] = p.Name
		t.CustomData[i] = style.Symbol
		sizes[i] = style.Size
	}
	t.Marker = plotly.Marker{Size: sizes, Color: c.Style().Color, Opacity: 0.9}
	return t
}

func establishmentsTrace(es []domain.Establishment) plotly.Trace {
	t := establishmentBase(es)
	t.Name = "Établissements"
	t.LegendGroup = "establishments"
	t.Marker = plotly.Marker{Size: overlaySize, Color: overlayColor}
	return t
}

// typedEstablishmentsTrace recolours each establishment by type. Types with
// no colour get a null entry so Plotly applies its default.
func typedEstablishmentsTrace(es []domain.Establishment) plotly.Trace {
	t := establishmentBase(es)
	t.Name = "Établissements par type"
	t.LegendGroup = "establishments-typed"

	colors := make([]*string, len(es))
	for i, e := range es {
		if c, ok := e.Type.Color(); ok {
			colors[i] = &c
		}
	}
	t.Marker = plotly.Marker{Size: typedSize, Color: colors}
	return t
}

func establishmentBase(es []domain.Establishment) plotly.Trace {
	t := plotly.Trace{
		Type:          "scattermapbox",
		Mode:          "markers",
		Lat:           make([]float64, len(es)),
		Lon:           make([]float64, len(es)),
		Text:          make([]string, len(es)),
		CustomData:    make([]string, len(es)),
		HoverTemplate: pointHover,
	}
	for i, e := range es {
		t.Lat[i] = e.Location.Lat
		t.Lon[i] = e.Location.Lon
		t.Text[i] = e.Label
		t.CustomData[i] = string(e.Type)
	}
	return t
}
