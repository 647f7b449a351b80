// Package plotly models the subset of the Plotly.js figure schema the
// dashboard renders: scattermapbox traces and a mapbox layout. Values are
// marshalled as-is and handed to Plotly.newPlot / Plotly.react in the browser.
package plotly

// Figure is a complete Plotly figure.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one scattermapbox layer.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	Lat           []float64 `json:"lat"`
	Lon           []float64 `json:"lon"`
	Text          []string  `json:"text,omitempty"`
	CustomData    []string  `json:"customdata,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	LegendGroup   string    `json:"legendgroup,omitempty"`
	ShowLegend    *bool     `json:"showlegend,omitempty"`
	Marker        Marker    `json:"marker"`
}

// Marker styles the points of a trace. Size and Color take either a scalar
// applied to every point or a per-point slice.
type Marker struct {
	Size    any     `json:"size,omitempty"`
	Color   any     `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Layout is the figure layout.
type Layout struct {
	Title      Title   `json:"title"`
	Mapbox     Mapbox  `json:"mapbox"`
	Margin     Margin  `json:"margin"`
	Legend     *Legend `json:"legend,omitempty"`
	ShowLegend bool    `json:"showlegend"`
}

// Title is a layout title; X of 0.5 with XAnchor "center" centres it.
type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	XAnchor string  `json:"xanchor,omitempty"`
}

// Mapbox configures the base map.
type Mapbox struct {
	Style  string  `json:"style"`
	Zoom   float64 `json:"zoom"`
	Center Center  `json:"center"`
}

// Center is the initial map centre.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}

// Legend places and titles the legend.
type Legend struct {
	Title LegendTitle `json:"title"`
	Y     float64     `json:"y"`
	X     float64     `json:"x"`
}

// LegendTitle is the caption above the legend entries.
type LegendTitle struct {
	Text string `json:"text"`
}

// Bool returns a pointer to b, for optional flags.
func Bool(b bool) *bool { return &b }
