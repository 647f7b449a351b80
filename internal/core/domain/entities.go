package domain

// Attribute keys of the dashboard input files.
const (
	PropName           = "name"
	PropPriority       = "priority"
	PropAccessPriority = "access_priority"
	PropType           = "type"
	PropLabel          = "label"
)

// AccessPoint is a station on the accessibility layer of the dashboard.
type AccessPoint struct {
	Name           string        `json:"name"`
	Location       GeoPoint      `json:"location"`
	Priority       PriorityClass `json:"priority"`
	AccessPriority PriorityClass `json:"access_priority"`
}

// Class returns the class the point has for the given colouring field.
func (p AccessPoint) Class(field ColorField) PriorityClass {
	if field == ColorByAccessPriority {
		return p.AccessPriority
	}
	return p.Priority
}

// Style is the marker size and symbol of the point. Both follow the overall
// priority whatever field drives the colour.
func (p AccessPoint) Style() PriorityStyle {
	return p.Priority.Style()
}

// Establishment is a public building drawn on the overlay layers.
type Establishment struct {
	Label    string            `json:"label"`
	Type     EstablishmentType `json:"type"`
	Location GeoPoint          `json:"location"`
}

// DashboardData is everything the dashboard needs, loaded once per process.
type DashboardData struct {
	Points         []AccessPoint   `json:"points"`
	Establishments []Establishment `json:"establishments"`
}
