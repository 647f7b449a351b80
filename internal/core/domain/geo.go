package domain

// Coordinate reference systems understood by the toolkit, in EPSG:nnnn form.
const (
	CRSWGS84       = "EPSG:4326"
	CRSWebMercator = "EPSG:3857"
	CRSLambert93   = "EPSG:2154"
)

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CoordColumns names the two numeric columns a frame stores its coordinates
// in. Fields are named rather than positional so longitude and latitude
// cannot be swapped at a call site.
type CoordColumns struct {
	Lon string
	Lat string
}
