package http

import (
	"github.com/jonboulle/clockwork"

	"github.com/samirrijal/pmrmap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	GeoData     *usecases.GeoDataService
	Dashboard   *usecases.DashboardService
	FrontendDir string
	DocsPath    string
	Version     string
	Clock       clockwork.Clock
}

func (d *Dependencies) clock() clockwork.Clock {
	if d.Clock == nil {
		return clockwork.NewRealClock()
	}
	return d.Clock
}
