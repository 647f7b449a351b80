// Command dataprep builds the station GeoJSON served by the API from a CSV
// of stations with coordinates, optionally joined with a CSV of attributes
// on the cleaned station name.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samirrijal/pmrmap/internal/adapters/geofile"
	"github.com/samirrijal/pmrmap/internal/core/domain"
	"github.com/samirrijal/pmrmap/internal/core/usecases"
	"github.com/samirrijal/pmrmap/internal/pkg/logging"
)

func main() {
	var (
		stations     = flag.String("stations", "", "stations CSV with coordinates (required)")
		lonCol       = flag.String("lon", "lon", "longitude column of the stations CSV")
		latCol       = flag.String("lat", "lat", "latitude column of the stations CSV")
		attributes   = flag.String("attributes", "", "attributes CSV to join on the station name")
		stationKey   = flag.String("station-key", "name", "station name column used for the join")
		attributeKey = flag.String("attribute-key", "name", "attribute name column used for the join")
		sep          = flag.String("sep", ",", "CSV field separator")
		out          = flag.String("out", "data/data_pmr.geojson", "output GeoJSON file")
		logLevel     = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	logging.Setup(*logLevel, "text")

	if *stations == "" {
		fmt.Fprintln(os.Stderr, "dataprep: -stations is required")
		flag.Usage()
		os.Exit(2)
	}
	if len([]rune(*sep)) != 1 {
		log.Fatalf("dataprep: -sep must be a single character, got %q", *sep)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := usecases.NewPrepService(geofile.NewCSV([]rune(*sep)[0]), geofile.NewGeoJSON())
	res, err := svc.Run(ctx, usecases.PrepRequest{
		StationsPath:   *stations,
		Coords:         domain.CoordColumns{Lon: *lonCol, Lat: *latCol},
		AttributesPath: *attributes,
		StationKey:     *stationKey,
		AttributeKey:   *attributeKey,
		OutPath:        *out,
	})
	if err != nil {
		log.Fatalf("dataprep: %v", err)
	}

	if res.Join != nil {
		slog.Info("attributes joined",
			"matched", res.Join.Matched,
			"unmatched", res.Join.Unmatched,
			"missing", res.Join.Missing,
		)
	}
	slog.Info("dataprep complete", "features", res.Features, "out", *out)
}
