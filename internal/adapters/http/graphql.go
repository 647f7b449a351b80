package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/pmrmap/internal/core/domain"
	"github.com/samirrijal/pmrmap/internal/pkg/geospatial"
)

// buildSchema creates the GraphQL schema over the cached dashboard data.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	accessPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AccessPoint",
		Fields: graphql.Fields{
			"name":            &graphql.Field{Type: graphql.String},
			"location":        &graphql.Field{Type: geoPointType},
			"priority":        &graphql.Field{Type: graphql.Int},
			"access_priority": &graphql.Field{Type: graphql.Int},
			"class":           &graphql.Field{Type: graphql.Int},
			"color":           &graphql.Field{Type: graphql.String},
			"size":            &graphql.Field{Type: graphql.Float},
			"symbol":          &graphql.Field{Type: graphql.String},
			"distance": &graphql.Field{
				Type:        graphql.Float,
				Description: "Metres from the lat/lon query point, null without one",
			},
		},
	})

	establishmentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Establishment",
		Fields: graphql.Fields{
			"label":    &graphql.Field{Type: graphql.String},
			"type":     &graphql.Field{Type: graphql.String},
			"color":    &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: geoPointType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"accessPoints": &graphql.Field{
				Type:        graphql.NewList(accessPointType),
				Description: "Stations with their priority classes, styled by the chosen colour field",
				Args: graphql.FieldConfigArgument{
					"colorBy": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: string(domain.ColorByPriority)},
					"class":   &graphql.ArgumentConfig{Type: graphql.Int},
					"lat":     &graphql.ArgumentConfig{Type: graphql.Float},
					"lon":     &graphql.ArgumentConfig{Type: graphql.Float},
					"radius":  &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 1000.0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					field, err := domain.ParseColorField(p.Args["colorBy"].(string))
					if err != nil {
						return nil, err
					}
					data, err := deps.Dashboard.Data(p.Context)
					if err != nil {
						return nil, err
					}

					center, near := nearFilter(p.Args)
					var result []map[string]interface{}
					for _, ap := range data.Points {
						class := ap.Class(field)
						if want, ok := p.Args["class"].(int); ok && int(class) != want {
							continue
						}
						if near != nil && !near(ap.Location) {
							continue
						}
						style := ap.Style()
						m := map[string]interface{}{
							"name":            ap.Name,
							"location":        geoPointMap(ap.Location),
							"priority":        int(ap.Priority),
							"access_priority": int(ap.AccessPriority),
							"class":           int(class),
							"color":           class.Style().Color,
							"size":            style.Size,
							"symbol":          style.Symbol,
						}
						if near != nil {
							m["distance"] = geospatial.Distance(center, ap.Location)
						}
						result = append(result, m)
					}
					return result, nil
				},
			},
			"establishments": &graphql.Field{
				Type:        graphql.NewList(establishmentType),
				Description: "Public establishments shown on the overlays",
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					data, err := deps.Dashboard.Data(p.Context)
					if err != nil {
						return nil, err
					}

					var result []map[string]interface{}
					for _, e := range data.Establishments {
						if want, ok := p.Args["type"].(string); ok && string(e.Type) != want {
							continue
						}
						m := map[string]interface{}{
							"label":    e.Label,
							"type":     string(e.Type),
							"location": geoPointMap(e.Location),
						}
						if color, ok := e.Type.Color(); ok {
							m["color"] = color
						}
						result = append(result, m)
					}
					return result, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// nearFilter builds a radius filter around the query point when both lat
// and lon are given.
func nearFilter(args map[string]interface{}) (domain.GeoPoint, func(domain.GeoPoint) bool) {
	lat, okLat := args["lat"].(float64)
	lon, okLon := args["lon"].(float64)
	if !okLat || !okLon {
		return domain.GeoPoint{}, nil
	}
	center := domain.GeoPoint{Lat: lat, Lon: lon}
	radius, _ := args["radius"].(float64)
	return center, geospatial.Within(center, radius)
}

func geoPointMap(p domain.GeoPoint) map[string]interface{} {
	return map[string]interface{}{"lat": p.Lat, "lon": p.Lon}
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
