package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/iratxeld/tripfinder/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to the search and saved-trip
// services. Queries mirror the REST surface: trip search plus the saved list.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	tripType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trip",
		Fields: graphql.Fields{
			"origin":       &graphql.Field{Type: graphql.String},
			"destination":  &graphql.Field{Type: graphql.String},
			"cost":         &graphql.Field{Type: graphql.Float},
			"duration":     &graphql.Field{Type: graphql.Float},
			"type":         &graphql.Field{Type: graphql.String},
			"display_name": &graphql.Field{Type: graphql.String},
		},
	})

	savedTripType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SavedTrip",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"origin":       &graphql.Field{Type: graphql.String},
			"destination":  &graphql.Field{Type: graphql.String},
			"cost":         &graphql.Field{Type: graphql.Float},
			"duration":     &graphql.Field{Type: graphql.Float},
			"type":         &graphql.Field{Type: graphql.String},
			"display_name": &graphql.Field{Type: graphql.String},
			"created_at":   &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"trips": &graphql.Field{
				Type:        graphql.NewList(tripType),
				Description: "Search trips between two places, sorted by the given key",
				Args: graphql.FieldConfigArgument{
					"origin":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"destination": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"sortBy":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: usecases.SortFastest},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					origin := p.Args["origin"].(string)
					destination := p.Args["destination"].(string)
					sortBy := p.Args["sortBy"].(string)
					return deps.Search.SortedTrips(p.Context, origin, destination, sortBy)
				},
			},
			"savedTrips": &graphql.Field{
				Type:        graphql.NewList(savedTripType),
				Description: "List all saved trips",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.SavedTrips.List(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
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
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
