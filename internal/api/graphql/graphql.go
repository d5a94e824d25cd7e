// Package graphql serves a read-only GraphQL view of the caller's ledger.
package graphql

import (
	_ "embed"
	"net/http"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/youridegraef/qash-backend-sub000/internal/api"
	"github.com/youridegraef/qash-backend-sub000/internal/middleware"
	"github.com/youridegraef/qash-backend-sub000/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// NewHandler returns the bearer-authenticated GraphQL endpoint.
func NewHandler(svc *service.Services, tokens api.Tokens) http.Handler {
	schema := gql.MustParseSchema(schemaSDL, &Resolver{svc: svc},
		gql.MaxDepth(8),
	)
	return middleware.RequireBearer(tokens.Manager)(&relay.Handler{Schema: schema})
}

// resolverError exposes a service error with a machine-readable code in
// the GraphQL error extensions.
type resolverError struct {
	err error
}

func (e resolverError) Error() string { return api.Message(e.err) }

func (e resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": api.Code(e.err)}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return resolverError{err: err}
}
