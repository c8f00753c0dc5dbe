package graph

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"
)

// NewHandler serves queries and mutations over HTTP POST and upgrades
// websocket requests for subscriptions.
func NewHandler(schema *graphql.Schema) http.Handler {
	return graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})
}
