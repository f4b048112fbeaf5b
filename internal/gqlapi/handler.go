package gqlapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Request is the standard GraphQL over HTTP envelope.
type Request struct {
	Query         string                 `json:"query" form:"query"`
	Variables     map[string]interface{} `json:"variables" form:"-"`
	OperationName string                 `json:"operationName" form:"operationName"`
}

// Handler executes GraphQL requests against schema. GET requests carry the query string only.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		var err error
		if c.Request.Method == http.MethodGet {
			err = c.ShouldBindQuery(&req)
		} else {
			err = c.ShouldBindJSON(&req)
		}
		if err != nil || req.Query == "" {
			msg := "query is required"
			if err != nil {
				msg = "invalid GraphQL request: " + err.Error()
			}
			c.JSON(http.StatusBadRequest, &graphql.Result{
				Errors: []gqlerrors.FormattedError{{Message: msg}},
			})
			return
		}
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request.Context(),
		})
		c.JSON(http.StatusOK, result)
	}
}

// NewRouterWithGinEngine mounts the GraphQL endpoint on router.
func NewRouterWithGinEngine(router *gin.Engine, schema graphql.Schema) *gin.Engine {
	h := Handler(schema)
	router.POST("/graphql", h)
	router.GET("/graphql", h)
	return router
}
