package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/labstack/echo/v4"

	apperrors "github.com/jxnhiro/blog-api/internal/errors"
)

// GraphQLHandler executes GraphQL requests against the schema.
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQL handler.
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// GraphQLRequest is the standard POST body of a GraphQL request.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handle runs the query. Resolver failures are carried in the errors array
// as {message, code, data}; the HTTP status stays 200.
func (h *GraphQLHandler) Handle(c echo.Context) error {
	var req GraphQLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})

	response := echo.Map{"data": result.Data}
	if len(result.Errors) > 0 {
		response["errors"] = formatErrors(result.Errors)
	}

	return c.JSON(http.StatusOK, response)
}

// formatErrors renders resolver errors as {message, code, data}, unwrapping
// the original error the executor buried inside its formatted wrapper.
func formatErrors(errs []gqlerrors.FormattedError) []echo.Map {
	formatted := make([]echo.Map, 0, len(errs))
	for _, ferr := range errs {
		original := unwrapOriginal(ferr)
		if original == nil {
			formatted = append(formatted, echo.Map{
				"message": ferr.Message,
				"code":    http.StatusInternalServerError,
				"data":    []string{},
			})
			continue
		}

		var appErr *apperrors.Error
		if !stderrors.As(original, &appErr) {
			formatted = append(formatted, echo.Map{
				"message": original.Error(),
				"code":    http.StatusInternalServerError,
				"data":    []string{},
			})
			continue
		}

		details := appErr.Details
		if details == nil {
			details = []string{}
		}
		formatted = append(formatted, echo.Map{
			"message": appErr.Message,
			"code":    appErr.StatusCode,
			"data":    details,
		})
	}
	return formatted
}

func unwrapOriginal(err error) error {
	for err != nil {
		switch e := err.(type) {
		case gqlerrors.FormattedError:
			err = e.OriginalError()
		case *gqlerrors.Error:
			err = e.OriginalError
		default:
			return err
		}
	}
	return nil
}
