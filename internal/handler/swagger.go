package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/leandrochavesf/gofinances/ledger-backend/docs"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the OpenAPI 3.0 document served at /api/v1/openapi.json
type OpenAPI3Spec struct {
	OpenAPI    string                          `json:"openapi"`
	Info       map[string]interface{}          `json:"info"`
	Servers    []Server                        `json:"servers"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components map[string]interface{}          `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Operation is one OpenAPI 3.0 operation
type Operation struct {
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// Parameter is a path or query parameter
type Parameter struct {
	Name        string                 `json:"name"`
	In          string                 `json:"in"`
	Description string                 `json:"description,omitempty"`
	Required    bool                   `json:"required,omitempty"`
	Schema      map[string]interface{} `json:"schema"`
}

// RequestBody carries the JSON body or multipart form of an operation
type RequestBody struct {
	Description string               `json:"description,omitempty"`
	Required    bool                 `json:"required,omitempty"`
	Content     map[string]MediaType `json:"content"`
}

// Response is an OpenAPI 3.0 response
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType wraps the schema for one content type
type MediaType struct {
	Schema interface{} `json:"schema"`
}

// swagger2Doc is the subset of the generated Swagger 2.0 document the ledger uses
type swagger2Doc struct {
	Info        map[string]interface{}                  `json:"info"`
	BasePath    string                                  `json:"basePath"`
	Paths       map[string]map[string]swagger2Operation `json:"paths"`
	Definitions map[string]interface{}                  `json:"definitions"`
}

type swagger2Operation struct {
	Summary     string                      `json:"summary"`
	Description string                      `json:"description"`
	Tags        []string                    `json:"tags"`
	Consumes    []string                    `json:"consumes"`
	Produces    []string                    `json:"produces"`
	Parameters  []swagger2Parameter         `json:"parameters"`
	Responses   map[string]swagger2Response `json:"responses"`
}

type swagger2Parameter struct {
	Name        string      `json:"name"`
	In          string      `json:"in"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Type        string      `json:"type"`
	Format      string      `json:"format"`
	Schema      interface{} `json:"schema"`
}

type swagger2Response struct {
	Description string      `json:"description"`
	Schema      interface{} `json:"schema"`
}

// ServeOpenAPI3Spec serves the swagger spec converted to OpenAPI 3.0.
// The server URL is derived from the request so the document works behind any host.
func ServeOpenAPI3Spec(c echo.Context) error {
	openapi3, err := buildOpenAPI3Spec(c.Scheme() + "://" + c.Request().Host)
	if err != nil {
		return NewInternalError(c, "Failed to build API documentation")
	}
	return c.JSON(http.StatusOK, openapi3)
}

func buildOpenAPI3Spec(origin string) (*OpenAPI3Spec, error) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return nil, fmt.Errorf("read swagger doc: %w", err)
	}

	var src swagger2Doc
	if err := json.Unmarshal([]byte(doc), &src); err != nil {
		return nil, fmt.Errorf("parse swagger doc: %w", err)
	}

	paths := make(map[string]map[string]Operation, len(src.Paths))
	for path, methods := range src.Paths {
		paths[path] = make(map[string]Operation, len(methods))
		for method, op := range methods {
			paths[path][method] = convertOperation(op)
		}
	}

	return &OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    src.Info,
		Servers: []Server{{URL: origin + src.BasePath, Description: "Current host"}},
		Paths:   paths,
		Components: map[string]interface{}{
			"schemas": rewriteRefs(src.Definitions),
		},
	}, nil
}

// convertOperation moves body and formData parameters into a request body and
// wraps response schemas in the operation's content type
func convertOperation(op swagger2Operation) Operation {
	out := Operation{
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Responses:   make(map[string]Response, len(op.Responses)),
	}

	var form map[string]interface{}
	var formRequired []string
	for _, p := range op.Parameters {
		switch p.In {
		case "body":
			out.RequestBody = &RequestBody{
				Description: p.Description,
				Required:    p.Required,
				Content:     map[string]MediaType{firstOr(op.Consumes, echo.MIMEApplicationJSON): {Schema: rewriteRefs(p.Schema)}},
			}
		case "formData":
			if form == nil {
				form = make(map[string]interface{})
			}
			form[p.Name] = formFieldSchema(p)
			if p.Required {
				formRequired = append(formRequired, p.Name)
			}
		default:
			out.Parameters = append(out.Parameters, Parameter{
				Name:        p.Name,
				In:          p.In,
				Description: p.Description,
				Required:    p.Required,
				Schema:      scalarSchema(p.Type, p.Format),
			})
		}
	}
	if form != nil {
		schema := map[string]interface{}{"type": "object", "properties": form}
		if len(formRequired) > 0 {
			schema["required"] = formRequired
		}
		out.RequestBody = &RequestBody{
			Required: len(formRequired) > 0,
			Content:  map[string]MediaType{echo.MIMEMultipartForm: {Schema: schema}},
		}
	}

	contentType := firstOr(op.Produces, echo.MIMEApplicationJSON)
	for status, r := range op.Responses {
		resp := Response{Description: r.Description}
		if r.Schema != nil {
			resp.Content = map[string]MediaType{contentType: {Schema: rewriteRefs(r.Schema)}}
		}
		out.Responses[status] = resp
	}
	return out
}

// formFieldSchema maps a formData field; Swagger's "file" type becomes a binary string
func formFieldSchema(p swagger2Parameter) map[string]interface{} {
	if p.Type == "file" {
		return map[string]interface{}{"type": "string", "format": "binary"}
	}
	return scalarSchema(p.Type, p.Format)
}

func scalarSchema(typ, format string) map[string]interface{} {
	schema := map[string]interface{}{"type": typ}
	if format != "" {
		schema["format"] = format
	}
	return schema
}

// rewriteRefs points Swagger 2.0 definition references at OpenAPI 3.0 component schemas
func rewriteRefs(node interface{}) interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return node
	}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
