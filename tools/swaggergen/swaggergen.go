// Command swaggergen generates OpenAPI 3.0 specification files (JSON and YAML)
// for the Movie Hub API and writes them to the api/ directory.
//
// Usage:
//
//	go run ./tools/swaggergen
//
// # For Contributors
//
// When you change a route in internal/routes, update this file to match:
//
//  1. Endpoints: Edit buildPaths() to add/modify path items and operations
//  2. Schemas: Edit buildSchemas() to add/modify request/response types
//  3. Regenerate: Run `go run ./tools/swaggergen` from the project root
//  4. Verify: Check api/swagger.yaml and api/swagger.json for correctness
//
// Helper functions:
//   - errContent(): standard error response content
//   - jsonContent(ref): response content for a component schema
//   - movieIDParam(): the {movieID} path parameter definition
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Lightweight OpenAPI 3.0 types
// ---------------------------------------------------------------------------

type OpenAPI struct {
	OpenAPI    string               `json:"openapi"              yaml:"openapi"`
	Info       Info                 `json:"info"                 yaml:"info"`
	Paths      map[string]*PathItem `json:"paths"                yaml:"paths"`
	Components Components           `json:"components"           yaml:"components"`
}

type Info struct {
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version"     yaml:"version"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty"    yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"   yaml:"post,omitempty"`
	Patch  *Operation `json:"patch,omitempty"  yaml:"patch,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

type Operation struct {
	Tags        []string              `json:"tags"                  yaml:"tags"`
	Summary     string                `json:"summary"               yaml:"summary"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                `json:"operationId"           yaml:"operationId"`
	Security    []map[string][]string `json:"security,omitempty"    yaml:"security,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"  yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response   `json:"responses"             yaml:"responses"`
}

type Parameter struct {
	Name        string `json:"name"        yaml:"name"`
	In          string `json:"in"          yaml:"in"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required"    yaml:"required"`
	Schema      Schema `json:"schema"      yaml:"schema"`
}

type RequestBody struct {
	Required    bool                 `json:"required"              yaml:"required"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]MediaType `json:"content"               yaml:"content"`
}

type MediaType struct {
	Schema Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description"       yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type Schema struct {
	Type                 string            `json:"type,omitempty"                 yaml:"type,omitempty"`
	Format               string            `json:"format,omitempty"               yaml:"format,omitempty"`
	Description          string            `json:"description,omitempty"          yaml:"description,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty"           yaml:"properties,omitempty"`
	Items                *Schema           `json:"items,omitempty"                yaml:"items,omitempty"`
	Required             []string          `json:"required,omitempty"             yaml:"required,omitempty"`
	Enum                 []string          `json:"enum,omitempty"                 yaml:"enum,omitempty"`
	Ref                  string            `json:"$ref,omitempty"                 yaml:"$ref,omitempty"`
	AdditionalProperties *Schema           `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	OneOf                []Schema          `json:"oneOf,omitempty"                yaml:"oneOf,omitempty"`
	Example              any               `json:"example,omitempty"              yaml:"example,omitempty"`
}

type Components struct {
	Schemas         map[string]Schema         `json:"schemas"         yaml:"schemas"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes" yaml:"securitySchemes"`
}

type SecurityScheme struct {
	Type         string `json:"type"         yaml:"type"`
	Scheme       string `json:"scheme"       yaml:"scheme"`
	BearerFormat string `json:"bearerFormat" yaml:"bearerFormat"`
	Description  string `json:"description"  yaml:"description"`
}

// ---------------------------------------------------------------------------
// Spec builder
// ---------------------------------------------------------------------------

func buildSpec() OpenAPI {
	bearerAuth := []map[string][]string{{"BearerAuth": {}}}

	return OpenAPI{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "Movie Hub API",
			Description: "Movie catalog and per-user favorites for the device's signed-in user.",
			Version:     "1.0.0",
		},
		Paths: buildPaths(bearerAuth),
		Components: Components{
			Schemas:         buildSchemas(),
			SecuritySchemes: buildSecuritySchemes(),
		},
	}
}

func buildPaths(bearerAuth []map[string][]string) map[string]*PathItem {
	unauthorized := Response{Description: "Unauthorized - missing or invalid JWT", Content: errContent()}
	forbidden := Response{Description: "Token subject is not the active user", Content: errContent()}
	internalErr := Response{Description: "Internal server error", Content: errContent()}
	badID := Response{Description: "Blank or oversized movie ID", Content: errContent()}

	return map[string]*PathItem{
		"/api/v1/session": {
			Get: &Operation{
				Tags:        []string{"Session"},
				Summary:     "Get the active session",
				OperationID: "getSession",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "Active user and favorites state", Content: jsonContent("Session")},
					"401": unauthorized,
				},
			},
			Post: &Operation{
				Tags:        []string{"Session"},
				Summary:     "Sign in",
				Description: "Makes the token subject the active user. Their favorites start loading in the background.",
				OperationID: "signIn",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "User signed in", Content: jsonContent("Session")},
					"401": unauthorized,
				},
			},
			Delete: &Operation{
				Tags:        []string{"Session"},
				Summary:     "Sign out",
				Description: "Clears the active user. Their favorites are dropped from memory but stay in storage.",
				OperationID: "signOut",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "User signed out", Content: jsonContent("Session")},
					"401": unauthorized,
					"403": forbidden,
				},
			},
		},
		"/api/v1/movies": {
			Get: &Operation{
				Tags:        []string{"Movies"},
				Summary:     "List or search movies",
				Description: "Without q, returns the whole catalog newest first. With q, keeps movies where q is a case-insensitive substring of any field.",
				OperationID: "listMovies",
				Security:    bearerAuth,
				Parameters: []Parameter{{
					Name:        "q",
					In:          "query",
					Description: "Search text",
					Schema:      Schema{Type: "string"},
				}},
				Responses: map[string]Response{
					"200": {Description: "Matching movies", Content: jsonArrayContent("Movie")},
					"401": unauthorized,
					"500": internalErr,
				},
			},
			Post: &Operation{
				Tags:        []string{"Movies"},
				Summary:     "Create a movie",
				Description: "Adds a movie owned by the token subject.",
				OperationID: "createMovie",
				Security:    bearerAuth,
				RequestBody: &RequestBody{
					Required: true,
					Content:  jsonContent("MovieRequest"),
				},
				Responses: map[string]Response{
					"201": {Description: "Movie created", Content: jsonContent("Movie")},
					"400": {Description: "Invalid request body or validation error", Content: errContent()},
					"401": unauthorized,
					"409": {Description: "Movie already exists", Content: errContent()},
					"415": {Description: "Content-Type is not application/json", Content: errContent()},
					"500": internalErr,
				},
			},
		},
		"/api/v1/movies/{movieID}": {
			Get: &Operation{
				Tags:        []string{"Movies"},
				Summary:     "Get a movie",
				OperationID: "getMovie",
				Security:    bearerAuth,
				Parameters:  []Parameter{movieIDParam()},
				Responses: map[string]Response{
					"200": {Description: "The movie", Content: jsonContent("Movie")},
					"400": badID,
					"401": unauthorized,
					"404": {Description: "Movie not found", Content: errContent()},
					"500": internalErr,
				},
			},
			Patch: &Operation{
				Tags:        []string{"Movies"},
				Summary:     "Update a movie",
				Description: "Changes the fields present in the body. Required fields cannot be blanked.",
				OperationID: "updateMovie",
				Security:    bearerAuth,
				Parameters:  []Parameter{movieIDParam()},
				RequestBody: &RequestBody{
					Required: true,
					Content:  jsonContent("MovieUpdateRequest"),
				},
				Responses: map[string]Response{
					"200": {Description: "Movie updated", Content: jsonContent("SuccessMessage")},
					"400": {Description: "Invalid request body or validation error", Content: errContent()},
					"401": unauthorized,
					"404": {Description: "Movie not found", Content: errContent()},
					"500": internalErr,
				},
			},
			Delete: &Operation{
				Tags:        []string{"Movies"},
				Summary:     "Delete a movie",
				OperationID: "deleteMovie",
				Security:    bearerAuth,
				Parameters:  []Parameter{movieIDParam()},
				Responses: map[string]Response{
					"200": {Description: "Movie deleted", Content: jsonContent("SuccessMessage")},
					"400": badID,
					"401": unauthorized,
					"404": {Description: "Movie not found", Content: errContent()},
					"500": internalErr,
				},
			},
		},
		"/api/v1/favorites": {
			Get: &Operation{
				Tags:        []string{"Favorites"},
				Summary:     "Get the favorite set",
				Description: "Empty while nobody is signed in or the saved set is still loading.",
				OperationID: "getFavorites",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "Favorite movie IDs", Content: jsonContent("FavoriteSet")},
					"401": unauthorized,
					"403": forbidden,
				},
			},
			Delete: &Operation{
				Tags:        []string{"Favorites"},
				Summary:     "Clear favorites",
				Description: "Deletes the saved set, then empties memory. If storage fails the set is returned unchanged.",
				OperationID: "clearFavorites",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "The set after the clear", Content: jsonContent("FavoriteSet")},
					"401": unauthorized,
					"403": forbidden,
				},
			},
		},
		"/api/v1/favorites/movies": {
			Get: &Operation{
				Tags:        []string{"Favorites"},
				Summary:     "List favorite movies",
				Description: "Catalog entries in the favorite set, newest first. Deleted movies are skipped.",
				OperationID: "getFavoriteMovies",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "Favorite movies", Content: jsonArrayContent("Movie")},
					"401": unauthorized,
					"403": forbidden,
					"500": internalErr,
				},
			},
		},
		"/api/v1/favorites/{movieID}": {
			Get: &Operation{
				Tags:        []string{"Favorites"},
				Summary:     "Check a favorite",
				OperationID: "isFavorite",
				Security:    bearerAuth,
				Parameters:  []Parameter{movieIDParam()},
				Responses: map[string]Response{
					"200": {Description: "Membership", Content: jsonContent("FavoriteStatus")},
					"400": badID,
					"401": unauthorized,
					"403": forbidden,
				},
			},
		},
		"/api/v1/favorites/{movieID}/toggle": {
			Post: &Operation{
				Tags:        []string{"Favorites"},
				Summary:     "Toggle a favorite",
				Description: "Adds the movie if absent and removes it otherwise. The write to storage happens in the background. Ignored until the saved set has loaded.",
				OperationID: "toggleFavorite",
				Security:    bearerAuth,
				Parameters:  []Parameter{movieIDParam()},
				Responses: map[string]Response{
					"200": {Description: "Membership after the toggle", Content: jsonContent("FavoriteStatus")},
					"400": badID,
					"401": unauthorized,
					"403": forbidden,
				},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func movieIDParam() Parameter {
	return Parameter{
		Name:        "movieID",
		In:          "path",
		Description: "Unique identifier of the movie",
		Required:    true,
		Schema:      Schema{Type: "string"},
	}
}

func schemaRef(name string) string {
	return "#/components/schemas/" + name
}

func jsonContent(name string) map[string]MediaType {
	return map[string]MediaType{
		"application/json": {Schema: Schema{Ref: schemaRef(name)}},
	}
}

func jsonArrayContent(name string) map[string]MediaType {
	return map[string]MediaType{
		"application/json": {Schema: Schema{Type: "array", Items: &Schema{Ref: schemaRef(name)}}},
	}
}

func errContent() map[string]MediaType {
	return jsonContent("ErrorResponse")
}

func buildSecuritySchemes() map[string]SecurityScheme {
	return map[string]SecurityScheme{
		"BearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "JWT token with a 'sub' claim identifying the user.",
		},
	}
}

func buildSchemas() map[string]Schema {
	favoriteState := []string{"idle", "loading", "ready"}

	return map[string]Schema{
		"ErrorResponse": {
			Type: "object",
			Properties: map[string]Schema{
				"error": {Type: "string", Description: "Human-readable error message"},
			},
			Required: []string{"error"},
		},
		"SuccessMessage": {
			Type: "object",
			Properties: map[string]Schema{
				"message": {Type: "string", Description: "Success message"},
			},
			Required: []string{"message"},
		},
		"Movie": {
			Type:        "object",
			Description: "A catalog entry.",
			Properties: map[string]Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"director":    {Type: "string"},
				"genres":      {Type: "string"},
				"actors":      {Type: "string"},
				"released":    {Type: "string"},
				"description": {Type: "string"},
				"imdb_rating": {Type: "number", Format: "double"},
				"image_url":   {Type: "string", Format: "uri"},
				"user_id":     {Type: "string", Description: "Owner of the entry"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "name", "director", "description", "imdb_rating", "user_id", "created_at"},
		},
		"MovieRequest": {
			Type:        "object",
			Description: "Payload for a new movie. Strings are trimmed before validation.",
			Properties: map[string]Schema{
				"name":        {Type: "string", Description: "max 255 chars"},
				"director":    {Type: "string", Description: "max 255 chars"},
				"genres":      {Type: "string", Description: "max 255 chars"},
				"actors":      {Type: "string", Description: "max 255 chars"},
				"released":    {Type: "string", Description: "max 255 chars"},
				"description": {Type: "string", Description: "max 2000 chars"},
				"imdb_rating": {Type: "number", Format: "double", Description: "0 to 10"},
				"image_url":   {Type: "string", Format: "uri", Description: "Absolute http or https URL"},
			},
			Required: []string{"name", "director", "description"},
		},
		"MovieUpdateRequest": {
			Type:        "object",
			Description: "Partial update. Absent fields are left unchanged.",
			Properties: map[string]Schema{
				"name":        {Type: "string"},
				"director":    {Type: "string"},
				"genres":      {Type: "string"},
				"actors":      {Type: "string"},
				"released":    {Type: "string"},
				"description": {Type: "string"},
				"imdb_rating": {Type: "number", Format: "double"},
				"image_url":   {Type: "string", Format: "uri"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]Schema{
				"user_id":         {Type: "string"},
				"active":          {Type: "boolean"},
				"favorites_state": {Type: "string", Enum: favoriteState},
			},
			Required: []string{"active", "favorites_state"},
		},
		"FavoriteSet": {
			Type: "object",
			Properties: map[string]Schema{
				"user_id":   {Type: "string"},
				"movie_ids": {Type: "array", Items: &Schema{Type: "string"}},
				"state":     {Type: "string", Enum: favoriteState},
			},
			Required: []string{"movie_ids", "state"},
		},
		"FavoriteStatus": {
			Type: "object",
			Properties: map[string]Schema{
				"movie_id": {Type: "string"},
				"favorite": {Type: "boolean"},
				"state":    {Type: "string", Enum: favoriteState},
			},
			Required: []string{"movie_id", "favorite", "state"},
		},
	}
}

// ---------------------------------------------------------------------------
// File writers
// ---------------------------------------------------------------------------

func writeJSON(spec OpenAPI, path string) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func writeYAML(spec OpenAPI, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func main() {
	_, src, _, _ := runtime.Caller(0)
	outDir := filepath.Join(filepath.Join(filepath.Dir(src), "..", ".."), "api")

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create api/ directory: %v\n", err)
		os.Exit(1)
	}

	spec := buildSpec()

	jsonPath := filepath.Join(outDir, "swagger.json")
	if err := writeJSON(spec, jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
		os.Exit(1)
	}

	yamlPath := filepath.Join(outDir, "swagger.yaml")
	if err := writeYAML(spec, yamlPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing YAML: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Swagger specs generated:\n  %s\n  %s\n", jsonPath, yamlPath)
}
