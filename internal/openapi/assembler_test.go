// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlefisher666/swagger-docgen/internal/config"
	"github.com/littlefisher666/swagger-docgen/internal/doccomment"
	"github.com/littlefisher666/swagger-docgen/internal/extension"
	"github.com/littlefisher666/swagger-docgen/internal/reader"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Info.Title = "Petstore"
	cfg.Info.Version = "1.0.0"
	return cfg
}

func storeDecls() []types.TypeDecl {
	return []types.TypeDecl{
		{
			Name: "com.acme.store.OrderController",
			Markers: types.TypeMarkers{
				Controller: true,
				Api:        &types.ApiMarker{Tags: []string{"store"}},
				Mapping:    &types.Mapping{Paths: []string{"/api/orders"}},
			},
			Methods: []types.MethodDecl{
				{
					Name:    "place",
					Returns: "com.acme.store.Order",
					Mapping: &types.Mapping{Methods: []string{"POST"}},
					Params: []types.ParamDecl{
						{Name: "order", Type: "com.acme.store.Order", Markers: []types.ParamMarker{{Kind: types.MarkerBody}}},
					},
				},
				{
					Name:    "find",
					Returns: "com.acme.store.Order",
					Mapping: &types.Mapping{Paths: []string{"{id}"}, Methods: []string{"GET"}},
					Params: []types.ParamDecl{
						{Name: "id", Type: "long", Markers: []types.ParamMarker{{Kind: types.MarkerPath}}},
					},
				},
			},
		},
		{
			Name: "com.acme.store.PetController",
			Markers: types.TypeMarkers{
				Controller: true,
				Api:        &types.ApiMarker{Tags: []string{"Pets"}},
				Mapping:    &types.Mapping{Paths: []string{"/api/pets"}},
			},
			Methods: []types.MethodDecl{
				{
					Name:    "search",
					Returns: "List<com.acme.store.Pet>",
					Mapping: &types.Mapping{Methods: []string{"GET"}},
					Params: []types.ParamDecl{
						{Name: "node", Type: "com.acme.store.Node", Markers: []types.ParamMarker{{Kind: types.MarkerModel}}},
					},
				},
			},
		},
		{
			Name: "com.acme.store.Order",
			Fields: []types.FieldDecl{
				{Name: "id", Type: "long"},
				{Name: "pet", Type: "com.acme.store.Pet"},
			},
		},
		{Name: "com.acme.store.Pet", Fields: []types.FieldDecl{{Name: "name", Type: "String"}}},
		{
			Name: "com.acme.store.Node",
			Fields: []types.FieldDecl{
				{Name: "name", Type: "String"},
				{Name: "parent", Type: "com.acme.store.Node"},
			},
		},
		{
			Name: "com.acme.store.ApiDefinition",
			Markers: types.TypeMarkers{Definition: &types.DefinitionMarker{
				Host: "petstore.example.com",
				Info: &types.Info{Title: "Ignored", Description: "From the definition marker"},
			}},
		},
	}
}

func assemble(t *testing.T, cfg *config.Config, decls []types.TypeDecl) *types.Document {
	t.Helper()
	doc, err := Assemble(context.Background(), decls, Options{Config: cfg})
	require.NoError(t, err)
	return doc
}

func TestAssemble(t *testing.T) {
	cfg := testConfig()
	cfg.BasePath = "/api"
	cfg.Schemes = []string{"HTTPS"}

	doc := assemble(t, cfg, storeDecls())

	assert.Equal(t, types.SwaggerVersion, doc.Swagger)
	assert.Equal(t, "Petstore", doc.Info.Title)
	assert.Equal(t, "From the definition marker", doc.Info.Description)
	assert.Equal(t, "petstore.example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)

	assert.Equal(t, []string{"/api/orders", "/api/orders/{id}", "/api/pets"}, doc.Paths.Keys())
	assert.Equal(t, []string{"Order", "Pet"}, doc.Definitions.Keys())
	require.Len(t, doc.Tags, 2)
	assert.Equal(t, "Pets", doc.Tags[0].Name)
	assert.Equal(t, "store", doc.Tags[1].Name)
}

func TestAssemble_RemoveBasePath(t *testing.T) {
	cfg := testConfig()
	cfg.BasePath = "/api"
	cfg.RemoveBasePathFromEndpoints = true

	doc := assemble(t, cfg, storeDecls())

	assert.Equal(t, "/api", doc.BasePath)
	assert.Equal(t, []string{"/orders", "/orders/{id}", "/pets"}, doc.Paths.Keys())
}

func TestAssemble_CompositeParameterCycleTerminates(t *testing.T) {
	doc := assemble(t, testConfig(), storeDecls())

	pets, ok := doc.Paths.Get("/api/pets")
	require.True(t, ok)
	require.Len(t, pets.Get.Parameters, 1)
	assert.Equal(t, "name", pets.Get.Parameters[0].Name)
	assert.Equal(t, types.InQuery, pets.Get.Parameters[0].In)
}

func TestAssemble_OrderIndependent(t *testing.T) {
	decls := storeDecls()
	reversed := make([]types.TypeDecl, len(decls))
	for i, d := range decls {
		reversed[len(decls)-1-i] = d
	}

	a, err := json.Marshal(assemble(t, testConfig(), decls))
	require.NoError(t, err)
	b, err := json.Marshal(assemble(t, testConfig(), reversed))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestAssemble_Idempotent(t *testing.T) {
	doc := assemble(t, testConfig(), storeDecls())
	first, err := json.Marshal(doc)
	require.NoError(t, err)

	Canonicalize(doc)
	second, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestAssemble_DocCommentFallback(t *testing.T) {
	decls := []types.TypeDecl{
		{
			Name: "com.acme.BaseController",
			Methods: []types.MethodDecl{{
				Name:    "foo",
				Mapping: &types.Mapping{Paths: []string{"/foo"}, Methods: []string{"GET"}},
			}},
		},
		{
			Name:       "com.acme.FooController",
			Superclass: "com.acme.BaseController",
			Markers:    types.TypeMarkers{Controller: true},
			Methods: []types.MethodDecl{{
				Name:    "foo",
				Mapping: &types.Mapping{Paths: []string{"/foo"}, Methods: []string{"GET"}},
			}},
		},
	}
	store := doccomment.NewStore()
	store.SetMember("com.acme.BaseController", "foo", "Returns foo.")

	cfg := testConfig()
	cfg.Docs.Enabled = true
	cfg.SkipInheritingTypes = true

	doc, err := Assemble(context.Background(), decls, Options{Config: cfg, Docs: store})
	require.NoError(t, err)

	foo, ok := doc.Paths.Get("/foo")
	require.True(t, ok)
	assert.Equal(t, "Returns foo.", foo.Get.Summary)

	// disabled docs leave the default summary
	cfg.Docs.Enabled = false
	doc, err = Assemble(context.Background(), decls, Options{Config: cfg, Docs: store})
	require.NoError(t, err)
	foo, _ = doc.Paths.Get("/foo")
	assert.Equal(t, "FooController.foo", foo.Get.Summary)
}

func TestAssemble_SecurityDefinitions(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "security.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"petstore_auth": {"type": "oauth2", "flow": "implicit", "authorizationUrl": "https://example.com/auth"},
		"bogus": {"type": "kerberos"}
	}`), 0o644))

	cfg := testConfig()
	cfg.SecurityDefinitions = []config.SecurityDefinitionConfig{{Name: "api_key", Type: "apiKey", In: "header"}}
	cfg.SecurityDefinitionFile = file

	doc := assemble(t, cfg, nil)

	assert.Equal(t, []string{"api_key", "petstore_auth"}, doc.SecurityDefinitions.Keys())
	key, _ := doc.SecurityDefinitions.Get("api_key")
	assert.Equal(t, "api_key", key.Name)
}

func TestAssemble_Decorators(t *testing.T) {
	cfg := testConfig()
	cfg.Extensions.Decorators = []string{"source-location"}

	doc := assemble(t, cfg, storeDecls())

	orders, _ := doc.Paths.Get("/api/orders")
	assert.Equal(t, "com.acme.store.OrderController#place", orders.Post.Extensions["x-source"])
}

func TestAssemble_Errors(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		_, err := Assemble(context.Background(), nil, Options{})
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Assemble(context.Background(), storeDecls(), Options{Config: config.Default()})
		var verrs config.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 2)
	})

	t.Run("unknown extension", func(t *testing.T) {
		cfg := testConfig()
		cfg.Extensions.Parameters = []string{"nope"}
		_, err := Assemble(context.Background(), storeDecls(), Options{Config: cfg, Extensions: extension.Default()})
		assert.ErrorIs(t, err, extension.ErrUnknownExtension)
	})

	t.Run("malformed path", func(t *testing.T) {
		decls := []types.TypeDecl{{
			Name:    "com.acme.Broken",
			Markers: types.TypeMarkers{Controller: true},
			Methods: []types.MethodDecl{{Name: "get", Mapping: &types.Mapping{Paths: []string{"/items/{id"}, Methods: []string{"GET"}}}},
		}}
		_, err := Assemble(context.Background(), decls, Options{Config: testConfig()})
		assert.ErrorIs(t, err, reader.ErrMalformedPath)
		assert.Contains(t, err.Error(), "com.acme.Broken")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Assemble(ctx, storeDecls(), Options{Config: testConfig()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRemoveBasePath(t *testing.T) {
	doc := types.NewDocument()
	doc.Path("/api").Get = &types.Operation{Summary: "root"}
	doc.Path("/api/items").Get = &types.Operation{Summary: "list", Tags: []string{"a"}}
	doc.Path("/items").Get = &types.Operation{Tags: []string{"b"}}
	doc.Path("/items").Post = &types.Operation{Summary: "create"}
	doc.Path("/apiary").Get = &types.Operation{}

	RemoveBasePath(doc, "/api/")

	assert.Equal(t, []string{"/", "/items", "/apiary"}, doc.Paths.Keys())

	items, _ := doc.Paths.Get("/items")
	assert.Equal(t, "list", items.Get.Summary)
	assert.Equal(t, []string{"a", "b"}, items.Get.Tags)
	require.NotNil(t, items.Post)
}

func TestRemoveBasePath_EmptyBase(t *testing.T) {
	doc := types.NewDocument()
	doc.Path("/items").Get = &types.Operation{}

	RemoveBasePath(doc, "/")

	assert.Equal(t, []string{"/items"}, doc.Paths.Keys())
}
