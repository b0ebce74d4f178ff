// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package reader

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/doccomment"
	"github.com/littlefisher666/swagger-docgen/internal/extension"
	"github.com/littlefisher666/swagger-docgen/internal/params"
	"github.com/littlefisher666/swagger-docgen/internal/schema"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

func petstore() []types.TypeDecl {
	return []types.TypeDecl{
		{
			Name: "com.acme.pet.PetController",
			Markers: types.TypeMarkers{
				Controller: true,
				Api:        &types.ApiMarker{Tags: []string{"pets"}, Description: "Pet operations"},
				Mapping:    &types.Mapping{Paths: []string{"/pets/"}, Produces: []string{"application/json"}},
			},
			Methods: []types.MethodDecl{
				{
					Name:    "list",
					Returns: "List<com.acme.pet.Pet>",
					Mapping: &types.Mapping{Methods: []string{"GET"}},
				},
				{
					Name:           "create",
					Returns:        "ResponseEntity<com.acme.pet.Pet>",
					Mapping:        &types.Mapping{Methods: []string{"POST"}, Consumes: []string{"application/xml"}},
					ResponseStatus: &types.StatusMarker{Code: 201},
					Params: []types.ParamDecl{
						{Name: "pet", Type: "com.acme.pet.Pet", Markers: []types.ParamMarker{{Kind: types.MarkerBody}}},
					},
				},
				{
					Name:    "get",
					Returns: "com.acme.pet.Pet",
					Mapping: &types.Mapping{Paths: []string{"{id:[0-9]+}"}, Methods: []string{"GET"}},
					Throws:  []string{"com.acme.pet.PetNotFoundException", "com.acme.pet.InvalidIdException"},
					Params: []types.ParamDecl{
						{Name: "id", Type: "long", Markers: []types.ParamMarker{{Kind: types.MarkerPath}}},
					},
					Responses: []types.ResponseMarker{
						{Code: 404, Message: "Not here"},
						{Code: 200, Message: "The pet"},
					},
				},
				{
					Name:      "remove",
					Mapping:   &types.Mapping{Paths: []string{"{id}"}, Methods: []string{"DELETE"}},
					Operation: &types.OperationMarker{Hidden: true},
				},
				{
					Name:    "any",
					Mapping: &types.Mapping{Paths: []string{"any"}},
				},
			},
		},
		{Name: "com.acme.pet.Pet", Fields: []types.FieldDecl{{Name: "name", Type: "String"}}},
		{Name: "com.acme.pet.PetNotFoundException", Superclass: "java.lang.RuntimeException"},
		{
			Name:    "com.acme.pet.InvalidIdException",
			Markers: types.TypeMarkers{ResponseStatus: &types.StatusMarker{Code: 400}},
		},
		{
			Name:    "com.acme.pet.ErrorAdvice",
			Markers: types.TypeMarkers{ControllerAdvice: true},
			Methods: []types.MethodDecl{{
				Name:             "notFound",
				ExceptionHandler: []string{"com.acme.pet.PetNotFoundException"},
				ResponseStatus:   &types.StatusMarker{Code: 404, Reason: "Pet not found"},
			}},
		},
	}
}

type fixture struct {
	reader   *Reader
	builder  *Builder
	registry *schema.Registry
}

func newFixture(decls []types.TypeDecl, opts Options, docs *doccomment.Store) *fixture {
	idx := descriptor.NewIndex(decls, nil)
	registry := schema.NewRegistry()
	schemas := schema.NewResolver(idx, registry, schema.Options{})
	paramResolver := params.NewResolver(schemas, idx, params.DefaultChain(), nil)

	var merger *doccomment.Merger
	if docs != nil {
		merger = doccomment.NewMerger(docs, idx)
	}
	builder := NewBuilder(idx, paramResolver, merger, NewExceptionTable(idx, nil), opts, nil)
	return &fixture{
		reader:   New(NewCollector(idx, false, nil), builder, nil),
		builder:  builder,
		registry: registry,
	}
}

func read(t *testing.T, decls []types.TypeDecl, opts Options) *types.Document {
	t.Helper()
	doc := types.NewDocument()
	require.NoError(t, newFixture(decls, opts, nil).reader.Read(context.Background(), doc))
	return doc
}

func TestReader_PathsAndVerbs(t *testing.T) {
	doc := read(t, petstore(), Options{})

	assert.Equal(t, []string{"/pets", "/pets/{id}"}, doc.Paths.Keys())

	pets, _ := doc.Paths.Get("/pets")
	require.NotNil(t, pets.Get)
	require.NotNil(t, pets.Post)

	byID, _ := doc.Paths.Get("/pets/{id}")
	require.NotNil(t, byID.Get)
	assert.Nil(t, byID.Delete, "hidden operations are skipped")

	assert.False(t, doc.Paths.Has("/pets/any"), "a mapping without verbs yields no operation")
}

func TestReader_ResponsePrecedence(t *testing.T) {
	doc := read(t, petstore(), Options{})
	byID, _ := doc.Paths.Get("/pets/{id}")
	op := byID.Get

	assert.ElementsMatch(t, []string{"404", "200", "400"}, op.Responses.Keys())

	notFound, _ := op.Responses.Get("404")
	assert.Equal(t, "Not here", notFound.Description, "explicit entries win over the exception table")

	ok, _ := op.Responses.Get("200")
	assert.Equal(t, "The pet", ok.Description)
	require.NotNil(t, ok.Schema, "explicit success entry carries the return schema")
	assert.Equal(t, "Pet", ok.Schema.RefName())

	invalid, _ := op.Responses.Get("400")
	assert.Equal(t, "Bad Request", invalid.Description)
}

func TestReader_NaturalResponses(t *testing.T) {
	doc := read(t, petstore(), Options{})
	pets, _ := doc.Paths.Get("/pets")

	list, ok := pets.Get.Responses.Get("200")
	require.True(t, ok)
	assert.Equal(t, DefaultResponseDescription, list.Description)
	require.True(t, list.Schema.IsArray())
	assert.Equal(t, "Pet", list.Schema.Items.RefName())

	// status marker sets the success code; the envelope is unwrapped
	assert.Equal(t, []string{"201"}, pets.Post.Responses.Keys())
	created, _ := pets.Post.Responses.Get("201")
	assert.Equal(t, "Pet", created.Schema.RefName())
}

func TestReader_OperationCodeOverridesStatusMarker(t *testing.T) {
	doc := read(t, []types.TypeDecl{
		{
			Name:    "com.acme.JobController",
			Markers: types.TypeMarkers{Controller: true},
			Methods: []types.MethodDecl{{
				Name:           "submit",
				Returns:        "com.acme.Job",
				Mapping:        &types.Mapping{Paths: []string{"/jobs"}, Methods: []string{"POST"}},
				Operation:      &types.OperationMarker{Code: 202},
				ResponseStatus: &types.StatusMarker{Code: 201, Reason: "Queued"},
			}},
		},
		{Name: "com.acme.Job", Fields: []types.FieldDecl{{Name: "id", Type: "long"}}},
	}, Options{})

	jobs, _ := doc.Paths.Get("/jobs")
	assert.ElementsMatch(t, []string{"202", "201"}, jobs.Post.Responses.Keys())

	accepted, _ := jobs.Post.Responses.Get("202")
	assert.Equal(t, "Job", accepted.Schema.RefName())
	queued, _ := jobs.Post.Responses.Get("201")
	assert.Equal(t, "Queued", queued.Description)
	assert.Nil(t, queued.Schema)
}

func TestReader_DefaultResponse(t *testing.T) {
	doc := read(t, []types.TypeDecl{{
		Name:    "com.acme.PingController",
		Markers: types.TypeMarkers{Controller: true},
		Methods: []types.MethodDecl{{Name: "ping", Returns: "void", Mapping: get("/ping")}},
	}}, Options{})

	ping, _ := doc.Paths.Get("/ping")
	assert.Equal(t, []string{"default"}, ping.Get.Responses.Keys())
	resp, _ := ping.Get.Responses.Get("default")
	assert.Equal(t, "successful operation", resp.Description)
}

func TestReader_EndpointReturnTypeNotModeled(t *testing.T) {
	f := newFixture([]types.TypeDecl{
		{
			Name:    "com.acme.Parent",
			Markers: types.TypeMarkers{Controller: true},
			Methods: []types.MethodDecl{{Name: "child", Returns: "com.acme.Child", Mapping: get("/child")}},
		},
		{Name: "com.acme.Child", Markers: types.TypeMarkers{Api: &types.ApiMarker{Value: "child"}}},
	}, Options{}, nil)
	doc := types.NewDocument()
	require.NoError(t, f.reader.Read(context.Background(), doc))

	child, _ := doc.Paths.Get("/child")
	assert.Equal(t, []string{"default"}, child.Get.Responses.Keys())
	assert.Equal(t, 0, f.registry.Count())
}

func TestReader_ParametersAndPatterns(t *testing.T) {
	doc := read(t, petstore(), Options{})

	byID, _ := doc.Paths.Get("/pets/{id}")
	require.Len(t, byID.Get.Parameters, 1)
	id := byID.Get.Parameters[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, types.InPath, id.In)
	assert.True(t, id.Required)
	assert.Equal(t, "[0-9]+", id.Pattern)

	pets, _ := doc.Paths.Get("/pets")
	require.Len(t, pets.Post.Parameters, 1)
	body := pets.Post.Parameters[0]
	assert.Equal(t, types.InBody, body.In)
	assert.Equal(t, "Pet", body.Schema.RefName())
}

func TestReader_ImplicitParams(t *testing.T) {
	doc := read(t, []types.TypeDecl{{
		Name:    "com.acme.SearchController",
		Markers: types.TypeMarkers{Controller: true},
		Methods: []types.MethodDecl{{
			Name:    "search",
			Mapping: get("/search"),
			ImplicitParams: []types.ImplicitParam{
				{Name: "q", In: "query", Required: true},
				{Name: "session", In: "cookie"},
			},
		}},
	}}, Options{})

	search, _ := doc.Paths.Get("/search")
	require.Len(t, search.Get.Parameters, 1)
	assert.Equal(t, "q", search.Get.Parameters[0].Name)
}

func TestReader_MediaTypesTagsAndSecurity(t *testing.T) {
	decls := petstore()
	decls[0].Markers.Api.Authorizations = []types.Authorization{{Value: "petstore_auth", Scopes: []string{"read:pets", ""}}}
	decls[0].Methods[1].Operation = &types.OperationMarker{
		Tags:           []string{"admin"},
		Authorizations: []types.Authorization{{Value: "api_key"}},
	}
	doc := read(t, decls, Options{})
	pets, _ := doc.Paths.Get("/pets")

	assert.Equal(t, []string{"application/json"}, pets.Get.Produces)
	assert.Empty(t, pets.Get.Consumes)
	assert.Equal(t, []string{"application/xml"}, pets.Post.Consumes)
	assert.Equal(t, []string{"application/json"}, pets.Post.Produces)

	assert.Equal(t, []string{"pets"}, pets.Get.Tags)
	assert.Equal(t, []string{"admin"}, pets.Post.Tags)
	require.Len(t, doc.Tags, 2)
	assert.Equal(t, types.Tag{Name: "pets", Description: "Pet operations"}, doc.Tags[0])
	assert.True(t, doc.HasTag("admin"))

	assert.Equal(t, []types.SecurityRequirement{{"petstore_auth": {"read:pets"}}}, pets.Get.Security)
	assert.Equal(t, []types.SecurityRequirement{{"api_key": {}}}, pets.Post.Security)
}

func TestReader_TagFromApiValue(t *testing.T) {
	doc := read(t, []types.TypeDecl{{
		Name:    "com.acme.StoreController",
		Markers: types.TypeMarkers{Api: &types.ApiMarker{Value: "/store"}},
		Methods: []types.MethodDecl{{Name: "inventory", Mapping: get("/store/inventory")}},
	}}, Options{})

	inv, _ := doc.Paths.Get("/store/inventory")
	assert.Equal(t, []string{"store"}, inv.Get.Tags)
}

func TestBuilder_OperationID(t *testing.T) {
	decls := petstore()
	ctrl := &decls[0]
	list := &ctrl.Methods[0]

	b := newFixture(decls, Options{}, nil).builder
	assert.Equal(t, "list", b.OperationID(ctrl, list, "get"))

	b = newFixture(decls, Options{OperationIDFormat: "{{packageName}}.{{ className }}_{{methodName}}_{{httpMethod}}"}, nil).builder
	assert.Equal(t, "com.acme.pet.PetController_list_GET", b.OperationID(ctrl, list, "get"))

	list.Operation = &types.OperationMarker{Nickname: "listPets"}
	assert.Equal(t, "listPets", b.OperationID(ctrl, list, "get"))
}

func TestReader_Summary(t *testing.T) {
	store := doccomment.NewStore()
	store.SetMember("com.acme.pet.PetController", "list", "Lists every pet.")
	decls := petstore()
	decls[0].Methods[2].Operation = &types.OperationMarker{Value: "Find pet by id"}

	f := newFixture(decls, Options{DocsEnabled: true}, store)
	doc := types.NewDocument()
	require.NoError(t, f.reader.Read(context.Background(), doc))

	pets, _ := doc.Paths.Get("/pets")
	assert.Equal(t, "Lists every pet.", pets.Get.Summary)
	assert.Equal(t, "PetController.create", pets.Post.Summary)
	byID, _ := doc.Paths.Get("/pets/{id}")
	assert.Equal(t, "Find pet by id", byID.Get.Summary)

	doc = read(t, petstore(), Options{})
	pets, _ = doc.Paths.Get("/pets")
	assert.Equal(t, "PetController.list", pets.Get.Summary)
}

func TestReader_OperationDetails(t *testing.T) {
	decls := petstore()
	decls[0].Markers.Deprecated = true
	decls[0].Methods[0].Operation = &types.OperationMarker{
		Notes:      "Returns all pets",
		Protocols:  "HTTPS, ws",
		Extensions: map[string]string{"rate-limit": "10", "x-owner": "team"},
	}
	doc := read(t, decls, Options{Decorators: []extension.Decorator{extension.DeprecationNotice()}})

	pets, _ := doc.Paths.Get("/pets")
	op := pets.Get
	assert.True(t, op.Deprecated)
	assert.Equal(t, "Deprecated. Returns all pets", op.Description, "decorators run last")
	assert.Equal(t, []string{"https", "ws"}, op.Schemes)
	assert.Equal(t, map[string]interface{}{"x-rate-limit": "10", "x-owner": "team"}, op.Extensions)
}

func TestReader_MergesOverlappingOperations(t *testing.T) {
	doc := read(t, []types.TypeDecl{
		{
			Name:    "com.acme.A",
			Markers: types.TypeMarkers{Controller: true, Mapping: &types.Mapping{Produces: []string{"application/json"}}},
			Methods: []types.MethodDecl{{
				Name:      "items",
				Mapping:   get("/items"),
				Operation: &types.OperationMarker{Tags: []string{"a"}},
			}},
		},
		{
			Name:    "com.acme.B",
			Markers: types.TypeMarkers{Controller: true, Mapping: &types.Mapping{Produces: []string{"application/xml"}}},
			Methods: []types.MethodDecl{{
				Name:      "items",
				Mapping:   get("items"),
				Operation: &types.OperationMarker{Tags: []string{"b"}},
			}},
		},
	}, Options{})

	items, _ := doc.Paths.Get("/items")
	require.NotNil(t, items.Get)
	assert.Equal(t, []string{"a", "b"}, items.Get.Tags)
	assert.Equal(t, []string{"application/json", "application/xml"}, items.Get.Produces)
	assert.Equal(t, "B.items", items.Get.Summary, "scalars take the later value")
}

func TestReader_MalformedPath(t *testing.T) {
	f := newFixture([]types.TypeDecl{{
		Name:    "com.acme.Broken",
		Markers: types.TypeMarkers{Controller: true},
		Methods: []types.MethodDecl{{Name: "oops", Mapping: get("/pets/{id")}},
	}}, Options{}, nil)

	err := f.reader.Read(context.Background(), types.NewDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPath)
	assert.Contains(t, err.Error(), "com.acme.Broken")
	assert.Contains(t, err.Error(), "oops")
}

func TestReader_OrderIndependent(t *testing.T) {
	forward := petstore()
	reversed := petstore()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	a, err := json.Marshal(read(t, forward, Options{}))
	require.NoError(t, err)
	b, err := json.Marshal(read(t, reversed, Options{}))
	require.NoError(t, err)

	assert.JSONEq(t, string(a), string(b))
}

func TestReader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newFixture(petstore(), Options{}, nil).reader.Read(ctx, types.NewDocument())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMergeOperation(t *testing.T) {
	dst := &types.Operation{
		Summary:    "old",
		Tags:       []string{"a"},
		Parameters: []*types.Parameter{{Name: "q", In: types.InQuery, Description: "old"}},
		Security:   []types.SecurityRequirement{{"key": {}}},
		Responses:  types.NewOrderedMap[*types.Response](),
	}
	dst.Responses.Set("200", &types.Response{Description: "old"})

	src := &types.Operation{
		Summary:    "new",
		Tags:       []string{"b", "a"},
		Parameters: []*types.Parameter{{Name: "q", In: types.InQuery, Description: "new"}, {Name: "limit", In: types.InQuery}},
		Security:   []types.SecurityRequirement{{"key": {}}, {"oauth": {"read"}}},
		Extensions: map[string]interface{}{"x-a": 1},
		Responses:  types.NewOrderedMap[*types.Response](),
	}
	src.Responses.Set("200", &types.Response{Description: "new"})
	src.Responses.Set("404", &types.Response{Description: "missing"})

	MergeOperation(dst, src)

	assert.Equal(t, "new", dst.Summary)
	assert.Equal(t, []string{"a", "b"}, dst.Tags)
	require.Len(t, dst.Parameters, 2)
	assert.Equal(t, "new", dst.Parameters[0].Description)
	assert.Len(t, dst.Security, 2)
	assert.Equal(t, []string{"200", "404"}, dst.Responses.Keys())
	ok, _ := dst.Responses.Get("200")
	assert.Equal(t, "new", ok.Description)
	assert.Equal(t, 1, dst.Extensions["x-a"])
}
