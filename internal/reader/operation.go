// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package reader

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/littlefisher666/swagger-docgen/internal/config"
	"github.com/littlefisher666/swagger-docgen/internal/descriptor"
	"github.com/littlefisher666/swagger-docgen/internal/doccomment"
	"github.com/littlefisher666/swagger-docgen/internal/extension"
	"github.com/littlefisher666/swagger-docgen/internal/logging"
	"github.com/littlefisher666/swagger-docgen/internal/params"
	"github.com/littlefisher666/swagger-docgen/internal/schema"
	"github.com/littlefisher666/swagger-docgen/internal/util"
	"github.com/littlefisher666/swagger-docgen/pkg/types"
)

// DefaultResponseDescription describes synthesized success responses.
const DefaultResponseDescription = "successful operation"

// DefaultResponseKey is the response slot of status code 0.
const DefaultResponseKey = "default"

var operationIDToken = regexp.MustCompile(`\{\{\s*(packageName|className|methodName|httpMethod)\s*\}\}`)

// Options configures operation building.
type Options struct {
	// OperationIDFormat is the operationId template
	OperationIDFormat string

	// DocsEnabled takes summaries from doc comments
	DocsEnabled bool

	// TypesToSkip are never expanded into parameters
	TypesToSkip []string

	// Decorators run on every operation after the built-in rules
	Decorators []extension.Decorator
}

// Builder assembles one operation per method, path and verb.
type Builder struct {
	index    *descriptor.Index
	schema   *schema.Resolver
	params   *params.Resolver
	docs     *doccomment.Merger
	statuses *ExceptionTable
	skip     params.SkipSet
	opts     Options
	logger   logging.Logger
}

// NewBuilder creates a Builder. docs may be nil.
func NewBuilder(index *descriptor.Index, paramResolver *params.Resolver, docs *doccomment.Merger, statuses *ExceptionTable, opts Options, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if opts.OperationIDFormat == "" {
		opts.OperationIDFormat = config.DefaultOperationIDFormat
	}

	keys := make([]string, 0, len(opts.TypesToSkip))
	for _, t := range opts.TypesToSkip {
		keys = append(keys, paramResolver.Key(t))
	}

	return &Builder{
		index:    index,
		schema:   paramResolver.Schema(),
		params:   paramResolver,
		docs:     docs,
		statuses: statuses,
		skip:     params.NewSkipSet(keys...),
		opts:     opts,
		logger:   logger,
	}
}

// Build assembles the operation of m for one canonical path and verb.
// patterns holds the regex constraints of the path variables. Tags the
// operation uses are registered in doc.
func (b *Builder) Build(doc *types.Document, res *Resource, m *types.MethodDecl, verb, pathKey string, patterns map[string]string) *types.Operation {
	op := &types.Operation{
		OperationID: b.OperationID(res.Type, m, verb),
		Summary:     b.summary(res.Type, m),
		Responses:   types.NewOrderedMap[*types.Response](),
	}

	if marker := m.Operation; marker != nil {
		op.Description = marker.Notes
		op.Extensions = vendorExtensions(marker.Extensions)
		for _, scheme := range util.SplitList(marker.Protocols) {
			op.Schemes = util.MergeUnique(op.Schemes, []string{strings.ToLower(scheme)})
		}
	}

	b.responses(op, m)
	op.Deprecated = m.Deprecated || res.Type.Markers.Deprecated
	b.parameters(op, m, patterns)

	op.Produces, op.Consumes = mediaTypes(res, m)
	op.Tags = b.tags(doc, res, m)
	op.Security = security(res, m)

	target := extension.Target{Type: res.Type, Method: m, Verb: verb, Path: pathKey}
	for _, d := range b.opts.Decorators {
		d.Decorate(op, target)
	}
	return op
}

// OperationID expands the operationId template for m. A nickname on the
// operation marker takes precedence.
func (b *Builder) OperationID(t *types.TypeDecl, m *types.MethodDecl, verb string) string {
	if m.Operation != nil && strings.TrimSpace(m.Operation.Nickname) != "" {
		return strings.TrimSpace(m.Operation.Nickname)
	}

	values := map[string]string{
		"packageName": t.PackageName(),
		"className":   t.SimpleName(),
		"methodName":  m.Name,
		"httpMethod":  cases.Upper(language.Und).String(verb),
	}
	return operationIDToken.ReplaceAllStringFunc(b.opts.OperationIDFormat, func(tok string) string {
		return values[operationIDToken.FindStringSubmatch(tok)[1]]
	})
}

func (b *Builder) summary(t *types.TypeDecl, m *types.MethodDecl) string {
	if b.opts.DocsEnabled {
		if text := b.docs.Lookup(t, m.Name); text != "" {
			return text
		}
	}
	if m.Operation != nil && strings.TrimSpace(m.Operation.Value) != "" {
		return m.Operation.Value
	}
	return t.SimpleName() + "." + m.Name
}

// responses fills the response map. Earlier rules win a shared status
// code: explicit entries, the natural return type, the status marker, the
// thrown exceptions, then the synthesized default.
func (b *Builder) responses(op *types.Operation, m *types.MethodDecl) {
	code := http.StatusOK
	marker := m.Operation
	switch {
	case marker != nil && marker.Code != 0:
		code = marker.Code
	case m.ResponseStatus != nil && m.ResponseStatus.Code != 0:
		code = m.ResponseStatus.Code
	}
	successKey := strconv.Itoa(code)
	natural := b.naturalSchema(m)

	for _, rm := range m.Responses {
		resp := &types.Response{
			Description: util.FirstNonEmpty(rm.Message, http.StatusText(rm.Code), DefaultResponseDescription),
			Headers:     b.headers(rm.Headers),
		}
		if !schema.IsVoid(rm.Response) {
			resp.Schema = withContainer(rm.ResponseContainer, b.schema.Property(rm.Response))
		}
		key := responseKey(rm.Code)
		if resp.Schema == nil && key == successKey {
			resp.Schema = natural.Clone()
		}
		op.AddResponse(key, resp)
	}

	if natural != nil {
		resp := &types.Response{Description: DefaultResponseDescription, Schema: natural}
		if marker != nil {
			resp.Headers = b.headers(marker.ResponseHeaders)
		}
		op.AddResponse(successKey, resp)
	}

	if len(m.Responses) == 0 && m.ResponseStatus != nil && m.ResponseStatus.Code != 0 {
		op.AddResponse(strconv.Itoa(m.ResponseStatus.Code), &types.Response{Description: statusText(*m.ResponseStatus)})
	}

	for _, exc := range m.Throws {
		status, ok := b.statuses.Status(exc)
		if !ok || status.Code == 0 {
			continue
		}
		op.AddResponse(strconv.Itoa(status.Code), &types.Response{Description: statusText(status)})
	}

	if op.Responses.Len() == 0 {
		op.AddResponse(DefaultResponseKey, &types.Response{Description: DefaultResponseDescription})
	}
}

// naturalSchema resolves the success body of m: the operation marker's
// response type, else the return type with its response envelope removed.
// Endpoint types are not modeled.
func (b *Builder) naturalSchema(m *types.MethodDecl) *types.Property {
	expr := m.Returns
	container := ""
	if marker := m.Operation; marker != nil {
		if !schema.IsVoid(marker.Response) {
			expr = marker.Response
		}
		container = marker.ResponseContainer
	}
	if schema.IsVoid(expr) {
		return nil
	}

	ref, err := types.ParseTypeRef(expr)
	if err != nil {
		return withContainer(container, b.schema.Property(expr))
	}
	ref = unwrapEnvelope(ref)
	if ref.IsZero() {
		return nil
	}
	if decl, ok := b.index.Lookup(ref.Name); ok && decl.IsEndpoint() {
		b.logger.Debug("return type is an endpoint type, not modeling it", "type", decl.Name, "method", m.Name)
		return nil
	}
	return withContainer(container, b.schema.PropertyRef(ref))
}

func (b *Builder) headers(markers []types.HeaderMarker) types.OrderedMap[*types.Property] {
	var out types.OrderedMap[*types.Property]
	for _, h := range markers {
		if strings.TrimSpace(h.Name) == "" {
			continue
		}
		expr := h.Response
		if expr == "" {
			expr = "String"
		}
		prop := b.schema.Property(expr)
		if prop == nil {
			continue
		}
		prop = withContainer(h.Container, prop.Clone())
		prop.Description = h.Description
		out.Set(h.Name, prop)
	}
	return out
}

func (b *Builder) parameters(op *types.Operation, m *types.MethodDecl, patterns map[string]string) {
	for _, pd := range m.Params {
		in := params.Input{Type: pd.Type, Name: pd.Name, Markers: pd.Markers, Skip: b.skip}
		for _, p := range b.params.Resolve(in) {
			if p.Name == "" {
				p.Name = pd.Name
			}
			op.AddParameter(p)
		}
	}

	for _, ip := range m.ImplicitParams {
		p, ok := b.params.Implicit(ip)
		if !ok {
			b.logger.Debug("ignoring implicit parameter", "method", m.Name, "name", ip.Name, "in", ip.In)
			continue
		}
		op.AddParameter(p)
	}

	for _, p := range op.Parameters {
		if p.In != types.InPath {
			continue
		}
		if pattern, ok := patterns[p.Name]; ok {
			p.Pattern = pattern
		}
	}
}

// tags returns the explicit operation tags, else the resource tags. Every
// tag is registered in doc.
func (b *Builder) tags(doc *types.Document, res *Resource, m *types.MethodDecl) []string {
	var names []string
	if m.Operation != nil {
		for _, tag := range m.Operation.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				names = util.MergeUnique(names, []string{tag})
				doc.AddTag(types.Tag{Name: tag})
			}
		}
	}
	if len(names) > 0 {
		return names
	}
	for _, tag := range b.RegisterTags(doc, res) {
		names = append(names, tag.Name)
	}
	return names
}

// RegisterTags adds the tags declared by the resource's api marker to doc
// and returns them: the explicit api tags, else the api value with "/"
// removed.
func (b *Builder) RegisterTags(doc *types.Document, res *Resource) []types.Tag {
	tags := apiTags(res.Api)
	for _, t := range tags {
		doc.AddTag(t)
	}
	return tags
}

func apiTags(api *types.ApiMarker) []types.Tag {
	if api == nil {
		return nil
	}
	var tags []types.Tag
	seen := make(map[string]bool)
	for _, name := range api.Tags {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, types.Tag{Name: name, Description: api.Description})
	}
	if len(tags) > 0 {
		return tags
	}
	if name := strings.ReplaceAll(api.Value, "/", ""); strings.TrimSpace(name) != "" {
		return []types.Tag{{Name: strings.TrimSpace(name), Description: api.Description}}
	}
	return nil
}

// mediaTypes returns produces and consumes: method-level values when
// declared, else class-level values.
func mediaTypes(res *Resource, m *types.MethodDecl) (produces, consumes []string) {
	var methodProduces, methodConsumes []string
	if m.Mapping != nil {
		methodProduces = util.MergeUnique(methodProduces, m.Mapping.Produces)
		methodConsumes = util.MergeUnique(methodConsumes, m.Mapping.Consumes)
	}
	if m.Operation != nil {
		methodProduces = util.MergeUnique(methodProduces, util.SplitList(strings.Join(m.Operation.Produces, ",")))
		methodConsumes = util.MergeUnique(methodConsumes, util.SplitList(strings.Join(m.Operation.Consumes, ",")))
	}

	var classProduces, classConsumes []string
	if res.Mapping != nil {
		classProduces = util.MergeUnique(classProduces, res.Mapping.Produces)
		classConsumes = util.MergeUnique(classConsumes, res.Mapping.Consumes)
	}
	if res.Api != nil {
		classProduces = util.MergeUnique(classProduces, res.Api.Produces)
		classConsumes = util.MergeUnique(classConsumes, res.Api.Consumes)
	}

	produces = methodProduces
	if len(produces) == 0 {
		produces = classProduces
	}
	consumes = methodConsumes
	if len(consumes) == 0 {
		consumes = classConsumes
	}
	return produces, consumes
}

// security returns the method authorizations, else the resource ones.
func security(res *Resource, m *types.MethodDecl) []types.SecurityRequirement {
	if m.Operation != nil {
		if reqs := requirements(m.Operation.Authorizations); len(reqs) > 0 {
			return reqs
		}
	}
	if res.Api != nil {
		return requirements(res.Api.Authorizations)
	}
	return nil
}

func requirements(auths []types.Authorization) []types.SecurityRequirement {
	var out []types.SecurityRequirement
	for _, a := range auths {
		if strings.TrimSpace(a.Value) == "" {
			continue
		}
		scopes := []string{}
		for _, s := range a.Scopes {
			if strings.TrimSpace(s) != "" {
				scopes = append(scopes, s)
			}
		}
		out = append(out, types.SecurityRequirement{a.Value: scopes})
	}
	return out
}

func vendorExtensions(in map[string]string) map[string]interface{} {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if !strings.HasPrefix(k, "x-") {
			k = "x-" + k
		}
		out[k] = v
	}
	return out
}

// unwrapEnvelope removes a response envelope. A bare envelope has no body.
func unwrapEnvelope(ref types.TypeRef) types.TypeRef {
	switch ref.Name {
	case "ResponseEntity", "HttpEntity",
		"org.springframework.http.ResponseEntity", "org.springframework.http.HttpEntity":
		return ref.Arg(0)
	}
	return ref
}

// withContainer wraps prop in the named response container.
func withContainer(container string, prop *types.Property) *types.Property {
	if prop == nil {
		return nil
	}
	switch {
	case strings.EqualFold(container, "List"), strings.EqualFold(container, "Set"):
		return &types.Property{Type: "array", Items: prop}
	case strings.EqualFold(container, "Map"):
		return &types.Property{Type: "object", AdditionalProperties: prop}
	}
	return prop
}

func responseKey(code int) string {
	if code == 0 {
		return DefaultResponseKey
	}
	return strconv.Itoa(code)
}

func statusText(s types.StatusMarker) string {
	return util.FirstNonEmpty(s.Reason, http.StatusText(s.Code))
}
