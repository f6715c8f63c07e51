package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	textbridge "github.com/annotext/textbridge"
	"github.com/annotext/textbridge/registry"
	"github.com/annotext/textbridge/span"
)

// DefaultHostModule is the host module name guests import.
const DefaultHostModule = "annotator_bridge"

// DefaultMaxRequestSize bounds request payloads read from guest memory.
const DefaultMaxRequestSize uint32 = 1 << 20

// HostOption configures RegisterHost.
type HostOption func(*hostConfig)

type hostConfig struct {
	moduleName     string
	maxRequestSize uint32
}

// WithModuleName overrides the host module name.
func WithModuleName(name string) HostOption {
	return func(c *hostConfig) {
		c.moduleName = name
	}
}

// WithMaxRequestSize overrides the request size bound.
func WithMaxRequestSize(size uint32) HostOption {
	return func(c *hostConfig) {
		c.maxRequestSize = size
	}
}

// RegisterHost exposes the bridge to wasm guests as a host module.
//
// Every export takes a packed i64 (pointer in the upper 32 bits, length
// in the lower) addressing a JSON request in guest memory and returns a
// packed i64 addressing the JSON response, allocated via the guest's
// "allocate" export. A zero return means the response could not be
// written; in-protocol failures are neutral values inside the JSON, in
// keeping with the boundary's no-raised-errors discipline.
//
// Exports: new_annotator, close_annotator, initialize_knowledge_engine,
// suggest_selection, classify_text, annotate, get_locales, get_version,
// get_name, get_language (deprecated alias).
func RegisterHost(ctx context.Context, rt wazero.Runtime, b *Bridge, opts ...HostOption) error {
	cfg := hostConfig{
		moduleName:     DefaultHostModule,
		maxRequestSize: DefaultMaxRequestSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	exports := []struct {
		name    string
		handler func(req []byte) any
	}{
		{"new_annotator", b.hostNewAnnotator},
		{"close_annotator", b.hostCloseAnnotator},
		{"initialize_knowledge_engine", b.hostInitializeKnowledgeEngine},
		{"suggest_selection", b.hostSuggestSelection},
		{"classify_text", b.hostClassifyText},
		{"annotate", b.hostAnnotate},
		{"get_locales", b.hostGetLocales},
		{"get_version", b.hostGetVersion},
		{"get_name", b.hostGetName},
		{"get_language", b.hostGetLanguage},
	}

	builder := rt.NewHostModuleBuilder(cfg.moduleName)
	for _, e := range exports {
		handler := e.handler
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				stack[0] = b.handleHostCall(ctx, mod, stack[0], handler, cfg.maxRequestSize)
			}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}).
			Export(e.name)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

// handleHostCall reads the request from guest memory, runs the handler,
// and writes the JSON response back through the guest allocator.
func (b *Bridge) handleHostCall(ctx context.Context, mod api.Module, packed uint64, handler func([]byte) any, maxRequestSize uint32) uint64 {
	ptr, length := unpackPtrLen(packed)

	if length > maxRequestSize {
		b.log.Error("host request exceeds size bound",
			zap.Uint32("length", length),
			zap.Uint32("max", maxRequestSize))
		return 0
	}

	req, ok := mod.Memory().Read(ptr, length)
	if !ok {
		b.log.Error("failed to read host request from guest memory",
			zap.Uint32("ptr", ptr),
			zap.Uint32("length", length))
		return 0
	}

	resp, err := json.Marshal(handler(req))
	if err != nil {
		b.log.Error("failed to marshal host response", zap.Error(err))
		return 0
	}

	return b.writeResponse(ctx, mod, resp)
}

func (b *Bridge) writeResponse(ctx context.Context, mod api.Module, data []byte) uint64 {
	allocate := mod.ExportedFunction("allocate")
	if allocate == nil {
		b.log.Error("guest module missing allocate export")
		return 0
	}

	results, err := allocate.Call(ctx, uint64(len(data)))
	if err != nil {
		b.log.Error("guest allocate failed", zap.Error(err))
		return 0
	}
	ptr := uint32(results[0])

	if !mod.Memory().Write(ptr, data) {
		b.log.Error("failed to write host response to guest memory",
			zap.Uint32("ptr", ptr),
			zap.Int("length", len(data)))
		return 0
	}

	return packPtrLen(ptr, uint32(len(data)))
}

// Request handlers. Each returns a JSON-marshalable response value;
// failures stay inside the value as neutral fields.

type handleResponse struct {
	Handle uint64 `json:"handle"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type spanResponse struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

type classifyResponse struct {
	Results []ClassificationRecord `json:"results"`
}

type annotateResponse struct {
	Annotations []AnnotationRecord `json:"annotations"`
}

type localesResponse struct {
	Locales string `json:"locales"`
}

type versionResponse struct {
	Version int32 `json:"version"`
}

type nameResponse struct {
	Name string `json:"name"`
}

func (b *Bridge) hostNewAnnotator(req []byte) any {
	src := parseSource(gjson.GetBytes(req, "source"))
	return handleResponse{Handle: uint64(b.NewAnnotator(src))}
}

func (b *Bridge) hostCloseAnnotator(req []byte) any {
	b.CloseAnnotator(requestHandle(req))
	return okResponse{OK: true}
}

func (b *Bridge) hostInitializeKnowledgeEngine(req []byte) any {
	config, ok := requestBytes(req, "config")
	if !ok {
		return okResponse{OK: false}
	}
	return okResponse{OK: b.InitializeKnowledgeEngine(requestHandle(req), config)}
}

func (b *Bridge) hostSuggestSelection(req []byte) any {
	selection := b.SuggestSelection(
		requestHandle(req),
		gjson.GetBytes(req, "text").String(),
		requestSpan(req),
		requestOptions(req),
	)
	return spanResponse{Begin: selection.Begin, End: selection.End}
}

func (b *Bridge) hostClassifyText(req []byte) any {
	results := b.ClassifyText(
		requestHandle(req),
		gjson.GetBytes(req, "text").String(),
		requestSpan(req),
		requestOptions(req),
	)
	return classifyResponse{Results: results}
}

func (b *Bridge) hostAnnotate(req []byte) any {
	annotations := b.Annotate(
		requestHandle(req),
		gjson.GetBytes(req, "text").String(),
		requestOptions(req),
	)
	return annotateResponse{Annotations: annotations}
}

func (b *Bridge) hostGetLocales(req []byte) any {
	return localesResponse{Locales: b.Locales(parseSource(gjson.GetBytes(req, "source")))}
}

func (b *Bridge) hostGetVersion(req []byte) any {
	return versionResponse{Version: b.Version(parseSource(gjson.GetBytes(req, "source")))}
}

func (b *Bridge) hostGetName(req []byte) any {
	return nameResponse{Name: b.Name(parseSource(gjson.GetBytes(req, "source")))}
}

func (b *Bridge) hostGetLanguage(req []byte) any {
	return localesResponse{Locales: b.Language(parseSource(gjson.GetBytes(req, "source")))}
}

// parseSource reads the tagged source union from a request. An
// unrecognized kind yields the invalid Source, which every downstream
// operation treats as unreadable.
func parseSource(res gjson.Result) textbridge.Source {
	switch res.Get("kind").String() {
	case "path":
		return textbridge.PathSource(res.Get("path").String())
	case "fd":
		return textbridge.FDSource(int(res.Get("fd").Int()))
	case "region":
		return textbridge.RegionSource(
			int(res.Get("fd").Int()),
			res.Get("offset").Int(),
			res.Get("length").Int(),
		)
	default:
		return textbridge.Source{}
	}
}

func requestHandle(req []byte) registry.Handle {
	return registry.Handle(gjson.GetBytes(req, "handle").Uint())
}

func requestSpan(req []byte) span.Span {
	return span.Span{
		Begin: int(gjson.GetBytes(req, "begin").Int()),
		End:   int(gjson.GetBytes(req, "end").Int()),
	}
}

// requestOptions returns the raw options object, or nil when absent so
// the options adapters fall back to defaults.
func requestOptions(req []byte) []byte {
	res := gjson.GetBytes(req, "options")
	if !res.Exists() {
		return nil
	}
	return []byte(res.Raw)
}

func requestBytes(req []byte, field string) ([]byte, bool) {
	res := gjson.GetBytes(req, field)
	if res.Type != gjson.String {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(res.String())
	if err != nil {
		return nil, false
	}
	return data, true
}

// packPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	return uint32(packed >> 32), uint32(packed & 0xFFFFFFFF)
}
