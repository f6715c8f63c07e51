package bridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tidwall/gjson"

	textbridge "github.com/annotext/textbridge"
	"github.com/annotext/textbridge/span"
)

func TestRegisterHost(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	b := New(&fakeLoader{})
	defer b.Close()

	err := RegisterHost(ctx, rt, b, WithModuleName("annotator_test"), WithMaxRequestSize(1<<16))
	require.NoError(t, err)
}

func TestHostHandlers_AnnotatorLifecycle(t *testing.T) {
	loader := &fakeLoader{engine: &fakeEngine{}}
	b := New(loader)
	defer b.Close()

	resp := b.hostNewAnnotator([]byte(`{"source":{"kind":"path","path":"model.tb"}}`))
	h := resp.(handleResponse).Handle
	require.NotZero(t, h)

	loader.engine.suggestResult = span.Span{Begin: 3, End: 4}
	req, err := json.Marshal(map[string]any{
		"handle":  h,
		"text":    "Hi \U0001F600!",
		"begin":   3,
		"end":     5,
		"options": map[string]any{"locales": "en"},
	})
	require.NoError(t, err)

	sel := b.hostSuggestSelection(req).(spanResponse)
	assert.Equal(t, 3, sel.Begin)
	assert.Equal(t, 5, sel.End)
	assert.Equal(t, span.Span{Begin: 3, End: 4}, loader.engine.lastSelection)

	closed := b.hostCloseAnnotator([]byte(`{"handle":` + jsonNumber(h) + `}`))
	assert.True(t, closed.(okResponse).OK)
	assert.True(t, loader.engine.closed)
}

func TestHostHandlers_NewAnnotatorFailure(t *testing.T) {
	b := New(&fakeLoader{fail: true})
	defer b.Close()

	resp := b.hostNewAnnotator([]byte(`{"source":{"kind":"path","path":"missing"}}`))
	assert.Zero(t, resp.(handleResponse).Handle)

	// Unknown source kind also fails closed.
	resp = b.hostNewAnnotator([]byte(`{"source":{"kind":"url","url":"http://x"}}`))
	assert.Zero(t, resp.(handleResponse).Handle)
}

func TestHostHandlers_ClassifyInvalidHandle(t *testing.T) {
	b := New(&fakeLoader{})
	defer b.Close()

	resp := b.hostClassifyText([]byte(`{"handle":0,"text":"x","begin":0,"end":1}`))
	// Invalid handle marshals as a null results array, per the boundary's
	// neutral-value rules.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":null}`, string(raw))
}

func TestHostHandlers_InitializeKnowledgeEngine(t *testing.T) {
	loader := &fakeLoader{engine: &fakeEngine{initResult: true}}
	b := New(loader)
	defer b.Close()

	h := uint64(b.NewAnnotator(textbridge.PathSource("model.tb")))

	// Config travels base64-encoded.
	resp := b.hostInitializeKnowledgeEngine([]byte(`{"handle":` + jsonNumber(h) + `,"config":"qg=="}`))
	assert.True(t, resp.(okResponse).OK)
	assert.Equal(t, []byte{0xAA}, loader.engine.lastConfig)

	// Missing or undecodable config fails closed.
	resp = b.hostInitializeKnowledgeEngine([]byte(`{"handle":` + jsonNumber(h) + `}`))
	assert.False(t, resp.(okResponse).OK)
	resp = b.hostInitializeKnowledgeEngine([]byte(`{"handle":` + jsonNumber(h) + `,"config":"!!!"}`))
	assert.False(t, resp.(okResponse).OK)
}

func TestHostHandlers_Metadata(t *testing.T) {
	b := New(&fakeLoader{})
	defer b.Close()

	req := []byte(`{"source":{"kind":"path","path":"/does/not/exist"}}`)
	assert.Equal(t, "", b.hostGetLocales(req).(localesResponse).Locales)
	assert.Equal(t, int32(0), b.hostGetVersion(req).(versionResponse).Version)
	assert.Equal(t, "", b.hostGetName(req).(nameResponse).Name)
	assert.Equal(t, "", b.hostGetLanguage(req).(localesResponse).Locales)
}

func TestParseSource(t *testing.T) {
	src := parseSource(jsonResult(`{"kind":"path","path":"/m.tb"}`))
	assert.Equal(t, textbridge.SourcePath, src.Kind())
	assert.Equal(t, "/m.tb", src.Path())

	src = parseSource(jsonResult(`{"kind":"fd","fd":7}`))
	assert.Equal(t, textbridge.SourceFD, src.Kind())
	assert.Equal(t, 7, src.FD())

	src = parseSource(jsonResult(`{"kind":"region","fd":7,"offset":128,"length":4096}`))
	assert.Equal(t, textbridge.SourceRegion, src.Kind())
	offset, length := src.Region()
	assert.Equal(t, int64(128), offset)
	assert.Equal(t, int64(4096), length)

	src = parseSource(jsonResult(`{"kind":"nope"}`))
	assert.Equal(t, textbridge.SourceInvalid, src.Kind())
}

func TestPackUnpackPtrLen(t *testing.T) {
	ptr, length := unpackPtrLen(packPtrLen(0xDEADBEEF, 42))
	assert.Equal(t, uint32(0xDEADBEEF), ptr)
	assert.Equal(t, uint32(42), length)
}

func TestRequestOptions(t *testing.T) {
	assert.Nil(t, requestOptions([]byte(`{"handle":1}`)))
	assert.Equal(t, []byte(`{"locales":"en"}`), requestOptions([]byte(`{"options":{"locales":"en"}}`)))
}

func jsonNumber(v uint64) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func jsonResult(raw string) gjson.Result {
	return gjson.Parse(raw)
}
