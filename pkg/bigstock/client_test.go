package bigstock

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/bigstock-client/pkg/httpclient"
)

const (
	testAccount = "123456"
	testSecret  = "s3cr3t"
)

// stubTransport records requested URLs and replays a fixed response.
type stubTransport struct {
	urls []string
	resp httpclient.Response
	err  error
}

func (s *stubTransport) Get(_ context.Context, u string, _ map[string]string) (httpclient.Response, error) {
	s.urls = append(s.urls, u)
	return s.resp, s.err
}

func (s *stubTransport) last() string {
	if len(s.urls) == 0 {
		return ""
	}
	return s.urls[len(s.urls)-1]
}

func jsonResponse(body string) httpclient.Response {
	return httpclient.StaticResponse{Status: 200, Type: "application/json", Payload: []byte(body), Success: true}
}

func newTestClient(t *testing.T, resp httpclient.Response, opts ...Option) (*Client, *stubTransport) {
	t.Helper()
	stub := &stubTransport{resp: resp}
	client, err := New(testAccount, testSecret, append([]Option{WithTransport(stub)}, opts...)...)
	require.NoError(t, err)
	return client, stub
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New("", testSecret)
	assert.ErrorIs(t, err, ErrMissingAccountID)

	_, err = New("   ", testSecret)
	assert.ErrorIs(t, err, ErrMissingAccountID)

	_, err = New(testAccount, "")
	assert.ErrorIs(t, err, ErrMissingSecretKey)
}

func TestGenerateAuthKey(t *testing.T) {
	client, _ := newTestClient(t, jsonResponse(`{}`))

	base := client.GenerateAuthKey("")
	assert.Equal(t, sha1Hex(testSecret+testAccount), base)
	assert.Equal(t, base, client.GenerateAuthKey(""), "auth key must be deterministic")

	withID := client.GenerateAuthKey("42")
	assert.Equal(t, sha1Hex(testSecret+testAccount+"42"), withID)
	assert.NotEqual(t, base, withID)
	assert.NotEqual(t, withID, client.GenerateAuthKey("43"))
}

func TestBaseURLFollowsMode(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{}`))

	assert.Equal(t, ModeProd, client.Mode())
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/", client.BaseURL())

	client.SetMode(ModeProd)
	client.GetImage(context.Background(), "1")
	prodURL := stub.last()

	client.SetMode(ModeTest)
	client.GetImage(context.Background(), "1")
	testURL := stub.last()

	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/image/1", prodURL)
	assert.Equal(t, "http://testapi.bigstockphoto.com/2/123456/image/1", testURL)

	client.SetMode("staging")
	assert.Equal(t, "http://testapi.bigstockphoto.com/2/123456/", client.BaseURL(), "non-prod modes use the test host")
}

func TestSearchKeepsCallerOrder(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{"a":1}`))

	res := client.Search(context.Background(), NewParams("q", "red car", "limit", "5", "page", "2"))

	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/search/?q=red+car&limit=5&page=2", stub.last())
	require.Equal(t, KindDecoded, res.Kind)
	assert.Equal(t, map[string]any{"a": json.Number("1")}, res.Decoded)
}

func TestSearchEmptyParamsDecodesJSON(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{"a":1}`))

	res := client.Search(context.Background(), nil)

	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/search/?", stub.last())
	require.True(t, res.OK())
	assert.Equal(t, map[string]any{"a": json.Number("1")}, res.Decoded)

	var typed struct {
		A int `json:"a"`
	}
	require.NoError(t, res.Decode(&typed))
	assert.Equal(t, 1, typed.A)
}

func TestGetAssetDefaultsToImage(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{}`))
	ctx := context.Background()

	client.GetAsset(ctx, "99", "")
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/image/99", stub.last())

	client.GetVideo(ctx, "77")
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/video/77", stub.last())
}

func TestCollections(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{}`))
	ctx := context.Background()
	key := client.GenerateAuthKey("")

	client.GetLightboxes(ctx)
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/lightbox/?auth_key="+key, stub.last())

	client.GetClipboxes(ctx)
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/video/?auth_key="+key, stub.last())

	client.GetCollections(ctx, "")
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/image/?auth_key="+key, stub.last())

	client.GetClipbox(ctx, "5", nil)
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/clipbox/5/?auth_key="+client.GenerateAuthKey("5"), stub.last())
}

func TestGetCollectionOverwritesAuthKey(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{}`))
	params := NewParams("page", "2", "auth_key", "forged", "limit", "10")

	client.GetLightbox(context.Background(), "7", params)

	u, err := url.Parse(stub.last())
	require.NoError(t, err)
	assert.Equal(t, "/2/123456/lightbox/7/", u.Path)
	assert.Equal(t, []string{client.GenerateAuthKey("7")}, u.Query()["auth_key"])
	assert.Equal(t, "page=2&auth_key="+client.GenerateAuthKey("7")+"&limit=10", u.RawQuery)

	v, _ := params.Get("auth_key")
	assert.Equal(t, "forged", v, "caller params must not be modified")
}

func TestGetCategories(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{}`))

	client.GetCategories(context.Background(), "")
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/categories/?language=en", stub.last())

	client.GetCategories(context.Background(), "de")
	assert.Equal(t, "http://api.bigstockphoto.com/2/123456/categories/?language=de", stub.last())
}

func TestGetPurchase(t *testing.T) {
	client, stub := newTestClient(t, jsonResponse(`{}`))

	client.GetPurchase(context.Background(), "321", "l", "")
	assert.Equal(t,
		"http://api.bigstockphoto.com/2/123456/purchase/?image_id=321&size_code=l&auth_key="+client.GenerateAuthKey("321"),
		stub.last())

	client.GetPurchase(context.Background(), "654", "hd", TypeVideo)
	assert.True(t, strings.Contains(stub.last(), "/purchase/?video_id=654&size_code=hd&"))
}

func TestDownloadURLAndDownload(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
	client, stub := newTestClient(t, httpclient.StaticResponse{
		Status: 200, Type: "image/jpeg", Payload: payload, Success: true,
	})

	want := "http://api.bigstockphoto.com/2/123456/download?auth_key=" + client.GenerateAuthKey("dl-1") + "&download_id=dl-1"
	assert.Equal(t, want, client.GetDownloadURL("dl-1"))
	assert.Empty(t, stub.urls, "GetDownloadURL must not call the transport")

	res := client.Download(context.Background(), "dl-1")
	assert.Equal(t, want, stub.last())
	require.Equal(t, KindRaw, res.Kind)
	assert.Equal(t, payload, res.Raw)

	client.SetMode(ModeTest)
	assert.True(t, strings.HasPrefix(client.GetDownloadURL("dl-1"), "http://testapi.bigstockphoto.com/"))
}

func TestFailureBecomesErrorRecord(t *testing.T) {
	client, _ := newTestClient(t, httpclient.StaticResponse{Status: 404, ErrNo: 404, ErrMsg: "not found"})
	ctx := context.Background()

	for name, call := range map[string]func() Result{
		"search":     func() Result { return client.Search(ctx, nil) },
		"image":      func() Result { return client.GetImage(ctx, "1") },
		"lightboxes": func() Result { return client.GetLightboxes(ctx) },
		"categories": func() Result { return client.GetCategories(ctx, "") },
		"purchase":   func() Result { return client.GetPurchase(ctx, "1", "m", "") },
		"download":   func() Result { return client.Download(ctx, "1") },
	} {
		res := call()
		require.Equal(t, KindError, res.Kind, name)
		assert.Equal(t, &ErrorRecord{ResponseCode: 404, Message: "not found", Data: []any{}}, res.Error, name)
		assert.ErrorIs(t, res.Err(), ErrNotFound, name)
	}
}

func TestTransportErrorBecomesErrorRecord(t *testing.T) {
	stub := &stubTransport{err: errors.New("connection refused")}
	client, err := New(testAccount, testSecret, WithTransport(stub))
	require.NoError(t, err)

	res := client.GetImage(context.Background(), "1")

	require.Equal(t, KindError, res.Kind)
	assert.Equal(t, 0, res.Error.ResponseCode)
	assert.Equal(t, "connection refused", res.Error.Message)
	assert.NotNil(t, client.LastResponse())
}

func TestLastResponseTracksEveryCall(t *testing.T) {
	first := jsonResponse(`{"n":1}`)
	client, stub := newTestClient(t, first)
	assert.Nil(t, client.LastResponse())

	res := client.GetImage(context.Background(), "1")
	assert.Equal(t, first, client.LastResponse())
	assert.Equal(t, first, res.Response)

	second := httpclient.StaticResponse{Status: 200, Type: "text/plain", Payload: []byte("hello"), Success: true}
	stub.resp = second
	client.GetImage(context.Background(), "2")
	assert.Equal(t, second, client.LastResponse())
}

func TestBaseURLTemplateAgainstServer(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":200,"data":{"categories":[]}}`))
	}))
	defer srv.Close()

	client, err := New(testAccount, testSecret,
		WithBaseURLTemplate(srv.URL+"/{prefix}v2/{account_id}"),
		WithMode(ModeTest),
	)
	require.NoError(t, err)

	res := client.GetCategories(context.Background(), "fr")

	require.Equal(t, KindDecoded, res.Kind)
	assert.Equal(t, "/testv2/123456/categories/", gotPath)
	assert.Equal(t, "language=fr", gotQuery)
	assert.Equal(t, 200, res.Response.StatusCode())
}

func TestRedactURL(t *testing.T) {
	got := redactURL("http://api.bigstockphoto.com/2/1/download?auth_key=abc&download_id=9")
	assert.NotContains(t, got, "abc")
	assert.Contains(t, got, "download_id=9")
}
