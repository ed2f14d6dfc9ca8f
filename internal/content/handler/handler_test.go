package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ladypi89/website/backend/go-services/internal/content/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterContentRoutes(g.Group("/api"), service.NewMemoryService())
	return g
}

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	g.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRoot(t *testing.T) {
	g := newTestRouter(t)
	w := do(g, http.MethodGet, "/api/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World", decodeObject(t, w)["message"])
}

func TestStatusChecks(t *testing.T) {
	g := newTestRouter(t)

	w := do(g, http.MethodPost, "/api/status", `{"client_name":"uptime-monitor"}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeObject(t, w)
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["timestamp"])

	w = do(g, http.MethodPost, "/api/status", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(g, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestBiographyGetAndPartialUpdate(t *testing.T) {
	g := newTestRouter(t)

	w := do(g, http.MethodGet, "/api/biography", "")
	require.Equal(t, http.StatusOK, w.Code)
	before := decodeObject(t, w)
	for _, f := range []string{"id", "name", "title", "bio", "tagline", "updated_at"} {
		assert.Contains(t, before, f)
	}
	assert.Equal(t, "LadyPi89", before["name"])

	w = do(g, http.MethodPut, "/api/biography", `{"title":"Professional Rocket League Streamer"}`)
	require.Equal(t, http.StatusOK, w.Code)
	after := decodeObject(t, w)
	assert.Equal(t, "Professional Rocket League Streamer", after["title"])
	assert.Equal(t, before["name"], after["name"])
	assert.Equal(t, before["bio"], after["bio"])
	assert.Equal(t, before["id"], after["id"])

	w = do(g, http.MethodPut, "/api/biography", `{"name":null}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBiographyUpdateBeforeSeedIs404(t *testing.T) {
	g := newTestRouter(t)
	w := do(g, http.MethodPut, "/api/biography", `{"name":"x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPartnershipsCRUD(t *testing.T) {
	g := newTestRouter(t)

	w := do(g, http.MethodGet, "/api/partnerships", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeList(t, w), 2)

	w = do(g, http.MethodGet, "/api/partnerships", "")
	require.Len(t, decodeList(t, w), 2, "defaults are seeded once")

	w = do(g, http.MethodPost, "/api/partnerships", `{"name":"Test Gaming Partnership","role":"Content Creator","logo":"🎮","handle":"@testpartner","url":"https://testpartner.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeObject(t, w)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	w = do(g, http.MethodGet, "/api/partnerships", "")
	list := decodeList(t, w)
	require.Len(t, list, 3)
	assert.Contains(t, list, created, "created record is listed unchanged")

	w = do(g, http.MethodPut, "/api/partnerships/"+id, `{"name":"Updated Test Partnership","role":"Senior Content Creator"}`)
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeObject(t, w)
	assert.Equal(t, "Updated Test Partnership", first["name"])
	assert.Equal(t, "@testpartner", first["handle"])

	w = do(g, http.MethodPut, "/api/partnerships/"+id, `{"name":"Updated Test Partnership","role":"Senior Content Creator"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, decodeObject(t, w), "same patch twice gives the same state")

	w = do(g, http.MethodPut, "/api/partnerships/"+id, `{"url":"nope"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(g, http.MethodPut, "/api/partnerships/"+id, `{"url":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeObject(t, w)["url"])

	w = do(g, http.MethodPut, "/api/partnerships/missing", `{"name":"x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(g, http.MethodDelete, "/api/partnerships/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Partnership deleted successfully", decodeObject(t, w)["message"])

	w = do(g, http.MethodGet, "/api/partnerships", "")
	for _, p := range decodeList(t, w) {
		assert.NotEqual(t, id, p["id"])
	}

	w = do(g, http.MethodDelete, "/api/partnerships/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPartnershipCreateValidation(t *testing.T) {
	g := newTestRouter(t)
	w := do(g, http.MethodPost, "/api/partnerships", `{"name":"x","role":"y","logo":"z","handle":"@h","url":"not-a-url"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeObject(t, w)
	fields, _ := body["fields"].([]interface{})
	require.NotEmpty(t, fields)
	assert.Equal(t, "url", fields[0].(map[string]interface{})["field"])

	w = do(g, http.MethodPost, "/api/partnerships", `{"name":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPartnershipCreateEmptyURLMeansNoLink(t *testing.T) {
	g := newTestRouter(t)
	w := do(g, http.MethodPost, "/api/partnerships", `{"name":"x","role":"y","logo":"z","handle":"@h","url":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeObject(t, w)
	assert.Nil(t, created["url"])

	w = do(g, http.MethodPut, "/api/partnerships/"+created["id"].(string), `{"url":"https://h.example"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://h.example", decodeObject(t, w)["url"])

	w = do(g, http.MethodPut, "/api/partnerships/"+created["id"].(string), `{"url":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeObject(t, w)["url"])
}

func TestNotFoundMessagesNameTheResource(t *testing.T) {
	g := newTestRouter(t)
	cases := []struct {
		method, path, body, want string
	}{
		{http.MethodPut, "/api/biography", `{"name":"x"}`, "Biography not found"},
		{http.MethodPut, "/api/partnerships/missing", `{"name":"x"}`, "Partnership not found"},
		{http.MethodDelete, "/api/partnerships/missing", "", "Partnership not found"},
		{http.MethodPut, "/api/social-media/missing", `{"platform":"x"}`, "Social media not found"},
		{http.MethodDelete, "/api/social-media/missing", "", "Social media not found"},
		{http.MethodPut, "/api/contact/missing/status?status=read", "", "Contact not found"},
		{http.MethodPut, "/api/streaming-status?status=offline", "", "Streaming status not found"},
	}
	for _, tc := range cases {
		w := do(g, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.Equal(t, tc.want, decodeObject(t, w)["error"], tc.path)
	}
}

func TestSocialMediaDefaultsAndCRUD(t *testing.T) {
	g := newTestRouter(t)

	w := do(g, http.MethodGet, "/api/social-media", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList(t, w)
	require.Len(t, list, 7)
	platforms := map[string]bool{}
	for _, s := range list {
		platforms[s["platform"].(string)] = true
	}
	for _, p := range []string{"Twitch", "TikTok", "Twitter", "YouTube", "Instagram", "Discord", "ClaveCD"} {
		assert.True(t, platforms[p], "missing default platform %s", p)
	}

	w = do(g, http.MethodGet, "/api/social-media", "")
	require.Len(t, decodeList(t, w), 7, "7, not 14")

	w = do(g, http.MethodPost, "/api/social-media", `{"platform":"Test","url":"not-a-valid-url","icon":"test","color":"#000000"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(g, http.MethodPost, "/api/social-media", `{"platform":"Test Platform","url":"https://testplatform.com/ladypi89","icon":"test-icon","color":"#ff6600"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := decodeObject(t, w)["id"].(string)

	w = do(g, http.MethodPut, "/api/social-media/"+id, `{"platform":"Updated Test Platform","color":"#00ff66"}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeObject(t, w)
	assert.Equal(t, "Updated Test Platform", updated["platform"])
	assert.Equal(t, "https://testplatform.com/ladypi89", updated["url"])

	w = do(g, http.MethodDelete, "/api/social-media/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(g, http.MethodDelete, "/api/social-media/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactFlow(t *testing.T) {
	g := newTestRouter(t)

	w := do(g, http.MethodPost, "/api/contact", `{"name":"Test User","email":"invalid-email","message":"Test message"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = do(g, http.MethodGet, "/api/contact", "")
	require.Empty(t, decodeList(t, w), "invalid submissions are not persisted")

	w = do(g, http.MethodPost, "/api/contact", `{"name":"María González","email":"maria.gonzalez@example.com","message":"Hola!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeObject(t, w)
	assert.Equal(t, "new", created["status"])
	id := created["id"].(string)

	w = do(g, http.MethodPut, "/api/contact/"+id+"/status?status=bogus", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(g, http.MethodGet, "/api/contact", "")
	assert.Equal(t, "new", decodeList(t, w)[0]["status"], "rejected status must not be stored")

	w = do(g, http.MethodPut, "/api/contact/"+id+"/status", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPut, "/api/contact/"+id+"/status?status=read", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeObject(t, w)["message"])
	w = do(g, http.MethodGet, "/api/contact", "")
	assert.Equal(t, "read", decodeList(t, w)[0]["status"])

	w = do(g, http.MethodPut, "/api/contact/unknown/status?status=read", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamingStatus(t *testing.T) {
	g := newTestRouter(t)

	w := do(g, http.MethodPut, "/api/streaming-status?status=streaming", "")
	require.Equal(t, http.StatusNotFound, w.Code, "update does not seed")

	w = do(g, http.MethodGet, "/api/streaming-status", "")
	require.Equal(t, http.StatusOK, w.Code)
	def := decodeObject(t, w)
	assert.Equal(t, "Twitch", def["platform"])
	assert.Equal(t, "offline", def["status"])

	w = do(g, http.MethodPut, "/api/streaming-status?status=bogus", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(g, http.MethodPut, "/api/streaming-status?status=streaming&game=Rocket%20League%20Tournament", "")
	require.Equal(t, http.StatusOK, w.Code)
	st := decodeObject(t, w)
	assert.Equal(t, "streaming", st["status"])
	assert.Equal(t, "Rocket League Tournament", st["game"])
	assert.Equal(t, def["id"], st["id"])

	w = do(g, http.MethodPut, "/api/streaming-status?status=offline", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Rocket League", decodeObject(t, w)["game"])
}
