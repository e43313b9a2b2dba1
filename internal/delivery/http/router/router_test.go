package router

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	artifactService "adsbuilder/internal/application/artifact"
	"adsbuilder/internal/application/auth"
	buildService "adsbuilder/internal/application/build"
	"adsbuilder/internal/delivery/http/handler"
	"adsbuilder/internal/domain/build"
	"adsbuilder/internal/domain/bulkcsv"
	"adsbuilder/internal/infrastructure/database"
	"adsbuilder/internal/infrastructure/repository"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	artifacts, err := repository.NewFilesystemRepository(t.TempDir())
	require.NoError(t, err)

	limits := build.DefaultLimits()
	authSvc := auth.NewService(repository.NewUserRepository(db), repository.NewSessionRepository(db), time.Hour, logger)
	buildSvc := buildService.NewService(repository.NewBuildRepository(db, limits), artifacts, limits, logger)

	h := Setup(Handlers{
		Auth:     handler.NewAuthHandler(authSvc, logger),
		Build:    handler.NewBuildHandler(buildSvc, 1<<20, logger),
		Artifact: handler.NewArtifactHandler(artifactService.NewService(artifacts), logger),
	}, authSvc, []string{"*"}, logger)

	return &testServer{t: t, handler: h}
}

func (s *testServer) do(method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		require.NoError(s.t, err)
	}
	return s.do(method, path, data, "application/json")
}

// login registers a user and keeps its token for later requests
func (s *testServer) login() {
	s.t.Helper()
	rec := s.doJSON(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "ana@example.com", "username": "ana", "password": "secret1",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.doJSON(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ana@example.com", "password": "secret1",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	s.token = resp.Data.Token
}

type recordResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    build.Record `json:"data"`
}

func decodeRecord(t *testing.T, rec *httptest.ResponseRecorder) build.Record {
	t.Helper()
	var resp recordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Data
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/builds", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.token = "bogus"
	rec = s.do(http.MethodGet, "/api/builds", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.do(http.MethodGet, "/api/auth/me", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)

	rec = s.do(http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/builds", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.do(http.MethodPost, "/api/builds", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeRecord(t, rec).ID
	base := "/api/builds/" + id

	doc := `{"clientName":"ACME Corp.","campaigns":[{"settings":{"name":"Spring Sale","budget":"50","status":"Enabled","bidStrategy":"Manual CPC","searchPartners":true},"locations":"Chicago","adGroups":[{"name":"Shoes","keywords":"[running shoes]\n\"trail shoes\"","finalUrl":"https://acme.test","headlines":"Fast\nLight","descriptions":"Buy now"}]}]}`
	rec = s.do(http.MethodPut, base, []byte(doc), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ACME Corp.", decodeRecord(t, rec).ClientName)

	rec = s.do(http.MethodGet, "/api/builds", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clientName":"ACME Corp."`)

	rec = s.do(http.MethodGet, base+"/csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="google_ads_acme_corp__upload.csv"`, rec.Header().Get("Content-Disposition"))
	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, bulkcsv.Headers(), rows[0])
	assert.Len(t, rows, 6, "header, campaign, location, ad, two keywords")

	rec = s.do(http.MethodGet, base+"/json", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="acme_corp_.json"`, rec.Header().Get("Content-Disposition"))
	_, err = build.Decode(rec.Body.Bytes(), build.DefaultLimits())
	require.NoError(t, err)

	rec = s.do(http.MethodDelete, base, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, base, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildEdits(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.do(http.MethodPost, "/api/builds", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/builds/" + decodeRecord(t, rec).ID

	rec = s.do(http.MethodDelete, base+"/campaigns/0", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "you must have at least one campaign", message(t, rec))

	rec = s.do(http.MethodDelete, base+"/campaigns/0/adgroups/0", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "you must have at least one ad group", message(t, rec))

	rec = s.do(http.MethodPost, base+"/campaigns/0/extensions/call", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, base+"/campaigns/0/extensions/call", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "only 1 of this extension type is allowed", message(t, rec))

	rec = s.do(http.MethodPost, base+"/campaigns/0/extensions/banner", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, base+"/campaigns/x/adgroups", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, base+"/campaigns/3/adgroups", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, base+"/campaigns", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, base+"/campaigns/1/adgroups/0/sitelinks", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodPost, base+"/campaigns/1/adgroups/0/duplicate", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.doJSON(http.MethodPost, base+"/edit", buildService.EditOp{Action: buildService.ActionDuplicateCampaign, Campaign: 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	b := decodeRecord(t, rec).Build
	require.Len(t, b.Campaigns, 3)
	assert.Len(t, b.Campaigns[0].Extensions.Call, 1)
	assert.Len(t, b.Campaigns[2].AdGroups, 2)
	assert.Len(t, b.Campaigns[2].AdGroups[0].Sitelinks, 1)
	assert.Equal(t, " (Copy)", b.Campaigns[2].AdGroups[1].Name)

	rec = s.do(http.MethodDelete, base+"/campaigns/1/adgroups/0/sitelinks/0", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, base+"/campaigns/0/extensions/call/0", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, base+"/campaigns/0/extensions/call/0", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.doJSON(http.MethodPost, base+"/edit", map[string]string{"action": "explode"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplace_ParseError(t *testing.T) {
	s := newTestServer(t)
	s.login()

	rec := s.do(http.MethodPost, "/api/builds", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/builds/" + decodeRecord(t, rec).ID

	rec = s.do(http.MethodPut, base, []byte(`{"campaigns":`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, message(t, rec), "error reading or parsing the build file")

	rec = s.do(http.MethodGet, base, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeRecord(t, rec).Build.Campaigns, 1)
}

func TestImportMultipartAndPublish(t *testing.T) {
	s := newTestServer(t)
	s.login()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "acme.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"clientName":"Acme","campaigns":[{"settings":{"name":"Brand"},"adGroups":[{"name":"G"}]}]}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := s.do(http.MethodPost, "/api/builds/import", body.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeRecord(t, rec).ID

	rec = s.do(http.MethodPost, "/api/builds/"+id+"/publish", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/artifacts", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), id+"/acme.json")
	assert.Contains(t, rec.Body.String(), id+"/google_ads_acme_upload.csv")

	rec = s.do(http.MethodGet, "/api/artifacts/download/"+id+"/google_ads_acme_upload.csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Campaign,Campaign status"))

	rec = s.do(http.MethodGet, "/api/artifacts/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalFiles":2`)

	rec = s.do(http.MethodDelete, "/api/artifacts/"+id+"/acme.json", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/artifacts/download/"+id+"/acme.json", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
