package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peervault/peervault/internal/inventory/db"
	"github.com/peervault/peervault/internal/inventory/events"
	"github.com/peervault/peervault/internal/inventory/store"
	"github.com/peervault/peervault/internal/inventory/transfer"
	pkgapi "github.com/peervault/peervault/pkg/api"
	"github.com/peervault/peervault/pkg/crypto"
	applogger "github.com/peervault/peervault/pkg/logger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	_, st := db.NewTestDB(t)
	peers := store.NewPeerRepository(st)
	groups := store.NewGroupRepository(st)

	log := applogger.NewDevelopment("api-test")
	keys := transfer.KeyProvisionerFunc(crypto.GenerateKeyPair)

	importer := transfer.NewImporter(peers, groups, keys, log)
	exporter := transfer.NewExporter(peers, groups, log)
	bus := events.NewInventoryEventBus(log.Unwrap())
	t.Cleanup(func() { _ = bus.Close() })

	return NewServer(DefaultConfig(), log, peers, groups, keys, importer, exporter, bus)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var resp pkgapi.Response[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success, "expected success response, got: %s", rec.Body.String())
	require.NotNil(t, resp.Data)
	return *resp.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *pkgapi.ErrorInfo {
	t.Helper()

	var resp pkgapi.Response[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var status healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
}

func TestCreatePeerGeneratesKeyPair(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: "laptop"})
	require.Equal(t, http.StatusCreated, rec.Code)

	p := decodeData[pkgapi.Peer](t, rec)
	assert.Equal(t, "laptop", p.Name)
	assert.True(t, crypto.IsValidKey(p.PublicKey))
	require.NotNil(t, p.PrivateKey, "generated private key must be returned on creation")
	assert.True(t, crypto.IsValidKey(*p.PrivateKey))
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "10.0.0.2/32", p.AllowedIPs)
	assert.Equal(t, "1.1.1.1", p.DNS)
	assert.Equal(t, 25, p.PersistentKeepalive)
}

func TestCreatePeerWithSuppliedKey(t *testing.T) {
	handler := newTestServer(t).Handler()

	pair, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{
		Name:      "desktop",
		PublicKey: &pair.PublicKey,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	p := decodeData[pkgapi.Peer](t, rec)
	assert.Equal(t, pair.PublicKey, p.PublicKey)
	assert.Nil(t, p.PrivateKey, "supplied keys never echo a private key")
}

func TestCreatePeerDuplicateNameConflicts(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: "laptop"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: "LAPTOP"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	errInfo := decodeError(t, rec)
	assert.Equal(t, "peer_conflict", errInfo.Code)
	assert.NotEmpty(t, errInfo.RequestID)
}

func TestCreatePeerValidation(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	badKey := "not-a-key"
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{
		Name:      "ok",
		PublicKey: &badKey,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndDeletePeer(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: "laptop"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeData[pkgapi.Peer](t, rec)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/peers/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeData[pkgapi.Peer](t, rec)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Nil(t, fetched.PrivateKey, "private keys are never returned after creation")

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/peers/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/peers/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPeersSortedByName(t *testing.T) {
	handler := newTestServer(t).Handler()

	for _, name := range []string{"zulu", "Alpha", "mike"} {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/peers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	peers := decodeData[[]pkgapi.Peer](t, rec)
	require.Len(t, peers, 3)
	assert.Equal(t, "Alpha", peers[0].Name)
	assert.Equal(t, "mike", peers[1].Name)
	assert.Equal(t, "zulu", peers[2].Name)
}

func TestGroupLifecycle(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/groups", pkgapi.CreateGroupRequest{Name: "office", Color: "#ff0000"})
	require.Equal(t, http.StatusCreated, rec.Code)
	g := decodeData[pkgapi.Group](t, rec)
	assert.Equal(t, "office", g.Name)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/groups", pkgapi.CreateGroupRequest{Name: "Office"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/groups", nil)
	groups := decodeData[[]pkgapi.Group](t, rec)
	assert.Len(t, groups, 1)

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/groups/"+g.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestExportHeadersAndBody(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: "laptop"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Peers-Count"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var bundle transfer.Bundle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bundle))
	assert.Equal(t, transfer.BundleVersion, bundle.Version)
	require.Len(t, bundle.Peers, 1)
	assert.Equal(t, "laptop", bundle.Peers[0].Name)
}

func TestImportReportsPerRecordResults(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{Name: "existing"})
	require.Equal(t, http.StatusCreated, rec.Code)

	bundle := map[string]any{
		"version": transfer.BundleVersion,
		"peers": []map[string]any{
			{"name": "fresh"},
			{"name": "Existing"},
		},
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/import", bundle)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeData[pkgapi.ImportResponse](t, rec)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Success)
	assert.Equal(t, "fresh", resp.Results[0].Name)
	assert.False(t, resp.Results[1].Success)
	assert.Equal(t, "Peer with this name already exists", resp.Results[1].Error)
}

func TestImportRejectsInvalidBundle(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errInfo := decodeError(t, rec)
	assert.Equal(t, "bundle_invalid", errInfo.Code)
}

func TestExportImportRoundTrip(t *testing.T) {
	handler := newTestServer(t).Handler()

	for i := 0; i < 3; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/peers", pkgapi.CreatePeerRequest{
			Name: fmt.Sprintf("peer-%d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.Bytes()

	// Into a fresh inventory every record lands.
	fresh := newTestServer(t).Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(exported))
	importRec := httptest.NewRecorder()
	fresh.ServeHTTP(importRec, req)
	require.Equal(t, http.StatusOK, importRec.Code)

	resp := decodeData[pkgapi.ImportResponse](t, importRec)
	assert.Equal(t, 3, resp.Succeeded)
	assert.Equal(t, 0, resp.Failed)
}
