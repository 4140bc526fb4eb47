package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dungenlab/dungen/pkg/pipeline"
	"github.com/dungenlab/dungen/pkg/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewServer(pipeline.NewRunner(nil, nil, logger), st, logger)
}

func generateBody() *bytes.Buffer {
	return bytes.NewBufferString(`{
		"name": "crypt",
		"config": {"min_room_size": 3, "max_room_size": 5, "room_spread": 2, "cells_x": 2, "cells_z": 2},
		"seed": 7
	}`)
}

func TestHealthz(t *testing.T) {
	router := testServer(t).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGenerate(t *testing.T) {
	router := testServer(t).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/floorplans", generateBody()))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("archived plan should carry an ID")
	}
	if resp.Rooms != 4 || resp.Connections != 4 {
		t.Errorf("rooms=%d connections=%d, want 4/4", resp.Rooms, resp.Connections)
	}
	if resp.PlanHash == "" || len(resp.Plan) == 0 {
		t.Error("response missing plan hash or payload")
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	router := testServer(t).Router()

	for name, body := range map[string]string{
		"malformed json": `{`,
		"invalid config": `{"config": {"min_room_size": 5, "max_room_size": 5, "room_spread": 1, "cells_x": 1, "cells_z": 1}}`,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/floorplans", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, rec.Code)
		}
		var env errorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Errorf("%s: error body not JSON: %v", name, err)
		} else if env.Error.Code == "" {
			t.Errorf("%s: error body missing code", name)
		}
	}
}

func TestGetListDelete(t *testing.T) {
	router := testServer(t).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/floorplans", generateBody()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d: %s", rec.Code, rec.Body.String())
	}
	var created generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Get
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/floorplans/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if got.Name != "crypt" || got.Seed != 7 {
		t.Errorf("record = %+v", got)
	}

	// List
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/floorplans", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var summaries []store.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != created.ID {
		t.Errorf("summaries = %+v", summaries)
	}

	// Delete
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/floorplans/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/floorplans/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestGetUnknownPlan(t *testing.T) {
	router := testServer(t).Router()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/floorplans/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PLAN_NOT_FOUND") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRenderEndpoint(t *testing.T) {
	router := testServer(t).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/floorplans", generateBody()))
	var created generateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// ASCII artifact: text rows of tile glyphs.
	url := fmt.Sprintf("/v1/floorplans/%s/render?format=ascii", created.ID)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), "#") {
		t.Error("ascii artifact should contain floor glyphs")
	}

	// DOT artifact: the undirected room graph.
	url = fmt.Sprintf("/v1/floorplans/%s/render?format=dot", created.ID)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("render dot status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "graph G {") {
		t.Error("dot artifact should contain a graph header")
	}

	// Unknown format.
	url = fmt.Sprintf("/v1/floorplans/%s/render?format=bmp", created.ID)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("render bmp status = %d, want 400", rec.Code)
	}
}
