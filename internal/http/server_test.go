package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hoso/internal/core"
	"hoso/internal/services"
	"hoso/internal/store"
)

func newTestServer(t *testing.T, initial []core.VehicleRecord) *Server {
	t.Helper()
	st := store.New(store.NewMemoryKV(0), initial)
	svc := services.NewRecordService(st, nil)
	srv := NewServer(":0", svc)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func postForm(srv *Server, path string, values url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postMultipart(t *testing.T, srv *Server, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/records", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t, store.Seed())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Quản lý hồ sơ xe") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestRecordListFiltering(t *testing.T) {
	srv := newTestServer(t, store.Seed())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/records", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("records status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Nguyễn Văn A") || !strings.Contains(body, "Phạm Thị E") {
		t.Fatalf("expected seeded records in body")
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/records?q="+url.QueryEscape("Nguyễn"), nil)
	srv.Handler.ServeHTTP(rr, req)
	body = rr.Body.String()
	if !strings.Contains(body, "Nguyễn Văn A") {
		t.Fatalf("query should match Nguyễn Văn A")
	}
	if strings.Contains(body, "Phạm Thị E") {
		t.Fatalf("query should not match Phạm Thị E")
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/records?bucket=Completed", nil)
	srv.Handler.ServeHTTP(rr, req)
	if strings.Contains(rr.Body.String(), "record-card") {
		t.Fatalf("no seeded record is completed, list should be empty")
	}
}

func TestRecordFormDefaultsAndVisibility(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/record-form?category="+url.QueryEscape("Xe cũ"), nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("form status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "entry_cost") {
		t.Fatalf("Xe cũ form should expose cost fields")
	}
	if strings.Contains(body, "mica_fee") || strings.Contains(body, "tax_images") {
		t.Fatalf("Xe cũ form should hide fee and document fields")
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/record-form?category="+url.QueryEscape("Honda PT"), nil)
	srv.Handler.ServeHTTP(rr, req)
	body = rr.Body.String()
	if !strings.Contains(body, "mica_fee") || !strings.Contains(body, "tax_images") {
		t.Fatalf("Honda PT form should expose fee and document fields")
	}
	if strings.Contains(body, "entry_cost") {
		t.Fatalf("Honda PT form should hide cost fields")
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ui/record-form?category=Unknown", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown category should get 422, got %d", rr.Code)
	}
}

func TestSaveRecordValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := postMultipart(t, srv, map[string]string{
		"category":     "Honda PT",
		"vehicle_type": "Honda Vision",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing customer name should get 422, got %d", rr.Code)
	}

	rr = postMultipart(t, srv, map[string]string{
		"category":      "Honda PT",
		"customer_name": "Lê Văn B",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing vehicle type should get 422, got %d", rr.Code)
	}
}

func TestSaveThenEditRecord(t *testing.T) {
	srv := newTestServer(t, nil)

	rr := postMultipart(t, srv, map[string]string{
		"category":      "Honda PT",
		"customer_name": "Lê Văn B",
		"vehicle_type":  "Honda Vision 2023",
		"mica_fee":      "50000",
		"service_fee":   "500000",
	})
	if rr.Code != 200 {
		t.Fatalf("save status=%d body=%s", rr.Code, rr.Body.String())
	}
	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger header: %v", err)
	}
	if _, ok := triggers["record:saved"]; !ok {
		t.Fatalf("expected record:saved trigger, got %v", triggers)
	}

	records := srv.records.List()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	saved := records[0]
	if got := core.Profit(saved).Dong; got != 550_000 {
		t.Fatalf("profit = %d, want 550000", got)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/records", nil)
	srv.Handler.ServeHTTP(rr, req)
	if !strings.Contains(rr.Body.String(), "550.000") {
		t.Fatalf("record list should show profit 550.000, body=%s", rr.Body.String())
	}

	// Whole-record replace through the edit path: id and category stay put.
	rr = postMultipart(t, srv, map[string]string{
		"id":            saved.ID,
		"customer_name": "Lê Văn B",
		"vehicle_type":  "Honda Vision 2023",
		"mica_fee":      "50000",
		"service_fee":   "600000",
	})
	if rr.Code != 200 {
		t.Fatalf("edit status=%d body=%s", rr.Code, rr.Body.String())
	}

	records = srv.records.List()
	if len(records) != 1 {
		t.Fatalf("edit should not add a record, got %d", len(records))
	}
	edited := records[0]
	if edited.ID != saved.ID {
		t.Fatalf("edit changed id: %s -> %s", saved.ID, edited.ID)
	}
	if got := core.Profit(edited).Dong; got != 650_000 {
		t.Fatalf("profit after edit = %d, want 650000", got)
	}
}

func TestDeleteRecord(t *testing.T) {
	seed := store.Seed()
	srv := newTestServer(t, seed)

	rr := postForm(srv, "/records/delete", url.Values{"id": {seed[0].ID}})
	if rr.Code != 200 {
		t.Fatalf("delete status=%d", rr.Code)
	}
	if len(srv.records.List()) != len(seed)-1 {
		t.Fatalf("record not removed")
	}

	rr = postForm(srv, "/records/delete", url.Values{"id": {"no-such-id"}})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown id should get 404, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/delete", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestStatsPartial(t *testing.T) {
	srv := newTestServer(t, store.Seed())

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/stats", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("stats status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, category := range []string{"Honda PT", "Xe cũ", "Xe ngoài"} {
		if !strings.Contains(body, category) {
			t.Fatalf("stats missing category %q", category)
		}
	}
	if !strings.Contains(body, "Xuất báo cáo") {
		t.Fatalf("stats missing export button")
	}
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t, store.Seed())

	rr := postForm(srv, "/export", url.Values{})
	if rr.Code != 200 {
		t.Fatalf("export status=%d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "show-notification") {
		t.Fatalf("export should trigger a notification")
	}
}

func TestUploadOnSave(t *testing.T) {
	srv := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"category":      "Honda PT",
		"customer_name": "Lê Văn B",
		"vehicle_type":  "Honda Vision",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("tax_images", "tax.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	if _, err := io.Copy(fw, bytes.NewReader(pngHeader)); err != nil {
		t.Fatalf("copy image: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/records", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("save with upload status=%d body=%s", rr.Code, rr.Body.String())
	}

	records := srv.records.List()
	if len(records) != 1 || len(records[0].TaxImages) != 1 {
		t.Fatalf("expected one tax image on saved record")
	}
	if !strings.HasPrefix(records[0].TaxImages[0], "data:image/png;base64,") {
		t.Fatalf("tax image should be a png data URI, got %q", records[0].TaxImages[0][:30])
	}
}
