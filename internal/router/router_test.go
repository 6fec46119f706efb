package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/router"
)

const adminEmail = "admin@shelter.org"

type identity struct {
	id    string
	email string
}

var (
	admin   = identity{id: "admin-1", email: adminEmail}
	adopter = identity{id: "user-1", email: "ana@example.com"}
	other   = identity{id: "user-2", email: "bob@example.com"}
	anon    = identity{}
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AdminEmail: adminEmail,
		Metrics:    metrics.New(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_AdoptionFlow(t *testing.T) {
	ts := newServer(t)

	// 1) Admin publica a Rex
	petID := createPet(t, ts.URL, map[string]any{
		"name":   "Rex",
		"breed":  "Labrador",
		"age":    3,
		"images": []string{"https://img.example/rex.jpg"},
	})
	if got := petStatus(t, ts.URL, petID); got != "available" {
		t.Fatalf("expected available, got %s", got)
	}

	// 2) Usuario envía solicitud intentando forzar status
	appID := submitApplication(t, ts.URL, adopter, petID, map[string]any{"status": "approved"})
	{
		st, body := doReq(t, ts.URL, "GET", "/me/applications", adopter, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing my applications, got %d body=%s", st, string(body))
		}
		var apps []map[string]any
		mustJSON(t, body, &apps)
		if len(apps) != 1 || apps[0]["status"] != "pending" {
			t.Fatalf("expected one pending application, got %v", apps)
		}
	}
	if got := petStatus(t, ts.URL, petID); got != "available" {
		t.Fatalf("submitting must not touch the pet, got %s", got)
	}

	// 3) Ni anónimo ni usuario común pueden aprobar
	{
		st, _ := doReq(t, ts.URL, "POST", "/admin/applications/"+appID+"/status", anon, map[string]any{"status": "approved"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for anonymous, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/admin/applications/"+appID+"/status", adopter, map[string]any{"status": "approved"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for non-admin, got %d", st)
		}
	}

	// 4) Admin aprueba => mascota adopted
	{
		st, body := doReq(t, ts.URL, "POST", "/admin/applications/"+appID+"/status", admin, map[string]any{"status": "approved"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approving, got %d body=%s", st, string(body))
		}
		var resp struct {
			Application struct {
				Status string `json:"status"`
			} `json:"application"`
		}
		mustJSON(t, body, &resp)
		if resp.Application.Status != "approved" {
			t.Fatalf("expected approved, got %s", resp.Application.Status)
		}
	}
	if got := petStatus(t, ts.URL, petID); got != "adopted" {
		t.Fatalf("expected adopted after approval, got %s", got)
	}

	// 5) Estados terminales
	{
		st, _ := doReq(t, ts.URL, "POST", "/admin/applications/"+appID+"/status", admin, map[string]any{"status": "rejected"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on terminal application, got %d", st)
		}
	}

	// 6) Una segunda solicitud para Rex se puede crear y aprobar
	second := submitApplication(t, ts.URL, other, petID, nil)
	{
		st, body := doReq(t, ts.URL, "POST", "/admin/applications/"+second+"/status", admin, map[string]any{"status": "approved"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approving second application, got %d body=%s", st, string(body))
		}
	}
	if got := petStatus(t, ts.URL, petID); got != "adopted" {
		t.Fatalf("expected adopted, got %s", got)
	}

	// 7) Admin ve todas con la mascota embebida
	{
		st, body := doReq(t, ts.URL, "GET", "/admin/applications?include=pet", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing applications, got %d body=%s", st, string(body))
		}
		var apps []struct {
			ID  string `json:"id"`
			Pet *struct {
				Name string `json:"name"`
			} `json:"pet"`
		}
		mustJSON(t, body, &apps)
		if len(apps) != 2 {
			t.Fatalf("expected 2 applications, got %d", len(apps))
		}
		if apps[0].ID != second {
			t.Fatalf("expected newest first")
		}
		for _, a := range apps {
			if a.Pet == nil || a.Pet.Name != "Rex" {
				t.Fatalf("expected embedded pet Rex, got %+v", a.Pet)
			}
		}
	}

	// 8) Un usuario común no ve la lista de admin
	{
		st, _ := doReq(t, ts.URL, "GET", "/admin/applications", adopter, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", st)
		}
	}

	// 9) Reconciliación sin tareas pendientes
	{
		st, body := doReq(t, ts.URL, "POST", "/admin/reconcile", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reconcile, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_PetValidationAndFilters(t *testing.T) {
	ts := newServer(t)

	{
		st, body := doReq(t, ts.URL, "POST", "/admin/pets", admin, map[string]any{
			"name": "NoPics", "breed": "Mixed", "age": 2, "images": []string{},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty images, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "POST", "/admin/pets", admin, map[string]any{
			"name": "Neg", "breed": "Mixed", "age": -1, "images": []string{"https://img.example/n.jpg"},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for negative age, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/admin/pets", adopter, map[string]any{
			"name": "Sneaky", "breed": "Mixed", "age": 1, "images": []string{"https://img.example/s.jpg"},
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 creating pet as non-admin, got %d", st)
		}
	}

	createPet(t, ts.URL, map[string]any{"name": "Luna", "breed": "Beagle", "age": 1, "images": []string{"https://img.example/l.jpg"}})
	time.Sleep(2 * time.Millisecond)
	createPet(t, ts.URL, map[string]any{"name": "Max", "breed": "Golden Retriever", "age": 4, "images": []string{"https://img.example/m.jpg"}, "status": "pending"})

	{
		st, body := doReq(t, ts.URL, "GET", "/pets?q=golden", anon, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0]["name"] != "Max" {
			t.Fatalf("expected only Max, got %v", list)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets?status=available", anon, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0]["name"] != "Luna" {
			t.Fatalf("expected only Luna, got %v", list)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/does-not-exist", anon, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", st)
		}
	}
}

func TestHTTP_ProfileAndAuthGuards(t *testing.T) {
	ts := newServer(t)

	{
		st, _ := doReq(t, ts.URL, "GET", "/me/profile", anon, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/applications", anon, map[string]any{})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 submitting without identity, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/me/profile", admin, map[string]any{"fullName": "Shelter Admin"})
		if st != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", st, string(body))
		}
		var p map[string]any
		mustJSON(t, body, &p)
		if p["isAdmin"] != true || p["email"] != adminEmail {
			t.Fatalf("expected admin profile, got %v", p)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/auth/me", adopter, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var me map[string]any
		mustJSON(t, body, &me)
		if me["isAdmin"] != false {
			t.Fatalf("expected non-admin, got %v", me)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", anon, map[string]any{"email": "a@b.co", "password": "whatever123"})
		if st != http.StatusNotImplemented {
			t.Fatalf("expected 501 in dev mode, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", anon, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/metrics", anon, nil)
		if st != http.StatusOK || !bytes.Contains(body, []byte("pet_adoption_adoptions_cascade_failures_total")) {
			t.Fatalf("expected metrics exposition, got %d", st)
		}
	}
}

// ---- helpers ----

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/admin/pets", admin, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating pet, got %d body=%s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	if out.ID == "" {
		t.Fatalf("expected pet id")
	}
	return out.ID
}

func petStatus(t *testing.T, baseURL, petID string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/pets/"+petID, anon, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 getting pet, got %d body=%s", st, string(body))
	}
	var p struct {
		Status string `json:"status"`
	}
	mustJSON(t, body, &p)
	return p.Status
}

func submitApplication(t *testing.T, baseURL string, who identity, petID string, extra map[string]any) string {
	t.Helper()
	payload := map[string]any{
		"petId":             petID,
		"fullName":          "Ana Pérez",
		"email":             who.email,
		"phone":             "555-0100",
		"address":           "Calle 1",
		"hasOtherPets":      false,
		"reasonForAdoption": "Tengo patio grande",
	}
	for k, v := range extra {
		payload[k] = v
	}
	st, body := doReq(t, baseURL, "POST", "/applications", who, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 submitting application, got %d body=%s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path string, who identity, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who.id != "" {
		req.Header.Set(middleware.HeaderDebugUserID, who.id)
		req.Header.Set(middleware.HeaderDebugUserEmail, who.email)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, string(b))
	}
}
