package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-donor-connect/internal/router"
)

func TestHTTP_EndToEnd_ConnectAndMatch(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	aliceID := "alice-1"
	bobID := "bob-1"

	// 1) Bob registra su mascota con coordenadas guardadas
	petID := createPet(t, ts.URL, bobID, map[string]any{
		"name":       "Luna",
		"species":    "dog",
		"breed":      "mixed",
		"sex":        "female",
		"blood_type": "dea_1.1_positive",
		"weight_kg":  22.5,
		"lat":        14.6,
		"lng":        121.0,
	})

	// 2) Alice ve a Luna en el mapa de donantes
	{
		st, body := doReq(t, ts.URL, "GET", "/nearby/pets?lat=14.61&lng=121.0&radius_km=5", aliceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 nearby, got %d body=%s", st, string(body))
		}
		var markers []struct {
			PetID       string `json:"pet_id"`
			OwnerUserID string `json:"owner_user_id"`
		}
		_ = json.Unmarshal(body, &markers)
		if len(markers) != 1 || markers[0].PetID != petID || markers[0].OwnerUserID != bobID {
			t.Fatalf("expected Luna as only marker, got %s", string(body))
		}
	}

	// 3) Alice manda solicitud de conexión por Luna
	{
		st, body := doReq(t, ts.URL, "POST", "/connections", aliceID, map[string]any{
			"recipient_user_id": bobID,
			"pet_id":            petID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create connection, got %d body=%s", st, string(body))
		}
	}

	// 4) La solicitud duplicada del mismo par se rechaza
	{
		st, _ := doReq(t, ts.URL, "POST", "/connections", aliceID, map[string]any{
			"recipient_user_id": bobID,
			"pet_id":            petID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate connection, got %d", st)
		}
	}

	// 5) Conectarse con uno mismo se rechaza
	{
		st, _ := doReq(t, ts.URL, "POST", "/connections", aliceID, map[string]any{
			"recipient_user_id": aliceID,
			"pet_id":            petID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 self connection, got %d", st)
		}
	}

	// 6) Bob recibe la notificación
	requestNoteID := ""
	{
		st, body := doReq(t, ts.URL, "GET", "/notifications", bobID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list notifications, got %d body=%s", st, string(body))
		}
		var notes []struct {
			ID           string `json:"id"`
			SenderUserID string `json:"sender_user_id"`
		}
		_ = json.Unmarshal(body, &notes)
		if len(notes) != 1 || notes[0].SenderUserID != aliceID {
			t.Fatalf("expected one notification from alice, got %s", string(body))
		}
		requestNoteID = notes[0].ID
	}

	// 7) Bob confirma y nace el match
	matchID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/matches/confirm", bobID, map[string]any{
			"sender_user_id": aliceID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 confirm match, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" {
			t.Fatalf("confirm match: missing id body=%s", string(body))
		}
		matchID = resp.ID
	}

	// 8) Confirmar de nuevo (en cualquier dirección) se rechaza
	{
		st, _ := doReq(t, ts.URL, "POST", "/matches/confirm", bobID, map[string]any{
			"sender_user_id": aliceID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 re-confirm, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", "/matches/confirm", aliceID, map[string]any{
			"sender_user_id": bobID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 reverse confirm, got %d", st)
		}
	}

	// 9) Alice ve el match con Bob y las mascotas de Bob
	{
		st, body := doReq(t, ts.URL, "GET", "/matches", aliceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list matches, got %d body=%s", st, string(body))
		}
		var details []struct {
			MatchID     string `json:"match_id"`
			Counterpart struct {
				ID string `json:"id"`
			} `json:"counterpart"`
			Pets []struct {
				ID string `json:"id"`
			} `json:"pets"`
		}
		_ = json.Unmarshal(body, &details)
		if len(details) != 1 || details[0].MatchID != matchID {
			t.Fatalf("expected one match, got %s", string(body))
		}
		if details[0].Counterpart.ID != bobID {
			t.Fatalf("expected counterpart bob, got %s", string(body))
		}
		if len(details[0].Pets) != 1 || details[0].Pets[0].ID != petID {
			t.Fatalf("expected Luna in counterpart pets, got %s", string(body))
		}
	}

	// 10) Alice recibe la notificación de aceptación
	{
		st, body := doReq(t, ts.URL, "GET", "/notifications", aliceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list notifications, got %d body=%s", st, string(body))
		}
		var notes []struct {
			SenderUserID string `json:"sender_user_id"`
		}
		_ = json.Unmarshal(body, &notes)
		if len(notes) != 1 || notes[0].SenderUserID != bobID {
			t.Fatalf("expected acceptance notification from bob, got %s", string(body))
		}
	}

	// 11) La solicitud de Alice quedó confirmada
	{
		st, body := doReq(t, ts.URL, "GET", "/connections/sent", aliceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list sent, got %d body=%s", st, string(body))
		}
		var sent []struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &sent)
		if len(sent) != 1 || sent[0].Status != "confirmed" {
			t.Fatalf("expected one confirmed request, got %s", string(body))
		}
	}

	// 12) Descartar una notificación es idempotente
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/notifications/"+requestNoteID, bobID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dismiss, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/notifications/"+requestNoteID, bobID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dismiss again, got %d", st)
		}
	}

	// 13) Bob corta el vínculo unilateralmente; desaparece para ambos
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/matches/"+matchID, bobID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 remove match, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/matches", aliceID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list matches after removal, got %d", st)
		}
		var details []any
		_ = json.Unmarshal(body, &details)
		if len(details) != 0 {
			t.Fatalf("expected no matches after removal, got %s", string(body))
		}
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// Sin X-Debug-User-ID no hay claims => 401
	st, _ := doReq(t, ts.URL, "GET", "/matches", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}

	// /health queda abierto sin identidad
	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

func TestHTTP_RemoveMatch_OnlyParticipants(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "bob-1", map[string]any{
		"name":    "Milo",
		"species": "cat",
	})
	_, _ = doReq(t, ts.URL, "POST", "/connections", "alice-1", map[string]any{
		"recipient_user_id": "bob-1",
		"pet_id":            petID,
	})
	st, body := doReq(t, ts.URL, "POST", "/matches/confirm", "bob-1", map[string]any{
		"sender_user_id": "alice-1",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 confirm, got %d body=%s", st, string(body))
	}
	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)

	// Un tercero no puede romper el match ajeno
	st, _ = doReq(t, ts.URL, "DELETE", "/matches/"+resp.ID, "carol-1", nil)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 removing foreign match, got %d", st)
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}
