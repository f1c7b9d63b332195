package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andesmarket/storefront-gateway/internal/core/domain"
	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

type fixedSessionStore struct {
	session *domain.Session
}

func (s *fixedSessionStore) Get(_ context.Context) (*domain.Session, error) {
	if s.session == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s.session, nil
}

func (s *fixedSessionStore) Set(_ context.Context, sess domain.Session) error {
	s.session = &sess
	return nil
}

func (s *fixedSessionStore) Clear(_ context.Context) error {
	s.session = nil
	return nil
}

func customerSession() *fixedSessionStore {
	return &fixedSessionStore{session: &domain.Session{
		AccessToken: "tok-abc",
		Role:        domain.RoleCustomer,
		Username:    "alice",
	}}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, store ports.SessionStore) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, store, zerolog.Nop()), srv
}

func TestClient_Login_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "alice@example.com" || body["password"] != "secret" {
			t.Errorf("unexpected payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "tok-abc",
			"rol":          "cliente",
			"usuario":      "alice",
		})
	}, &fixedSessionStore{})

	res, err := client.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccessToken != "tok-abc" || res.Role != "cliente" || res.Username != "alice" {
		t.Errorf("unexpected login result: %+v", res)
	}
}

func TestClient_Login_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciales inválidas"})
	}, &fixedSessionStore{})

	_, err := client.Login(context.Background(), "ghost@example.com", "pw")
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if !be.Unauthorized() {
		t.Errorf("expected unauthorized signal, got status %d", be.StatusCode)
	}
	if be.Detail != "Credenciales inválidas" {
		t.Errorf("expected backend detail, got %q", be.Detail)
	}
}

func TestClient_Register_SendsRolePayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/usuarios/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["username"] != "bob" || body["rol"] != "cliente" {
			t.Errorf("unexpected payload: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}, &fixedSessionStore{})

	if err := client.Register(context.Background(), "bob@example.com", "pw", "bob", "cliente"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Register_DuplicateDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "El correo ya está registrado."})
	}, &fixedSessionStore{})

	err := client.Register(context.Background(), "bob@example.com", "pw", "bob", "cliente")
	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if be.Detail != "El correo ya está registrado." {
		t.Errorf("unexpected detail: %q", be.Detail)
	}
}

func TestClient_Rate_CarriesBearerToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/divisas/USD" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"valor": 912.37})
	}, customerSession())

	rate, err := client.Rate(context.Background(), "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 912.37 {
		t.Errorf("expected 912.37, got %v", rate)
	}
}

func TestClient_Rate_NoSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("request must not be issued without a session")
	}, &fixedSessionStore{})

	_, err := client.Rate(context.Background(), "USD")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestClient_Rate_BackendFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, customerSession())

	_, err := client.Rate(context.Background(), "EUR")
	if !errors.Is(err, domain.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestClient_Rate_NonPositiveValue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"valor": 0})
	}, customerSession())

	_, err := client.Rate(context.Background(), "EUR")
	if !errors.Is(err, domain.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, &fixedSessionStore{}, zerolog.Nop())
	srv.Close() // connection refused from here on

	_, err := client.Login(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestClient_SendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contacto/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["mensaje"] != "hola" || body["usuario"] != "alice" {
			t.Errorf("unexpected payload: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}, customerSession())

	err := client.SendMessage(context.Background(), domain.ContactMessage{Body: "hola", Username: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_InitTransaction(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/webpay/iniciar" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["buy_order"] != "ORD-1" || body["amount"] != float64(14990) {
			t.Errorf("unexpected payload: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://webpay.example/start", "token": "tx-9"})
	}, customerSession())

	redirect, err := client.InitTransaction(context.Background(), ports.PaymentRequest{
		BuyOrder:  "ORD-1",
		SessionID: "alice",
		Amount:    14990,
		ReturnURL: "https://shop.example/pago-exitoso",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if redirect.URL != "https://webpay.example/start" || redirect.Token != "tx-9" {
		t.Errorf("unexpected redirect: %+v", redirect)
	}
}
