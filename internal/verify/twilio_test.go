package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTwilioStartVerification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/Services/VAxxx/Verifications") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if r.PostForm.Get("To") != "+15551234567" {
			t.Errorf("expected To=+15551234567, got %s", r.PostForm.Get("To"))
		}
		if r.PostForm.Get("Channel") != "sms" {
			t.Errorf("expected Channel=sms, got %s", r.PostForm.Get("Channel"))
		}
		w.Write([]byte(`{"sid":"VE123","status":"pending"}`))
	}))
	defer srv.Close()

	p := NewTwilioProvider("AC123", "token")
	p.baseURL = srv.URL

	sid, err := p.StartVerification(context.Background(), "+15551234567", "VAxxx")
	if err != nil {
		t.Fatalf("StartVerification failed: %v", err)
	}
	if sid != "VE123" {
		t.Errorf("expected sid VE123, got %s", sid)
	}
}

func TestTwilioCheckVerification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sid":"VE123","status":"approved"}`))
	}))
	defer srv.Close()

	p := NewTwilioProvider("AC123", "token")
	p.baseURL = srv.URL

	status, err := p.CheckVerification(context.Background(), "+15551234567", "123456", "VAxxx")
	if err != nil {
		t.Fatalf("CheckVerification failed: %v", err)
	}
	if status != "approved" {
		t.Errorf("expected approved, got %s", status)
	}
}

func TestTwilioSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":20003,"message":"Authentication Error"}`))
	}))
	defer srv.Close()

	p := NewTwilioProvider("AC123", "bad-token")
	p.baseURL = srv.URL

	_, err := p.StartVerification(context.Background(), "+15551234567", "VAxxx")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Authentication Error") {
		t.Errorf("error should carry the provider message, got %v", err)
	}
}
