package ads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHashIdentifierNormalizes(t *testing.T) {
	// sha256("test@example.com")
	want := "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b"

	if got := HashIdentifier("test@example.com"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if got := HashIdentifier("  TEST@Example.COM  "); got != want {
		t.Errorf("normalization broken: got %s", got)
	}
	if got := HashIdentifier("   "); got != "" {
		t.Errorf("blank input should hash to empty, got %s", got)
	}
}

func TestFacebookClientHashesUserData(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		w.Write([]byte(`{"events_received":1}`))
	}))
	defer srv.Close()

	c := NewFacebookClient("12345", "token")
	c.baseURL = srv.URL

	err := c.SendEvent(context.Background(), "Lead", map[string]interface{}{"value": 10}, UserData{
		Email: "Test@Example.com",
		Phone: "+15551234567",
	})
	if err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	data := received["data"].([]interface{})
	event := data[0].(map[string]interface{})
	userData := event["user_data"].(map[string]interface{})

	if userData["em"] != HashIdentifier("test@example.com") {
		t.Errorf("email not hashed as expected: %v", userData["em"])
	}
	if userData["ph"] != HashIdentifier("+15551234567") {
		t.Errorf("phone not hashed as expected: %v", userData["ph"])
	}
	if event["event_name"] != "Lead" {
		t.Errorf("expected event_name Lead, got %v", event["event_name"])
	}
}

func TestFacebookClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
	}))
	defer srv.Close()

	c := NewFacebookClient("12345", "token")
	c.baseURL = srv.URL

	err := c.SendEvent(context.Background(), "Lead", nil, UserData{Email: "a@x.com"})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestGoogleAdsClientRequiresConfiguration(t *testing.T) {
	c := NewGoogleAdsClient("", "", "")
	if err := c.SendEvent(context.Background(), "signup", nil, UserData{}); err == nil {
		t.Error("expected a configuration error")
	}
}

func TestGoogleAdsClientUploadsHashedIdentifiers(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("developer-token") != "devtoken" {
			t.Errorf("missing developer token header")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewGoogleAdsClient("111", "222", "devtoken")
	c.baseURL = srv.URL

	err := c.SendEvent(context.Background(), "signup", nil, UserData{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	conversions := received["conversions"].([]interface{})
	conv := conversions[0].(map[string]interface{})
	identifiers := conv["userIdentifiers"].([]interface{})
	first := identifiers[0].(map[string]interface{})

	if first["hashedEmail"] != HashIdentifier("a@x.com") {
		t.Errorf("email not hashed as expected: %v", first["hashedEmail"])
	}
}
