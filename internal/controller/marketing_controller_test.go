package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sterlingcover/leadgen-backend/internal/controller"
	"github.com/sterlingcover/leadgen-backend/internal/mailer"
	"github.com/sterlingcover/leadgen-backend/internal/model"
	"github.com/sterlingcover/leadgen-backend/internal/service"
)

// --- Mocks ---

type StubUnsubscribeRepo struct {
	mu      sync.Mutex
	records map[string]*model.Unsubscribe
}

func newStubUnsubscribeRepo() *StubUnsubscribeRepo {
	return &StubUnsubscribeRepo{records: map[string]*model.Unsubscribe{}}
}

func (m *StubUnsubscribeRepo) Insert(u *model.Unsubscribe) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := m.records[key]; ok {
		return false, nil
	}
	m.records[key] = u
	return true, nil
}

func (m *StubUnsubscribeRepo) GetByEmail(email string) (*model.Unsubscribe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[strings.ToLower(email)], nil
}

func (m *StubUnsubscribeRepo) ListEmails() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emails := []string{}
	for e := range m.records {
		emails = append(emails, e)
	}
	return emails, nil
}

type StubContactRepo struct{}

func (m *StubContactRepo) GetByEmail(email string) (*model.Contact, error) { return nil, nil }
func (m *StubContactRepo) ListSubscribed() ([]model.Contact, error)        { return nil, nil }
func (m *StubContactRepo) MarkUnsubscribed(email string) error             { return nil }

type StubCampaignRepo struct{}

func (m *StubCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	return []*model.Campaign{}, 0, nil
}
func (m *StubCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	return &model.Campaign{ID: id, Status: "draft"}, nil
}
func (m *StubCampaignRepo) UpdateStatus(campaignID int, status string) error { return nil }
func (m *StubCampaignRepo) Create(c *model.Campaign) error                   { return nil }
func (m *StubCampaignRepo) Finish(campaignID, sentCount int, status string) error {
	return nil
}
func (m *StubCampaignRepo) CreateRecipient(campaignID int, email, name string) error { return nil }
func (m *StubCampaignRepo) UpdateRecipientStatus(campaignID int, email, status, lastError string, sentAt *time.Time) error {
	return nil
}
func (m *StubCampaignRepo) GetRecipient(campaignID int, email string) (*model.Recipient, error) {
	return nil, nil
}
func (m *StubCampaignRepo) ListRecipients(campaignID int) ([]model.Recipient, error) {
	return []model.Recipient{}, nil
}
func (m *StubCampaignRepo) GetCampaignStats(campaignID int) (map[string]int, error) {
	return map[string]int{}, nil
}

type StubMailer struct{}

func (m *StubMailer) Send(ctx context.Context, email *mailer.Email) error { return nil }

func newMarketingController() (*controller.MarketingController, *StubUnsubscribeRepo) {
	unsubRepo := newStubUnsubscribeRepo()
	return &controller.MarketingController{
		CampaignService: &service.CampaignService{
			CampaignRepo:       &StubCampaignRepo{},
			UnsubscribeRepo:    unsubRepo,
			ContactRepo:        &StubContactRepo{},
			Mailer:             &StubMailer{},
			UnsubscribeBaseURL: "https://example.com/unsubscribe",
			BatchSize:          10,
			BatchDelay:         time.Millisecond,
		},
		UnsubscribeService: &service.UnsubscribeService{
			UnsubscribeRepo: unsubRepo,
			ContactRepo:     &StubContactRepo{},
		},
	}, unsubRepo
}

// --- Tests ---

func TestUnsubscribeViaGetLink(t *testing.T) {
	ctrl, _ := newMarketingController()

	req := httptest.NewRequest("GET", "/unsubscribe?email=ann%40x.com&reason=too+frequent", nil)
	w := httptest.NewRecorder()

	ctrl.Unsubscribe(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["success"] != true {
		t.Errorf("expected success, got %v", res)
	}
}

func TestUnsubscribeSecondCallReportsAlready(t *testing.T) {
	ctrl, _ := newMarketingController()

	body, _ := json.Marshal(map[string]string{"email": "ann@x.com"})
	req := httptest.NewRequest("POST", "/unsubscribe", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.Unsubscribe(w, req)

	req2 := httptest.NewRequest("POST", "/unsubscribe", bytes.NewReader(body))
	w2 := httptest.NewRecorder()
	ctrl.Unsubscribe(w2, req2)

	var res map[string]interface{}
	if err := json.NewDecoder(w2.Result().Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["alreadyUnsubscribed"] != true {
		t.Errorf("expected alreadyUnsubscribed, got %v", res)
	}
}

func TestUnsubscribeRequiresEmail(t *testing.T) {
	ctrl, _ := newMarketingController()

	req := httptest.NewRequest("GET", "/unsubscribe", nil)
	w := httptest.NewRecorder()
	ctrl.Unsubscribe(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Result().StatusCode)
	}

	var res map[string]interface{}
	json.NewDecoder(w.Result().Body).Decode(&res)
	msg, _ := res["message"].(string)
	if !strings.Contains(msg, "email") {
		t.Errorf("error should name the missing field, got %q", msg)
	}
}

func TestSendCampaignValidatesBody(t *testing.T) {
	ctrl, _ := newMarketingController()

	cases := []struct {
		name    string
		body    map[string]interface{}
		missing string
	}{
		{"no campaign id", map[string]interface{}{
			"templateContent": "Hi",
			"recipients":      []map[string]string{{"email": "a@x.com"}},
		}, "campaignId"},
		{"no template", map[string]interface{}{
			"campaignId": 1,
			"recipients": []map[string]string{{"email": "a@x.com"}},
		}, "templateContent"},
		{"no recipients", map[string]interface{}{
			"campaignId":      1,
			"templateContent": "Hi",
		}, "recipients"},
	}

	for _, tc := range cases {
		b, _ := json.Marshal(tc.body)
		req := httptest.NewRequest("POST", "/send-campaign", bytes.NewReader(b))
		w := httptest.NewRecorder()
		ctrl.SendCampaign(w, req)

		if w.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Result().StatusCode)
			continue
		}
		var res map[string]interface{}
		json.NewDecoder(w.Result().Body).Decode(&res)
		msg, _ := res["message"].(string)
		if !strings.Contains(msg, tc.missing) {
			t.Errorf("%s: error should name %s, got %q", tc.name, tc.missing, msg)
		}
	}
}

func TestSendCampaignReturnsResults(t *testing.T) {
	ctrl, unsubRepo := newMarketingController()
	unsubRepo.Insert(&model.Unsubscribe{Email: "gone@x.com"})

	body, _ := json.Marshal(map[string]interface{}{
		"campaignId":      1,
		"templateContent": "Hi {name}",
		"recipients": []map[string]string{
			{"email": "a@x.com", "name": "A"},
			{"email": "gone@x.com", "name": "B"},
			{"email": "c@x.com", "name": "C"},
		},
	})
	req := httptest.NewRequest("POST", "/send-campaign", bytes.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.SendCampaign(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var res struct {
		Success bool `json:"success"`
		Results struct {
			Sent    int `json:"sent"`
			Failed  int `json:"failed"`
			Skipped int `json:"skipped"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !res.Success {
		t.Error("expected success")
	}
	if res.Results.Sent != 2 || res.Results.Skipped != 1 || res.Results.Failed != 0 {
		t.Errorf("expected sent=2 skipped=1 failed=0, got %+v", res.Results)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := controller.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/send-campaign", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected allow-all origin, got %q", resp.Header.Get("Access-Control-Allow-Origin"))
	}
	body := w.Body.String()
	if body != "" {
		t.Errorf("preflight should have no body, got %q", body)
	}
}
