package mailer

import (
	"context"
	"strings"
	"testing"
)

func TestSMTPSenderRequiresConfiguration(t *testing.T) {
	s := NewSMTPSender("", "587", "", "")

	err := s.Send(context.Background(), &Email{To: "a@x.com", Subject: "Hi", HTML: "<p>Hi</p>"})
	if err == nil {
		t.Fatal("expected an error when SMTP host is missing")
	}
	if !strings.Contains(err.Error(), "SMTP host") {
		t.Errorf("error should name the missing setting, got %v", err)
	}
}

func TestSMTPSenderRequiresRecipient(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "user", "pass")

	if err := s.Send(context.Background(), &Email{Subject: "Hi", HTML: "<p>Hi</p>"}); err == nil {
		t.Error("expected an error for a missing recipient")
	}
}
