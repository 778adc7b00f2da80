// internal/service/conversion_service.go
package service

import (
	"context"

	"github.com/sterlingcover/leadgen-backend/internal/ads"
)

// ConversionSink is what an ad-platform client must implement.
type ConversionSink interface {
	SendEvent(ctx context.Context, eventName string, eventData map[string]interface{}, user ads.UserData) error
}

// ConversionService forwards conversion events to the ad platforms.
// Upstream failures are reported to the caller but treated as handled:
// a lost conversion event must never break the signup flow.
type ConversionService struct {
	Facebook ConversionSink
	Google   ConversionSink
}

func (s *ConversionService) ForwardFacebook(ctx context.Context, eventName string, eventData map[string]interface{}, user ads.UserData) error {
	return s.Facebook.SendEvent(ctx, eventName, eventData, user)
}

func (s *ConversionService) ForwardGoogle(ctx context.Context, eventName string, eventData map[string]interface{}, user ads.UserData) error {
	return s.Google.SendEvent(ctx, eventName, eventData, user)
}
