// Package otp runs mobile verification: creating the provisional upstream
// application, verifying the code, and promoting the draft into the shared
// leads list once the backend has assigned a real application id.
package otp

import (
	"context"
	"errors"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/validation"
)

// Service errors
var (
	ErrInvalidMobile = errors.New("invalid mobile number")
	ErrNoApplication = errors.New("no application to verify")
)

type Service interface {
	StartVerification(ctx context.Context, leadID, mobile string) (string, error)
	Verify(ctx context.Context, leadID, code string) (*models.Lead, error)
	Resend(ctx context.Context, leadID string) error
}

type client interface {
	CreateApplication(ctx context.Context, mobile string) (*origination.CreateApplicationResponse, error)
	VerifyOTP(ctx context.Context, appID, code string) (*origination.VerifyOTPResponse, error)
	ResendOTP(ctx context.Context, appID string) error
}

type service struct {
	client client
	store  *leadstore.Store
}

func NewService(c client, store *leadstore.Store) Service {
	if c == nil {
		panic("origination client is required")
	}
	if store == nil {
		panic("lead store is required")
	}
	return &service{client: c, store: store}
}

// StartVerification registers the draft's mobile number upstream, which
// triggers OTP delivery, and records the provisional application id on
// the draft. The lead stays out of the shared list until Verify succeeds.
func (s *service) StartVerification(ctx context.Context, leadID, mobile string) (string, error) {
	if !validation.IsValidMobile(mobile) {
		return "", ErrInvalidMobile
	}

	resp, err := s.client.CreateApplication(ctx, mobile)
	if err != nil {
		return "", err
	}

	if _, err := s.store.UpdateLead(leadID, models.LeadUpdate{
		AppID:          &resp.ApplicationID,
		CustomerMobile: &mobile,
	}); err != nil {
		return "", err
	}
	return resp.ApplicationID, nil
}

// Verify confirms the code upstream and promotes the draft into the leads
// list with its now-real application id.
func (s *service) Verify(ctx context.Context, leadID, code string) (*models.Lead, error) {
	lead, err := s.currentDraft(leadID)
	if err != nil {
		return nil, err
	}
	if lead.AppID == "" {
		return nil, ErrNoApplication
	}

	if _, err := s.client.VerifyOTP(ctx, lead.AppID, code); err != nil {
		return nil, err
	}

	promoted := s.store.AddLeadToArray(*lead)
	return promoted, nil
}

// Resend re-triggers OTP delivery for the draft's application.
func (s *service) Resend(ctx context.Context, leadID string) error {
	lead, err := s.currentDraft(leadID)
	if err != nil {
		return err
	}
	if lead.AppID == "" {
		return ErrNoApplication
	}
	return s.client.ResendOTP(ctx, lead.AppID)
}

func (s *service) currentDraft(leadID string) (*models.Lead, error) {
	if current := s.store.CurrentLead(); current != nil && (current.ID == leadID || current.AppID == leadID) {
		return current, nil
	}
	for _, l := range s.store.Leads() {
		if l.ID == leadID || l.AppID == leadID {
			cp := l
			return &cp, nil
		}
	}
	return nil, leadstore.ErrLeadNotFound
}
