// Package pincode resolves postal codes to city/state through the
// origination API, with a Redis cache in front: pincode data changes
// rarely and every address form hits this lookup.
package pincode

import (
	"context"
	"errors"
	"log"
	"time"

	"origo/internal/origination"
	"origo/internal/repositories/cache"
	"origo/internal/validation"
)

var ErrInvalidPincode = errors.New("pincode must be 6 digits")

const cacheTTL = 24 * time.Hour

// Result is a resolved postal code.
type Result struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type Service interface {
	Lookup(ctx context.Context, code string) (*Result, error)
}

type client interface {
	LookupPincode(ctx context.Context, pincode string) (*origination.PincodeResponse, error)
}

type service struct {
	client client
	cache  *cache.CacheService
}

// NewService creates the lookup service. cache may be nil to bypass
// caching entirely.
func NewService(c client, cacheService *cache.CacheService) Service {
	if c == nil {
		panic("origination client is required")
	}
	return &service{client: c, cache: cacheService}
}

func (s *service) Lookup(ctx context.Context, code string) (*Result, error) {
	if !validation.IsValidPincode(code) {
		return nil, ErrInvalidPincode
	}

	if s.cache != nil {
		var cached Result
		key := s.cache.GenerateKey("pincode", "code", code)
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	resp, err := s.client.LookupPincode(ctx, code)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Pincode: resp.Pincode,
		City:    resp.City,
		State:   resp.State,
	}
	if result.Pincode == "" {
		result.Pincode = code
	}

	if s.cache != nil {
		key := s.cache.GenerateKey("pincode", "code", code)
		if err := s.cache.SetWithTTL(ctx, key, result, cacheTTL); err != nil {
			log.Printf("failed to cache pincode %s: %v", code, err)
		}
	}
	return result, nil
}
