package otp

import (
	"context"
	"testing"

	"origo/internal/leadstore"
	"origo/internal/origination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOriginationClient struct {
	mock.Mock
}

func (m *MockOriginationClient) CreateApplication(ctx context.Context, mobile string) (*origination.CreateApplicationResponse, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*origination.CreateApplicationResponse), args.Error(1)
}

func (m *MockOriginationClient) VerifyOTP(ctx context.Context, appID, code string) (*origination.VerifyOTPResponse, error) {
	args := m.Called(ctx, appID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*origination.VerifyOTPResponse), args.Error(1)
}

func (m *MockOriginationClient) ResendOTP(ctx context.Context, appID string) error {
	return m.Called(ctx, appID).Error(0)
}

// stubStoreClient satisfies the store's read interface so background
// refreshes after promotion are harmless in tests.
type stubStoreClient struct{}

func (stubStoreClient) GetApplicationSummary(ctx context.Context) (*origination.SummaryResponse, error) {
	return &origination.SummaryResponse{}, nil
}

func (stubStoreClient) GetApplicationDetails(ctx context.Context, appID string) (*origination.DetailResponse, error) {
	return &origination.DetailResponse{}, nil
}

func TestService_StartVerification(t *testing.T) {
	t.Run("records the provisional app id on the draft", func(t *testing.T) {
		client := new(MockOriginationClient)
		store := leadstore.NewStore(stubStoreClient{}, nil)
		svc := NewService(client, store)

		draft := store.CreateLead()
		client.On("CreateApplication", mock.Anything, "9876543210").
			Return(&origination.CreateApplicationResponse{ApplicationID: "APP-1", OTPSent: true}, nil)

		appID, err := svc.StartVerification(context.Background(), draft.ID, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, "APP-1", appID)

		current := store.CurrentLead()
		require.NotNil(t, current)
		assert.Equal(t, "APP-1", current.AppID)
		assert.Equal(t, "9876543210", current.CustomerMobile)
		assert.Empty(t, store.Leads(), "the draft is not promoted by start alone")
		client.AssertExpectations(t)
	})

	t.Run("rejects malformed mobile numbers before the wire", func(t *testing.T) {
		client := new(MockOriginationClient)
		store := leadstore.NewStore(stubStoreClient{}, nil)
		svc := NewService(client, store)

		_, err := svc.StartVerification(context.Background(), "any", "12345")
		assert.ErrorIs(t, err, ErrInvalidMobile)
		client.AssertNotCalled(t, "CreateApplication")
	})
}

func TestService_Verify(t *testing.T) {
	t.Run("promotes the draft into the leads list", func(t *testing.T) {
		client := new(MockOriginationClient)
		store := leadstore.NewStore(stubStoreClient{}, nil)
		svc := NewService(client, store)

		draft := store.CreateLead()
		client.On("CreateApplication", mock.Anything, "9876543210").
			Return(&origination.CreateApplicationResponse{ApplicationID: "APP-1"}, nil)
		_, err := svc.StartVerification(context.Background(), draft.ID, "9876543210")
		require.NoError(t, err)

		client.On("VerifyOTP", mock.Anything, "APP-1", "123456").
			Return(&origination.VerifyOTPResponse{ApplicationID: "APP-1", Verified: true}, nil)

		lead, err := svc.Verify(context.Background(), draft.ID, "123456")
		require.NoError(t, err)
		assert.Equal(t, "APP-1", lead.AppID)
		require.Len(t, store.Leads(), 1)
		client.AssertExpectations(t)
	})

	t.Run("refuses verification before start", func(t *testing.T) {
		client := new(MockOriginationClient)
		store := leadstore.NewStore(stubStoreClient{}, nil)
		svc := NewService(client, store)

		draft := store.CreateLead()
		_, err := svc.Verify(context.Background(), draft.ID, "123456")
		assert.ErrorIs(t, err, ErrNoApplication)
	})

	t.Run("invalid code keeps the draft unpromoted", func(t *testing.T) {
		client := new(MockOriginationClient)
		store := leadstore.NewStore(stubStoreClient{}, nil)
		svc := NewService(client, store)

		draft := store.CreateLead()
		client.On("CreateApplication", mock.Anything, "9876543210").
			Return(&origination.CreateApplicationResponse{ApplicationID: "APP-1"}, nil)
		_, err := svc.StartVerification(context.Background(), draft.ID, "9876543210")
		require.NoError(t, err)

		client.On("VerifyOTP", mock.Anything, "APP-1", "000000").
			Return(nil, origination.ErrInvalidOTP)

		_, err = svc.Verify(context.Background(), draft.ID, "000000")
		assert.ErrorIs(t, err, origination.ErrInvalidOTP)
		assert.Empty(t, store.Leads())
	})

	t.Run("unknown lead", func(t *testing.T) {
		client := new(MockOriginationClient)
		store := leadstore.NewStore(stubStoreClient{}, nil)
		svc := NewService(client, store)

		_, err := svc.Verify(context.Background(), "missing", "123456")
		assert.ErrorIs(t, err, leadstore.ErrLeadNotFound)
	})
}

func TestService_Resend(t *testing.T) {
	client := new(MockOriginationClient)
	store := leadstore.NewStore(stubStoreClient{}, nil)
	svc := NewService(client, store)

	draft := store.CreateLead()
	assert.ErrorIs(t, svc.Resend(context.Background(), draft.ID), ErrNoApplication)

	client.On("CreateApplication", mock.Anything, "9876543210").
		Return(&origination.CreateApplicationResponse{ApplicationID: "APP-1"}, nil)
	_, err := svc.StartVerification(context.Background(), draft.ID, "9876543210")
	require.NoError(t, err)

	client.On("ResendOTP", mock.Anything, "APP-1").Return(nil)
	assert.NoError(t, svc.Resend(context.Background(), draft.ID))
	client.AssertExpectations(t)
}
