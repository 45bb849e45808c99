package origination

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetApplicationSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/applications/summary", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(SummaryResponse{
			Applications:      []SummaryItem{{ApplicationID: "APP-1", FirstName: "Asha"}},
			TotalApplications: 1,
			DraftApplications: 1,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")
	out, err := client.GetApplicationSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Applications, 1)
	assert.Equal(t, "APP-1", out.Applications[0].ApplicationID)
	assert.Equal(t, 1, out.TotalApplications)
}

func TestClient_GetApplicationDetails(t *testing.T) {
	t.Run("missing app id fails before the wire", func(t *testing.T) {
		client := NewClient("http://unused", "t")
		_, err := client.GetApplicationDetails(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingAppID)
	})

	t.Run("partial payloads decode without error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/applications/APP-1", r.URL.Path)
			w.Write([]byte(`{"application_id":"APP-1","loan_info":{"amount":500000}}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "t")
		out, err := client.GetApplicationDetails(context.Background(), "APP-1")
		require.NoError(t, err)
		assert.Nil(t, out.PersonalInfo)
		require.NotNil(t, out.LoanInfo)
		assert.Equal(t, float64(500000), out.LoanInfo.Amount)
	})
}

func TestClient_VerifyOTP(t *testing.T) {
	t.Run("verified response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/applications/APP-1/verify-otp", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "123456", body["otp"])
			json.NewEncoder(w).Encode(VerifyOTPResponse{ApplicationID: "APP-1", Verified: true})
		}))
		defer srv.Close()

		out, err := NewClient(srv.URL, "t").VerifyOTP(context.Background(), "APP-1", "123456")
		require.NoError(t, err)
		assert.True(t, out.Verified)
	})

	t.Run("unverified maps to invalid otp", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(VerifyOTPResponse{ApplicationID: "APP-1", Verified: false})
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "t").VerifyOTP(context.Background(), "APP-1", "000000")
		assert.ErrorIs(t, err, ErrInvalidOTP)
	})
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("401 maps to the unauthorized sentinel", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "bad").GetApplicationSummary(context.Background())
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("structured errors keep status and message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"tenure exceeds product limit"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "t").SubmitLoanTerms(context.Background(), "APP-1", &LoanInfo{})
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "tenure exceeds product limit", apiErr.Message)
	})

	t.Run("unstructured error bodies get a generic message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>upstream exploded</html>"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "t").GetApplicationSummary(context.Background())
		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Contains(t, apiErr.Message, "status 502")
	})
}

func TestClient_UploadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/applications/APP-1/documents", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "pan_card", r.FormValue("kind"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "pan.jpg", header.Filename)

		json.NewEncoder(w).Encode(UploadDocumentResponse{DocumentID: "DOC-1", Reference: "ref-1"})
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, "t").UploadDocument(context.Background(), "APP-1", "pan_card", "pan.jpg", []byte("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t, "DOC-1", out.DocumentID)
}

func TestClient_LookupPincode(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pincode/560001", r.URL.Path)
			json.NewEncoder(w).Encode(PincodeResponse{Pincode: "560001", City: "Bengaluru", State: "Karnataka"})
		}))
		defer srv.Close()

		out, err := NewClient(srv.URL, "t").LookupPincode(context.Background(), "560001")
		require.NoError(t, err)
		assert.Equal(t, "Bengaluru", out.City)
	})

	t.Run("empty result maps to unknown pincode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(PincodeResponse{Pincode: "999999"})
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "t").LookupPincode(context.Background(), "999999")
		assert.ErrorIs(t, err, ErrPincodeUnknown)
	})
}
