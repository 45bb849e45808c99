// Package origination is the typed client for the upstream loan-origination
// REST API. The API is consumed, not designed, here: payloads are decoded
// defensively and a missing sub-object is never treated as an error.
package origination

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to the origination backend over JSON-over-HTTPS with a
// bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an origination API client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// GetApplicationSummary fetches the lightweight application list plus the
// aggregate dashboard counts.
func (c *Client) GetApplicationSummary(ctx context.Context) (*SummaryResponse, error) {
	var out SummaryResponse
	if err := c.get(ctx, "/applications/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetApplicationDetails fetches the full detail payload for one application.
func (c *Client) GetApplicationDetails(ctx context.Context, appID string) (*DetailResponse, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}
	var out DetailResponse
	if err := c.get(ctx, "/applications/"+appID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateApplication registers a new application for the mobile number and
// triggers OTP delivery. The returned application id is provisional until
// VerifyOTP succeeds.
func (c *Client) CreateApplication(ctx context.Context, mobile string) (*CreateApplicationResponse, error) {
	if mobile == "" {
		return nil, ErrMissingMobile
	}
	body := map[string]string{"mobile_number": mobile}
	var out CreateApplicationResponse
	if err := c.post(ctx, "/applications", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms the applicant's mobile number.
func (c *Client) VerifyOTP(ctx context.Context, appID, code string) (*VerifyOTPResponse, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}
	body := map[string]string{"otp": code}
	var out VerifyOTPResponse
	if err := c.post(ctx, "/applications/"+appID+"/verify-otp", body, &out); err != nil {
		return nil, err
	}
	if !out.Verified {
		return nil, ErrInvalidOTP
	}
	return &out, nil
}

// ResendOTP asks the backend to re-deliver the verification code.
func (c *Client) ResendOTP(ctx context.Context, appID string) error {
	if appID == "" {
		return ErrMissingAppID
	}
	return c.post(ctx, "/applications/"+appID+"/resend-otp", struct{}{}, nil)
}

// SubmitPersonalInfo persists step 1/2 data upstream.
func (c *Client) SubmitPersonalInfo(ctx context.Context, appID string, info *PersonalInfo) (*SubmitAck, error) {
	return c.submit(ctx, appID, "/personal-info", info)
}

// SubmitAddressDetails persists the primary applicant's addresses upstream.
func (c *Client) SubmitAddressDetails(ctx context.Context, appID string, info *AddressInfo) (*SubmitAck, error) {
	return c.submit(ctx, appID, "/address-details", info)
}

// SubmitCoApplicantAddressDetails persists a co-applicant's addresses.
func (c *Client) SubmitCoApplicantAddressDetails(ctx context.Context, appID, coAppID string, info *AddressInfo) (*SubmitAck, error) {
	if coAppID == "" {
		return nil, &APIError{Status: http.StatusBadRequest, Message: "co-applicant id is required"}
	}
	return c.submit(ctx, appID, "/co-applicants/"+coAppID+"/address-details", info)
}

// SubmitEmploymentDetails persists step 4 data upstream.
func (c *Client) SubmitEmploymentDetails(ctx context.Context, appID string, info *EmploymentInfo) (*SubmitAck, error) {
	return c.submit(ctx, appID, "/employment-details", info)
}

// SubmitCollateralDetails persists step 6 data upstream.
func (c *Client) SubmitCollateralDetails(ctx context.Context, appID string, info *CollateralInfo) (*SubmitAck, error) {
	return c.submit(ctx, appID, "/collateral-details", info)
}

// SubmitLoanTerms persists step 7 data upstream.
func (c *Client) SubmitLoanTerms(ctx context.Context, appID string, info *LoanInfo) (*SubmitAck, error) {
	return c.submit(ctx, appID, "/loan-terms", info)
}

// SubmitApplication finalizes the application upstream. The local status
// transition to Submitted is the store's job, not this call's.
func (c *Client) SubmitApplication(ctx context.Context, appID string) (*SubmitAck, error) {
	return c.submit(ctx, appID, "/submit", struct{}{})
}

// UploadDocument sends a captured document as multipart form data.
func (c *Client) UploadDocument(ctx context.Context, appID, kind, filename string, data []byte) (*UploadDocumentResponse, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("kind", kind); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/applications/"+appID+"/documents", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	var out UploadDocumentResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LookupPincode resolves a 6-digit postal code to city and state.
func (c *Client) LookupPincode(ctx context.Context, pincode string) (*PincodeResponse, error) {
	var out PincodeResponse
	if err := c.get(ctx, "/pincode/"+pincode, &out); err != nil {
		return nil, err
	}
	if out.City == "" && out.State == "" {
		return nil, ErrPincodeUnknown
	}
	return &out, nil
}

// FetchBREQuestions retrieves the rule-engine questionnaire for an
// application.
func (c *Client) FetchBREQuestions(ctx context.Context, appID string) (*BREQuestionsResponse, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}
	var out BREQuestionsResponse
	if err := c.get(ctx, "/applications/"+appID+"/bre/questions", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TriggerBRE starts a rule-engine evaluation.
func (c *Client) TriggerBRE(ctx context.Context, appID string) (*BREResultResponse, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}
	var out BREResultResponse
	if err := c.post(ctx, "/applications/"+appID+"/bre/trigger", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitBREAnswers sends the officer's questionnaire answers and returns
// the resulting decision.
func (c *Client) SubmitBREAnswers(ctx context.Context, appID string, answers map[string]string) (*BREResultResponse, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}
	body := map[string]interface{}{"answers": answers}
	var out BREResultResponse
	if err := c.post(ctx, "/applications/"+appID+"/bre/answers", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) submit(ctx context.Context, appID, suffix string, body interface{}) (*SubmitAck, error) {
	if appID == "" {
		return nil, ErrMissingAppID
	}
	var out SubmitAck
	if err := c.post(ctx, "/applications/"+appID+suffix, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("origination api error (status %d)", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
