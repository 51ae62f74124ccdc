package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hostel-complaint-server/models"
)

// HTTPClient talks to a remote ledger gateway over JSON/HTTP. Any transport
// failure or gateway 5xx is reported as ErrUnavailable; the gateway's 404 is
// mapped to ErrNotFound. No retries happen here.
type HTTPClient struct {
	BaseURL string
	client  *http.Client
}

// NewHTTPClient creates a ledger client against baseURL. The timeout bounds
// each round-trip in addition to whatever deadline the caller's context
// carries.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type createPayload struct {
	Submitter string `json:"submitter"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	BlockName string `json:"block_name"`
	FloorNo   int    `json:"floor_no"`
	RoomNo    string `json:"room_no,omitempty"`
}

type createResponse struct {
	ID uint64 `json:"id"`
}

type setStatusPayload struct {
	Status         models.ComplaintStatus `json:"status"`
	ActingIdentity string                 `json:"acting_identity"`
}

type reviewPayload struct {
	Satisfied      bool   `json:"satisfied"`
	Feedback       string `json:"feedback,omitempty"`
	ActingIdentity string `json:"acting_identity"`
}

// Create appends a new complaint and returns the ledger-assigned id.
func (hc *HTTPClient) Create(ctx context.Context, submitter string, req models.ComplaintCreate) (uint64, error) {
	payload := createPayload{
		Submitter: submitter,
		Text:      req.Text,
		Category:  req.Category,
		BlockName: req.BlockName,
		FloorNo:   req.FloorNo,
		RoomNo:    req.RoomNo,
	}

	var resp createResponse
	if err := hc.do(ctx, http.MethodPost, "/complaints", payload, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

// ListAll returns every complaint on the ledger, ordered by ascending id.
func (hc *HTTPClient) ListAll(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := hc.do(ctx, http.MethodGet, "/complaints", nil, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

// SetStatus changes a complaint's status on behalf of actingIdentity.
func (hc *HTTPClient) SetStatus(ctx context.Context, id uint64, status models.ComplaintStatus, actingIdentity string) error {
	path := fmt.Sprintf("/complaints/%d/status", id)
	return hc.do(ctx, http.MethodPost, path, setStatusPayload{Status: status, ActingIdentity: actingIdentity}, nil)
}

// SubmitReview records the submitter's verdict on a completed complaint.
func (hc *HTTPClient) SubmitReview(ctx context.Context, id uint64, satisfied bool, feedback string, actingIdentity string) error {
	path := fmt.Sprintf("/complaints/%d/review", id)
	payload := reviewPayload{Satisfied: satisfied, Feedback: feedback, ActingIdentity: actingIdentity}
	return hc.do(ctx, http.MethodPost, path, payload, nil)
}

// do performs one round-trip against the gateway and decodes the response
// into out when out is non-nil.
func (hc *HTTPClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, hc.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: gateway returned %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("ledger rejected request with status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
	}
	return nil
}
