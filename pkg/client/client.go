package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"redress/pkg/types"

	"github.com/go-playground/form/v4"
)

const DefaultBaseURL = "http://localhost:5001/api"

var encoder = form.NewEncoder()

// Client is the service layer frontends use to talk to the grievance
// API. It performs no retries; failures surface as wrapped errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type Health struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UptimeSec int64     `json:"uptime_sec"`
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, fmt.Errorf("check health: %w", err)
	}
	return &out, nil
}

type grievanceEnvelope struct {
	Message string           `json:"message"`
	Data    *types.Grievance `json:"data"`
}

func (c *Client) SubmitGrievance(ctx context.Context, in types.SubmitGrievance) (*types.Grievance, error) {
	var out grievanceEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/grievances", in, &out); err != nil {
		return nil, fmt.Errorf("submit grievance: %w", err)
	}
	return out.Data, nil
}

func (c *Client) Grievances(ctx context.Context, filter types.GrievanceFilter) ([]*types.Grievance, error) {
	path := "/grievances"
	if !filter.Empty() {
		values, err := encoder.Encode(filter)
		if err != nil {
			return nil, fmt.Errorf("encode grievance filter: %w", err)
		}
		path += "?" + compactQuery(values).Encode()
	}

	var out []*types.Grievance
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list grievances: %w", err)
	}
	return out, nil
}

func (c *Client) Grievance(ctx context.Context, grievanceID string) (*types.Grievance, error) {
	var out types.Grievance
	if err := c.doJSON(ctx, http.MethodGet, "/grievances/"+url.PathEscape(grievanceID), nil, &out); err != nil {
		return nil, fmt.Errorf("fetch grievance %s: %w", grievanceID, err)
	}
	return &out, nil
}

func (c *Client) UpdateStatus(ctx context.Context, grievanceID string, status types.GrievanceStatus) (*types.Grievance, error) {
	body := map[string]types.GrievanceStatus{"status": status}

	var out grievanceEnvelope
	err := c.doJSON(ctx, http.MethodPatch, "/grievances/"+url.PathEscape(grievanceID)+"/status", body, &out)
	if err != nil {
		return nil, fmt.Errorf("update grievance status: %w", err)
	}
	return out.Data, nil
}

// UploadFile names one file in an Upload call.
type UploadFile struct {
	Name     string
	Contents io.Reader
}

type uploadEnvelope struct {
	Message string             `json:"message"`
	Files   []types.Attachment `json:"files"`
}

func (c *Client) Upload(ctx context.Context, grievanceID, description string, files []UploadFile) ([]types.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("grievanceId", grievanceID); err != nil {
		return nil, fmt.Errorf("write grievance id field: %w", err)
	}
	if description != "" {
		if err := mw.WriteField("description", description); err != nil {
			return nil, fmt.Errorf("write description field: %w", err)
		}
	}

	for _, file := range files {
		part, err := mw.CreateFormFile("files", filepath.Base(file.Name))
		if err != nil {
			return nil, fmt.Errorf("create form file %s: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Contents); err != nil {
			return nil, fmt.Errorf("copy file %s: %w", file.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out uploadEnvelope
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("upload files: %w", err)
	}
	return out.Files, nil
}

type filesEnvelope struct {
	Files []types.Attachment `json:"files"`
}

func (c *Client) Files(ctx context.Context, grievanceID string) ([]types.Attachment, error) {
	var out filesEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+url.PathEscape(grievanceID), nil, &out); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return out.Files, nil
}

// Download streams a stored file. The caller must close the returned
// reader.
func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/download/"+url.PathEscape(fileID), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file %s: %w", fileID, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", fmt.Errorf("download file %s: %w", fileID, decodeAPIError(resp))
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/files/"+url.PathEscape(fileID), nil, nil); err != nil {
		return fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	var apiErr types.APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return &apiErr
}

// compactQuery drops empty values so zero filter fields don't show up
// as empty query parameters.
func compactQuery(values url.Values) url.Values {
	out := url.Values{}
	for key, vals := range values {
		for _, v := range vals {
			if v != "" {
				out.Add(key, v)
			}
		}
	}
	return out
}
