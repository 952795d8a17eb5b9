package tuteliq

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the review state of an incident report.
type ReportStatus string

const (
	ReportStatusOpen        ReportStatus = "open"
	ReportStatusUnderReview ReportStatus = "under_review"
	ReportStatusResolved    ReportStatus = "resolved"
	ReportStatusDismissed   ReportStatus = "dismissed"
)

// ReportPriority orders reports in the review queue.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "low"
	ReportPriorityMedium ReportPriority = "medium"
	ReportPriorityHigh   ReportPriority = "high"
	ReportPriorityUrgent ReportPriority = "urgent"
)

// Report is an incident report filed for flagged content.
type Report struct {
	ID          string           `json:"id"`
	Status      ReportStatus     `json:"status"`
	Priority    ReportPriority   `json:"priority"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	ChildID     string           `json:"child_id,omitempty"`
	ContentRef  string           `json:"content_ref,omitempty"`
	RiskLevel   RiskLevel        `json:"risk_level,omitempty"`
	Metadata    map[string]Value `json:"metadata,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	ResolvedAt  time.Time        `json:"resolved_at,omitzero"`
}

// CreateReportRequest files a new incident report.
type CreateReportRequest struct {
	// Category names the incident type, e.g. "bullying", "grooming".
	Category string `json:"category"`
	// Description is free text for the reviewer.
	Description string `json:"description,omitempty"`
	// Priority defaults to medium when empty.
	Priority ReportPriority `json:"priority,omitempty"`
	// ChildID is your identifier for the child involved.
	ChildID string `json:"child_id,omitempty"`
	// ContentRef points at the offending content in your system.
	ContentRef string `json:"content_ref,omitempty"`
	// Metadata is stored with the report.
	Metadata map[string]Value `json:"metadata,omitempty"`
}

// CreateReport files a new incident report. Each call carries a generated
// Idempotency-Key header so a retried submission never creates a duplicate.
func (c *Client) CreateReport(ctx context.Context, req *CreateReportRequest) (*Report, error) {
	if req == nil || req.Category == "" {
		return nil, errors.New("tuteliq: report category is required")
	}
	data, err := c.do(ctx, requestParams{
		method:  http.MethodPost,
		path:    "/reports",
		body:    req,
		headers: map[string]string{"Idempotency-Key": uuid.NewString()},
	})
	if err != nil {
		return nil, err
	}
	var report Report
	if err := decodeResponse(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReport retrieves a report by id.
func (c *Client) GetReport(ctx context.Context, reportID string) (*Report, error) {
	if reportID == "" {
		return nil, errors.New("tuteliq: report id is required")
	}
	data, err := c.execute(ctx, http.MethodGet, "/reports/"+reportID, nil, nil)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := decodeResponse(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReportsQuery filters and paginates ListReports.
type ListReportsQuery struct {
	// Status restricts results to one review state.
	Status ReportStatus
	// Page is 1-based; zero means the first page.
	Page int
	// PageSize defaults to the server's page size when zero.
	PageSize int
}

// ListReportsResponse is one page of reports.
type ListReportsResponse struct {
	Reports    []Report `json:"reports"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int      `json:"total_count"`
}

// ListReports lists reports, newest first.
func (c *Client) ListReports(ctx context.Context, q *ListReportsQuery) (*ListReportsResponse, error) {
	query := url.Values{}
	if q != nil {
		if q.Status != "" {
			query.Set("status", string(q.Status))
		}
		if q.Page > 0 {
			query.Set("page", strconv.Itoa(q.Page))
		}
		if q.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(q.PageSize))
		}
	}
	data, err := c.execute(ctx, http.MethodGet, "/reports", nil, query)
	if err != nil {
		return nil, err
	}
	var resp ListReportsResponse
	if err := decodeResponse(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateReportStatus moves a report to a new review state.
func (c *Client) UpdateReportStatus(ctx context.Context, reportID string, status ReportStatus) (*Report, error) {
	if reportID == "" {
		return nil, errors.New("tuteliq: report id is required")
	}
	body := struct {
		Status ReportStatus `json:"status"`
	}{Status: status}
	data, err := c.execute(ctx, http.MethodPatch, "/reports/"+reportID+"/status", body, nil)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := decodeResponse(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// DeleteReport permanently deletes a report.
func (c *Client) DeleteReport(ctx context.Context, reportID string) error {
	if reportID == "" {
		return errors.New("tuteliq: report id is required")
	}
	_, err := c.execute(ctx, http.MethodDelete, "/reports/"+reportID, nil, nil)
	return err
}

// Evidence is a file attached to a report.
type Evidence struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	Filename  string    `json:"filename"`
	MIMEType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachEvidenceRequest uploads an evidence file (screenshot, audio clip) to
// an existing report.
type AttachEvidenceRequest struct {
	// Filename names the uploaded file; its extension selects the MIME type.
	Filename string
	// Data is the raw file bytes.
	Data []byte
	// Note is an optional description shown alongside the file.
	Note string
}

// AttachEvidence uploads an evidence file to a report.
func (c *Client) AttachEvidence(ctx context.Context, reportID string, req *AttachEvidenceRequest) (*Evidence, error) {
	if reportID == "" {
		return nil, errors.New("tuteliq: report id is required")
	}
	if req == nil || len(req.Data) == 0 {
		return nil, errors.New("tuteliq: evidence data must not be empty")
	}
	var fields []formField
	if req.Note != "" {
		fields = append(fields, formField{name: "note", value: req.Note})
	}
	boundary := newBoundary()
	body, err := buildMultipartBody(boundary, formFile{field: "file", filename: req.Filename, data: req.Data}, fields)
	if err != nil {
		return nil, err
	}
	data, err := c.executeMultipart(ctx, "/reports/"+reportID+"/evidence", body, boundary)
	if err != nil {
		return nil, err
	}
	var ev Evidence
	if err := decodeResponse(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
