package tuteliq

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ExportStatus tracks a data export request.
type ExportStatus string

const (
	ExportStatusPending    ExportStatus = "pending"
	ExportStatusProcessing ExportStatus = "processing"
	ExportStatusReady      ExportStatus = "ready"
	ExportStatusExpired    ExportStatus = "expired"
	ExportStatusFailed     ExportStatus = "failed"
)

// DeletionStatus tracks a data deletion request.
type DeletionStatus string

const (
	DeletionStatusPending    DeletionStatus = "pending"
	DeletionStatusProcessing DeletionStatus = "processing"
	DeletionStatusCompleted  DeletionStatus = "completed"
	DeletionStatusFailed     DeletionStatus = "failed"
)

// DataExport is a GDPR subject-access export job.
type DataExport struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Status    ExportStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	// DownloadURL is present once Status is ready. It expires.
	DownloadURL string    `json:"download_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
}

// DataDeletion is a GDPR right-to-erasure job.
type DataDeletion struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Status    DeletionStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	// CompletedAt is set once all records are purged.
	CompletedAt time.Time `json:"completed_at,omitzero"`
	// RecordsDeleted counts purged records, set on completion.
	RecordsDeleted int `json:"records_deleted,omitempty"`
}

// RequestDataExport starts an export of all stored data for a user.
// Poll GetDataExport until the status is ready.
func (c *Client) RequestDataExport(ctx context.Context, userID string) (*DataExport, error) {
	if userID == "" {
		return nil, errors.New("tuteliq: user id is required")
	}
	body := struct {
		UserID string `json:"user_id"`
	}{UserID: userID}
	data, err := c.execute(ctx, http.MethodPost, "/gdpr/exports", body, nil)
	if err != nil {
		return nil, err
	}
	var export DataExport
	if err := decodeResponse(data, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

// GetDataExport returns the state of an export job.
func (c *Client) GetDataExport(ctx context.Context, exportID string) (*DataExport, error) {
	if exportID == "" {
		return nil, errors.New("tuteliq: export id is required")
	}
	data, err := c.execute(ctx, http.MethodGet, "/gdpr/exports/"+exportID, nil, nil)
	if err != nil {
		return nil, err
	}
	var export DataExport
	if err := decodeResponse(data, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

// DeleteUserData starts erasure of all stored data for a user. Deletion is
// asynchronous and irreversible; poll GetDeletionStatus with the returned
// deletion id for progress.
func (c *Client) DeleteUserData(ctx context.Context, userID string) (*DataDeletion, error) {
	if userID == "" {
		return nil, errors.New("tuteliq: user id is required")
	}
	data, err := c.execute(ctx, http.MethodDelete, "/gdpr/users/"+userID, nil, nil)
	if err != nil {
		return nil, err
	}
	var deletion DataDeletion
	if err := decodeResponse(data, &deletion); err != nil {
		return nil, err
	}
	return &deletion, nil
}

// GetDeletionStatus returns the state of a deletion job.
func (c *Client) GetDeletionStatus(ctx context.Context, deletionID string) (*DataDeletion, error) {
	if deletionID == "" {
		return nil, errors.New("tuteliq: deletion id is required")
	}
	data, err := c.execute(ctx, http.MethodGet, "/gdpr/deletions/"+deletionID, nil, nil)
	if err != nil {
		return nil, err
	}
	var deletion DataDeletion
	if err := decodeResponse(data, &deletion); err != nil {
		return nil, err
	}
	return &deletion, nil
}
