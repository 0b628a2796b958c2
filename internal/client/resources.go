package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/hward/assetdesk/internal/models"
)

// ListAssets returns assets, optionally filtered by status.
func (c *Client) ListAssets(ctx context.Context, status string) ([]models.Asset, error) {
	path := "/api/asset"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var assets []models.Asset
	if err := c.do(ctx, http.MethodGet, path, nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetAsset fetches one asset by ID.
func (c *Client) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	var asset models.Asset
	if err := c.do(ctx, http.MethodGet, "/api/asset/"+url.PathEscape(id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListEmployees returns all employees with their held assets.
func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := c.do(ctx, http.MethodGet, "/api/employee", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListRepairs returns repair records, optionally filtered by status
// ("dispatched" or "returned").
func (c *Client) ListRepairs(ctx context.Context, status string) ([]models.Repair, error) {
	path := "/api/repair"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var repairs []models.Repair
	if err := c.do(ctx, http.MethodGet, path, nil, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

// GetRepair fetches one repair record by ID.
func (c *Client) GetRepair(ctx context.Context, id string) (*models.Repair, error) {
	var resp models.Repair
	if err := c.do(ctx, http.MethodGet, "/api/repair/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DispatchRepair sends an asset out for repair.
func (c *Client) DispatchRepair(ctx context.Context, assetID, vendor, reason string) (*models.Repair, error) {
	var resp struct {
		Repair models.Repair `json:"repair"`
	}
	err := c.do(ctx, http.MethodPost, "/api/repair", map[string]string{
		"assetId": assetID,
		"vendor":  vendor,
		"reason":  reason,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Repair, nil
}

// ReturnResult is the outcome of a return submission.
type ReturnResult struct {
	Repair          models.Repair `json:"repair"`
	AlreadyReturned bool          `json:"alreadyReturned"`
}

// ReturnRepair marks a dispatched record returned with an optional
// note. The scan workflow submits through it; manual returns with a
// proof photo go through ReturnRepairWithProof.
func (c *Client) ReturnRepair(ctx context.Context, id, notes string) (*ReturnResult, error) {
	return c.ReturnRepairWithProof(ctx, id, notes, "", nil)
}

// ReturnRepairWithProof marks a dispatched record returned, submitting
// a multipart form with optional free-text notes and an optional proof
// image read from proof. filename names the image part; proof may be
// nil when there is nothing to attach.
func (c *Client) ReturnRepairWithProof(ctx context.Context, id, notes, filename string, proof io.Reader) (*ReturnResult, error) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	if notes != "" {
		if err := mw.WriteField("notes", notes); err != nil {
			return nil, fmt.Errorf("client: encode return form: %w", err)
		}
	}
	if proof != nil {
		part, err := mw.CreateFormFile("proofImage", filename)
		if err != nil {
			return nil, fmt.Errorf("client: encode return form: %w", err)
		}
		if _, err := io.Copy(part, proof); err != nil {
			return nil, fmt.Errorf("client: read proof image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client: encode return form: %w", err)
	}

	path := "/api/repair/" + url.PathEscape(id) + "/return"
	var result ReturnResult
	if err := c.doBody(ctx, http.MethodPut, path, mw.FormDataContentType(), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MaintenanceReport mirrors the maintenance summary endpoint.
type MaintenanceReport struct {
	Open     int64                        `json:"open"`
	Overdue  int64                        `json:"overdue"`
	Returned int64                        `json:"returned"`
	Pending  []models.MaintenanceReminder `json:"pending"`
}

// GetMaintenanceReport fetches the open/overdue/returned summary.
func (c *Client) GetMaintenanceReport(ctx context.Context) (*MaintenanceReport, error) {
	var report MaintenanceReport
	if err := c.do(ctx, http.MethodGet, "/api/maintenance/report", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// PendingBills returns the number of unpaid bills.
func (c *Client) PendingBills(ctx context.Context) (int, error) {
	var resp struct {
		Pending int `json:"pending"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bill/pending-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Pending, nil
}

// LastM365Sync reports when usage analytics were last refreshed.
func (c *Client) LastM365Sync(ctx context.Context) (synced bool, at time.Time, err error) {
	var resp struct {
		Synced   bool      `json:"synced"`
		SyncedAt time.Time `json:"syncedAt"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/m365/lastSync", nil, &resp); err != nil {
		return false, time.Time{}, err
	}
	return resp.Synced, resp.SyncedAt, nil
}
