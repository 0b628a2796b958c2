// Package m365 provides usage analytics over synced Microsoft 365
// account snapshots: high-usage alerts, inactive accounts, growth trends
// and top storage consumers.
package m365

import (
	"fmt"
	"sort"
	"time"

	"github.com/hward/assetdesk/internal/models"
	"gorm.io/gorm"
)

// LatestPerAccount returns the most recent snapshot for every account.
func LatestPerAccount(db *gorm.DB) ([]models.M365Usage, error) {
	var rows []models.M365Usage
	err := db.Where("id IN (?)",
		db.Model(&models.M365Usage{}).Select("MAX(id)").Group("user_principal_name"),
	).Order("user_principal_name ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("m365: latest per account: %w", err)
	}
	return rows, nil
}

// Ingest records a set of usage snapshots with a shared timestamp and
// writes a sync marker. Called by the refresh endpoint.
func Ingest(db *gorm.DB, rows []models.M365Usage, now time.Time) error {
	for i := range rows {
		rows[i].ID = 0
		rows[i].RecordedAt = now
	}
	if len(rows) > 0 {
		if err := db.Create(&rows).Error; err != nil {
			return fmt.Errorf("m365: ingest %d snapshots: %w", len(rows), err)
		}
	}
	sync := models.M365Sync{SyncedAt: now, Accounts: len(rows)}
	if err := db.Create(&sync).Error; err != nil {
		return fmt.Errorf("m365: record sync: %w", err)
	}
	return nil
}

// LastSync returns the most recent sync marker, or nil if none exists.
func LastSync(db *gorm.DB) (*models.M365Sync, error) {
	var sync models.M365Sync
	err := db.Order("synced_at DESC").First(&sync).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("m365: last sync: %w", err)
	}
	return &sync, nil
}

// HighUsage returns accounts whose latest snapshot uses at least
// thresholdPct percent of their storage quota.
func HighUsage(db *gorm.DB, thresholdPct float64) ([]models.M365Usage, error) {
	latest, err := LatestPerAccount(db)
	if err != nil {
		return nil, err
	}
	var out []models.M365Usage
	for _, row := range latest {
		if row.StorageQuotaGB <= 0 {
			continue
		}
		if row.StorageUsedGB/row.StorageQuotaGB*100 >= thresholdPct {
			out = append(out, row)
		}
	}
	return out, nil
}

// Inactive returns accounts with no recorded activity within the given
// number of days. Accounts that never reported activity count as inactive.
func Inactive(db *gorm.DB, days int, now time.Time) ([]models.M365Usage, error) {
	latest, err := LatestPerAccount(db)
	if err != nil {
		return nil, err
	}
	cutoff := now.AddDate(0, 0, -days)
	var out []models.M365Usage
	for _, row := range latest {
		if row.LastActivity == nil || row.LastActivity.Before(cutoff) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Trend returns all snapshots for one account in chronological order.
func Trend(db *gorm.DB, userPrincipalName string) ([]models.M365Usage, error) {
	var rows []models.M365Usage
	err := db.Where("user_principal_name = ?", userPrincipalName).
		Order("recorded_at ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("m365: trend for %s: %w", userPrincipalName, err)
	}
	return rows, nil
}

// TopStorage returns the n accounts with the largest latest storage use.
func TopStorage(db *gorm.DB, n int) ([]models.M365Usage, error) {
	latest, err := LatestPerAccount(db)
	if err != nil {
		return nil, err
	}
	sort.Slice(latest, func(i, j int) bool {
		return latest[i].StorageUsedGB > latest[j].StorageUsedGB
	})
	if n > 0 && len(latest) > n {
		latest = latest[:n]
	}
	return latest, nil
}
