package models

import "time"

// InternetMonth is one month of internet-usage billing: a base plan plus
// any number of purchased addons. Totals are derived, never stored.
type InternetMonth struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Month       string `gorm:"size:7;not null;uniqueIndex"` // YYYY-MM
	Provider    string `gorm:"size:64"`
	BasePlanGB  float64
	BaseCost    float64
	TotalUsedGB float64
	Notes       string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Addons []InternetAddon `gorm:"foreignKey:MonthID"`
}

// InternetAddon is extra data volume bought mid-month.
type InternetAddon struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	MonthID   uint   `gorm:"not null;index"`
	Name      string `gorm:"size:64"`
	GB        float64
	Cost      float64
	CreatedAt time.Time
}
