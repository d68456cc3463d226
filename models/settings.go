package models

// SiteSettingsID is the fixed primary key of the single settings row.
const SiteSettingsID = 1

// SiteSettings is the singleton configuration row, loaded through
// utils.GetSiteSettings which caches it with explicit invalidation.
type SiteSettings struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	BrandName        string  `json:"brand_name" gorm:"default:LuxStore"`
	FooterAddress    string  `json:"footer_address"`
	FooterPhone      string  `json:"footer_phone"`
	FooterEmail      string  `json:"footer_email"`
	DeliveryCharge   float64 `json:"delivery_charge"`
	ReturnWindowDays int     `json:"return_window_days" gorm:"default:14"`
}
