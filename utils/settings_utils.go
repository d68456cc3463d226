package utils

import (
	"sync"

	"github.com/luxstore/backend/models"
	"gorm.io/gorm"
)

var (
	settingsMu     sync.RWMutex
	settingsCached *models.SiteSettings
)

// GetSiteSettings loads the singleton settings row, creating it with
// defaults if missing. The row is cached in-process until
// InvalidateSiteSettingsCache is called by the admin update handler.
func GetSiteSettings(db *gorm.DB) (*models.SiteSettings, error) {
	settingsMu.RLock()
	if settingsCached != nil {
		s := *settingsCached
		settingsMu.RUnlock()
		return &s, nil
	}
	settingsMu.RUnlock()

	var settings models.SiteSettings
	if err := db.Where(models.SiteSettings{ID: models.SiteSettingsID}).
		Attrs(models.SiteSettings{ReturnWindowDays: 14}).
		FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}

	settingsMu.Lock()
	settingsCached = &settings
	settingsMu.Unlock()

	s := settings
	return &s, nil
}

// InvalidateSiteSettingsCache drops the cached settings row so the next
// read hits the database
func InvalidateSiteSettingsCache() {
	settingsMu.Lock()
	settingsCached = nil
	settingsMu.Unlock()
}
