package seed

import (
	"context"
	"errors"
	"time"

	settingsdomain "github.com/solostack/mentordesk/internal/settings/domain"
	"gorm.io/gorm"
)

// EnsureSettings seeds the singleton settings row so reads never race the
// first write.
func EnsureSettings(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing settingsdomain.Settings
		err := tx.Where("id = ?", settingsdomain.SingletonID).First(&existing).Error
		switch {
		case err == nil:
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&settingsdomain.Settings{
				ID:        settingsdomain.SingletonID,
				UpdatedAt: time.Now().UTC(),
			}).Error
		default:
			return err
		}
	})
}
