package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// BillingConfig holds the billing tunables shared by every surface that
// derives payment status or monthly revenue. A single source keeps the card
// badges, detail panels and overview KPIs in exact agreement.
type BillingConfig struct {
	// CycleDays is the length of one payment cycle. The due date is always
	// the latest payment date (or the program start date) plus CycleDays.
	CycleDays int `mapstructure:"cycleDays"`

	// UrgentWindowDays marks a non-overdue student as "urgent" when the due
	// date is at most this many days away.
	UrgentWindowDays int `mapstructure:"urgentWindowDays"`

	// CommunityUnitPrice is the monthly community subscription price in cents.
	CommunityUnitPrice int64 `mapstructure:"communityUnitPrice"`

	// StagnantAfterDays flags accounts with no positive payment within this
	// window on the overview.
	StagnantAfterDays int `mapstructure:"stagnantAfterDays"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		CycleDays:          30,
		UrgentWindowDays:   5,
		CommunityUnitPrice: 5900,
		StagnantAfterDays:  45,
	}
}

// BillingConfigHolder exposes the current billing config and hot-reloads it
// when billing.yml changes on disk.
type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/mentordesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MENTORDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBillingConfig()
	v.SetDefault("billing.cycleDays", defaults.CycleDays)
	v.SetDefault("billing.urgentWindowDays", defaults.UrgentWindowDays)
	v.SetDefault("billing.communityUnitPrice", defaults.CommunityUnitPrice)
	v.SetDefault("billing.stagnantAfterDays", defaults.StagnantAfterDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// The watcher outlives construction, so it logs through the global
		// logger installed by the observability module.
		log := zap.L().Named("config.billing")

		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Warn("reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("billing config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// Current returns the billing config in effect.
func (h *BillingConfigHolder) Current() BillingConfig {
	cfg, _ := h.current.Load().(BillingConfig)
	return cfg
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.CycleDays <= 0 {
		return errors.New("billing.cycleDays must be positive")
	}
	if cfg.UrgentWindowDays < 0 {
		return errors.New("billing.urgentWindowDays must not be negative")
	}
	if cfg.CommunityUnitPrice < 0 {
		return errors.New("billing.communityUnitPrice must not be negative")
	}
	if cfg.StagnantAfterDays <= 0 {
		return errors.New("billing.stagnantAfterDays must be positive")
	}
	return nil
}
