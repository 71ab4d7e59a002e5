package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingPolicy controls how price resolution breaks ties and how billed
// amounts are rounded. Operators may override it via a pricing.yml file;
// changes are picked up without a restart.
type PricingPolicy struct {
	// Precedence decides which list wins when several eligible lists carry
	// the product at different prices.
	Precedence string `mapstructure:"precedence"`
	// RoundingPlaces is the scale applied (half-even) to billed amounts.
	RoundingPlaces int32 `mapstructure:"roundingPlaces"`
}

const (
	// PrecedenceNarrowestWindow picks the list whose account-link window is
	// the narrowest; remaining ties resolve to the lowest price.
	PrecedenceNarrowestWindow = "narrowest_window"
	// PrecedenceLowestPrice always picks the cheapest eligible list.
	PrecedenceLowestPrice = "lowest_price"
)

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		Precedence:     PrecedenceNarrowestWindow,
		RoundingPlaces: 2,
	}
}

// PricingPolicyHolder exposes the active policy and hot-reloads it on file
// change.
type PricingPolicyHolder struct {
	current atomic.Value // holds PricingPolicy
}

func NewPricingPolicyHolder() (*PricingPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/meridian")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MERIDIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingPolicy()
	v.SetDefault("pricing.precedence", defaults.Precedence)
	v.SetDefault("pricing.roundingPlaces", defaults.RoundingPlaces)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var policy PricingPolicy
	if err := v.UnmarshalKey("pricing", &policy); err != nil {
		return nil, err
	}
	if err := validatePricingPolicy(policy); err != nil {
		return nil, err
	}

	holder := &PricingPolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingPolicy
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingPolicy(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingPolicyHolder wraps a fixed policy with no file watching.
func NewStaticPricingPolicyHolder(policy PricingPolicy) *PricingPolicyHolder {
	holder := &PricingPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func (h *PricingPolicyHolder) Get() PricingPolicy {
	return h.current.Load().(PricingPolicy)
}

func validatePricingPolicy(policy PricingPolicy) error {
	switch policy.Precedence {
	case PrecedenceNarrowestWindow, PrecedenceLowestPrice:
	default:
		return errors.New("pricing.precedence must be narrowest_window or lowest_price")
	}
	if policy.RoundingPlaces < 0 || policy.RoundingPlaces > 6 {
		return errors.New("pricing.roundingPlaces must be between 0 and 6")
	}
	return nil
}
