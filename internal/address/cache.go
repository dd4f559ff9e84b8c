package address

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

func NewCachingClient(upstream Client, log *zap.Logger) *CachingClient {
	return &CachingClient{
		upstream:  upstream,
		log:       log,
		districts: make(map[string][]domain.AddressOption),
		wards:     make(map[string][]domain.AddressOption),
	}
}

// CachingClient memoizes lookups per parent code for the session and
// absorbs upstream failures: provinces fall back to the built-in city list,
// districts and wards degrade to an empty option list. Lookup errors are
// logged, never returned.
type CachingClient struct {
	upstream Client
	log      *zap.Logger
	sfg      singleflight.Group // prevents duplicate in-flight lookups

	mu        sync.RWMutex
	provinces []domain.AddressOption
	districts map[string][]domain.AddressOption
	wards     map[string][]domain.AddressOption
}

func (c *CachingClient) Provinces(ctx context.Context) ([]domain.AddressOption, error) {
	c.mu.RLock()
	cached := c.provinces
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, _, _ := c.sfg.Do("provinces", func() (interface{}, error) {
		options, err := c.upstream.Provinces(ctx)
		if err != nil {
			c.log.Warn("province lookup failed, using fallback list", zap.Error(err))
			// Fallback is not cached so a later lookup can recover.
			return FallbackProvinces, nil
		}

		c.mu.Lock()
		c.provinces = options
		c.mu.Unlock()
		return options, nil
	})
	return v.([]domain.AddressOption), nil
}

func (c *CachingClient) Districts(ctx context.Context, provinceCode string) ([]domain.AddressOption, error) {
	c.mu.RLock()
	cached, ok := c.districts[provinceCode]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, _, _ := c.sfg.Do("districts:"+provinceCode, func() (interface{}, error) {
		options, err := c.upstream.Districts(ctx, provinceCode)
		if err != nil {
			c.log.Warn("district lookup failed",
				zap.String("province_code", provinceCode), zap.Error(err))
			return []domain.AddressOption{}, nil
		}

		c.mu.Lock()
		c.districts[provinceCode] = options
		c.mu.Unlock()
		return options, nil
	})
	return v.([]domain.AddressOption), nil
}

func (c *CachingClient) Wards(ctx context.Context, districtCode string) ([]domain.AddressOption, error) {
	c.mu.RLock()
	cached, ok := c.wards[districtCode]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, _, _ := c.sfg.Do("wards:"+districtCode, func() (interface{}, error) {
		options, err := c.upstream.Wards(ctx, districtCode)
		if err != nil {
			c.log.Warn("ward lookup failed",
				zap.String("district_code", districtCode), zap.Error(err))
			return []domain.AddressOption{}, nil
		}

		c.mu.Lock()
		c.wards[districtCode] = options
		c.mu.Unlock()
		return options, nil
	})
	return v.([]domain.AddressOption), nil
}

// ClearCache drops all memoized lookups.
func (c *CachingClient) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provinces = nil
	c.districts = make(map[string][]domain.AddressOption)
	c.wards = make(map[string][]domain.AddressOption)
}
