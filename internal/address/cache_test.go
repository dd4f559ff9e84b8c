package address

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

type mockUpstream struct {
	mu            sync.Mutex
	provinces     []domain.AddressOption
	districts     map[string][]domain.AddressOption
	wards         map[string][]domain.AddressOption
	err           error
	provinceCalls int
	districtCalls int
	wardCalls     int
}

func (m *mockUpstream) Provinces(context.Context) ([]domain.AddressOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provinceCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.provinces, nil
}

func (m *mockUpstream) Districts(_ context.Context, provinceCode string) ([]domain.AddressOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.districtCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.districts[provinceCode], nil
}

func (m *mockUpstream) Wards(_ context.Context, districtCode string) ([]domain.AddressOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wardCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.wards[districtCode], nil
}

func TestCachingClient_ProvincesCachedPerSession(t *testing.T) {
	upstream := &mockUpstream{
		provinces: []domain.AddressOption{{Value: "79", Label: "Ho Chi Minh City"}},
	}
	sut := NewCachingClient(upstream, zap.NewNop())

	first, err := sut.Provinces(context.Background())
	require.NoError(t, err)
	second, err := sut.Provinces(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.provinceCalls)
}

func TestCachingClient_ProvinceFailureFallsBack(t *testing.T) {
	upstream := &mockUpstream{err: errors.New("upstream down")}
	sut := NewCachingClient(upstream, zap.NewNop())

	options, err := sut.Provinces(context.Background())

	require.NoError(t, err)
	assert.Equal(t, FallbackProvinces, options)
}

func TestCachingClient_FallbackNotCached(t *testing.T) {
	upstream := &mockUpstream{
		err:       errors.New("upstream down"),
		provinces: []domain.AddressOption{{Value: "1", Label: "Ha Noi"}},
	}
	sut := NewCachingClient(upstream, zap.NewNop())

	_, err := sut.Provinces(context.Background())
	require.NoError(t, err)

	upstream.mu.Lock()
	upstream.err = nil
	upstream.mu.Unlock()

	options, err := sut.Provinces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, upstream.provinces, options)
}

func TestCachingClient_DistrictsCachedPerProvince(t *testing.T) {
	upstream := &mockUpstream{
		districts: map[string][]domain.AddressOption{
			"79": {{Value: "760", Label: "District 1"}},
			"1":  {{Value: "5", Label: "Cau Giay"}},
		},
	}
	sut := NewCachingClient(upstream, zap.NewNop())

	hcm, err := sut.Districts(context.Background(), "79")
	require.NoError(t, err)
	_, err = sut.Districts(context.Background(), "79")
	require.NoError(t, err)
	hanoi, err := sut.Districts(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.districtCalls)
	assert.NotEqual(t, hcm, hanoi)
}

func TestCachingClient_DistrictFailureDegradesToEmpty(t *testing.T) {
	upstream := &mockUpstream{err: errors.New("upstream down")}
	sut := NewCachingClient(upstream, zap.NewNop())

	options, err := sut.Districts(context.Background(), "79")

	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestCachingClient_WardFailureDegradesToEmpty(t *testing.T) {
	upstream := &mockUpstream{err: errors.New("upstream down")}
	sut := NewCachingClient(upstream, zap.NewNop())

	options, err := sut.Wards(context.Background(), "760")

	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestCachingClient_ClearCache(t *testing.T) {
	upstream := &mockUpstream{
		provinces: []domain.AddressOption{{Value: "79", Label: "Ho Chi Minh City"}},
	}
	sut := NewCachingClient(upstream, zap.NewNop())

	_, err := sut.Provinces(context.Background())
	require.NoError(t, err)
	sut.ClearCache()
	_, err = sut.Provinces(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.provinceCalls)
}
