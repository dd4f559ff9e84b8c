// Package address looks up the Vietnamese administrative hierarchy
// (province, district, ward) from the public provinces API.
package address

import (
	"context"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// Client resolves each level of the address cascade. District results are
// only meaningful for the province code they were fetched with, wards for
// their district code.
type Client interface {
	Provinces(ctx context.Context) ([]domain.AddressOption, error)
	Districts(ctx context.Context, provinceCode string) ([]domain.AddressOption, error)
	Wards(ctx context.Context, districtCode string) ([]domain.AddressOption, error)
}

// FallbackProvinces is served when the upstream province lookup fails:
// the five centrally-governed cities, enough to keep checkout usable.
var FallbackProvinces = []domain.AddressOption{
	{Value: "1", Label: "Thành phố Hà Nội"},
	{Value: "79", Label: "Thành phố Hồ Chí Minh"},
	{Value: "48", Label: "Thành phố Đà Nẵng"},
	{Value: "31", Label: "Thành phố Hải Phòng"},
	{Value: "92", Label: "Thành phố Cần Thơ"},
}
