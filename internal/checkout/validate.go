package checkout

import (
	"regexp"
	"strings"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

// Field names the four validated slots of the checkout form. Address is one
// coarse slot covering province, district, ward and street together.
type Field string

const (
	FieldName    Field = "customer_name"
	FieldEmail   Field = "customer_email"
	FieldPhone   Field = "customer_phone"
	FieldAddress Field = "address"
)

var (
	// One @ with a dot somewhere after it, no whitespace anywhere.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Vietnamese mobile numbers: 0 or +84, a carrier prefix digit, then
	// exactly eight more digits.
	phonePattern = regexp.MustCompile(`^(0|\+84)[35789][0-9]{8}$`)
)

// ValidateField returns the error message for one customer field, or the
// empty string when the value is valid.
func ValidateField(field Field, value string) string {
	switch field {
	case FieldName:
		if strings.TrimSpace(value) == "" {
			return "Vui lòng nhập họ và tên"
		}
		return ""

	case FieldEmail:
		if strings.TrimSpace(value) == "" {
			return "Vui lòng nhập email"
		}
		if !emailPattern.MatchString(value) {
			return "Email không hợp lệ"
		}
		return ""

	case FieldPhone:
		if strings.TrimSpace(value) == "" {
			return "Vui lòng nhập số điện thoại"
		}
		if !phonePattern.MatchString(stripWhitespace(value)) {
			return "Số điện thoại không hợp lệ (VD: 0912345678 hoặc +84912345678)"
		}
		return ""

	default:
		return ""
	}
}

// validateAddress checks the composed address slot: all three cascade
// levels selected and a non-blank street.
func validateAddress(province, district, ward *domain.AddressOption, street string) string {
	if province == nil || district == nil || ward == nil || strings.TrimSpace(street) == "" {
		return "Vui lòng chọn đầy đủ thông tin địa chỉ"
	}
	return ""
}

// ComposeAddress joins the street and the three cascade labels into the
// single human-readable string the order API expects, most specific first.
func ComposeAddress(street string, ward, district, province domain.AddressOption) string {
	return strings.Join([]string{street, ward.Label, district.Label, province.Label}, ", ")
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
