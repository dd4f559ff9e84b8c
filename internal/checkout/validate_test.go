package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trongtriet5/metadent-e-commerce-website/internal/domain"
)

func TestValidateField_Name(t *testing.T) {
	assert.NotEmpty(t, ValidateField(FieldName, ""))
	assert.NotEmpty(t, ValidateField(FieldName, "   "))
	assert.Empty(t, ValidateField(FieldName, "Nguyen Van A"))
}

func TestValidateField_Email(t *testing.T) {
	assert.NotEmpty(t, ValidateField(FieldEmail, ""))
	assert.NotEmpty(t, ValidateField(FieldEmail, "abc"))
	assert.NotEmpty(t, ValidateField(FieldEmail, "a@b"))
	assert.NotEmpty(t, ValidateField(FieldEmail, "a b@c.com"))
	assert.NotEmpty(t, ValidateField(FieldEmail, "a@@b.com"))
	assert.Empty(t, ValidateField(FieldEmail, "a@b.com"))
	assert.Empty(t, ValidateField(FieldEmail, "nguyen.van.a@example.vn"))
}

func TestValidateField_Phone(t *testing.T) {
	assert.NotEmpty(t, ValidateField(FieldPhone, ""))
	assert.NotEmpty(t, ValidateField(FieldPhone, "123"))
	assert.NotEmpty(t, ValidateField(FieldPhone, "0112345678"))  // 1 is not a carrier prefix
	assert.NotEmpty(t, ValidateField(FieldPhone, "091234567"))   // too short
	assert.NotEmpty(t, ValidateField(FieldPhone, "09123456789")) // too long
	assert.Empty(t, ValidateField(FieldPhone, "0912345678"))
	assert.Empty(t, ValidateField(FieldPhone, "+84912345678"))
	assert.Empty(t, ValidateField(FieldPhone, "091 234 5678")) // whitespace stripped first
	assert.Empty(t, ValidateField(FieldPhone, "0312345678"))
	assert.Empty(t, ValidateField(FieldPhone, "0512345678"))
	assert.Empty(t, ValidateField(FieldPhone, "0712345678"))
	assert.Empty(t, ValidateField(FieldPhone, "0812345678"))
}

func TestValidateAddress(t *testing.T) {
	province := &domain.AddressOption{Value: "79", Label: "Ho Chi Minh City"}
	district := &domain.AddressOption{Value: "760", Label: "District 1"}
	ward := &domain.AddressOption{Value: "26734", Label: "Ward 3"}

	assert.NotEmpty(t, validateAddress(nil, nil, nil, ""))
	assert.NotEmpty(t, validateAddress(province, nil, nil, "12 Le Loi"))
	assert.NotEmpty(t, validateAddress(province, district, nil, "12 Le Loi"))
	assert.NotEmpty(t, validateAddress(province, district, ward, "   "))
	assert.Empty(t, validateAddress(province, district, ward, "12 Le Loi"))
}

func TestComposeAddress(t *testing.T) {
	got := ComposeAddress("12 Le Loi",
		domain.AddressOption{Value: "26734", Label: "Ward 3"},
		domain.AddressOption{Value: "760", Label: "District 1"},
		domain.AddressOption{Value: "79", Label: "Ho Chi Minh City"})

	assert.Equal(t, "12 Le Loi, Ward 3, District 1, Ho Chi Minh City", got)
}
