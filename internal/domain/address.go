package domain

// AddressOption is one selectable entry in the province/district/ward
// cascade: an opaque code plus the human-readable label shown to the user.
type AddressOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
