package domain

import (
	"strings"
	"time"
)

// Profile is the contact data and default delivery address a customer keeps
// for checkout.
type Profile struct {
	UID            string
	FullName       string
	Phone          string
	DefaultAddress ProfileAddress
	UpdatedAt      time.Time
}

type ProfileAddress struct {
	Address string
	City    string
	State   string
	Pincode string
}

// ShippingAddress fills an order address from the profile.
func (p Profile) ShippingAddress(email string) ShippingAddress {
	return ShippingAddress{
		FullName: p.FullName,
		Phone:    p.Phone,
		Email:    email,
		Address:  p.DefaultAddress.Address,
		City:     p.DefaultAddress.City,
		State:    p.DefaultAddress.State,
		Pincode:  p.DefaultAddress.Pincode,
	}
}

// IsZero ignores Email, which checkout fills from the identity.
func (a ShippingAddress) IsZero() bool {
	for _, v := range []string{a.FullName, a.Phone, a.Address, a.City, a.State, a.Pincode} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
