package service

import (
	"context"

	"github.com/b-himadri/bakery-backend-api/model"
)

// AddressService maintains the single-default invariant: whenever a user has
// at least one address, exactly one of them is default.
type AddressService struct {
	stores Stores
}

func NewAddressService(stores Stores) *AddressService {
	return &AddressService{stores: stores}
}

// List returns the user's addresses, default first, then oldest first.
func (as *AddressService) List(ctx context.Context, userID uint) ([]model.Address, error) {
	return as.stores.Addresses().ListByUser(ctx, userID)
}

// Add creates an address. A user's first-ever address is forced default;
// adding a new default unsets the flag on every other address of that user.
func (as *AddressService) Add(ctx context.Context, a *model.Address) (*model.Address, error) {
	if a.AddressLine1 == "" || a.City == "" || a.State == "" || a.PostalCode == "" || a.Country == "" {
		return nil, &ValidationError{Reason: "address_line1, city, state, postal_code and country are required"}
	}
	if a.AddressType == "" {
		a.AddressType = model.AddressTypeShipping
	}

	err := as.stores.Atomic(ctx, func(s Stores) error {
		count, err := s.Addresses().CountByUser(ctx, a.UserID)
		if err != nil {
			return err
		}
		if count == 0 {
			a.IsDefault = true
		}
		if err := s.Addresses().Create(ctx, a); err != nil {
			return err
		}
		if a.IsDefault {
			return s.Addresses().ClearDefaults(ctx, a.UserID, a.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// AddressUpdate carries the fields a caller may change; nil means keep.
type AddressUpdate struct {
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	Country      *string
	AddressType  *string
	IsDefault    *bool
}

// Update applies upd to the user's address id. Unsetting default on the
// user's only address is rejected.
func (as *AddressService) Update(ctx context.Context, id, userID uint, upd AddressUpdate) (*model.Address, error) {
	var address *model.Address
	err := as.stores.Atomic(ctx, func(s Stores) error {
		var err error
		address, err = s.Addresses().GetByID(ctx, id, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return &NotFoundError{Entity: "address"}
		}

		if upd.AddressLine1 != nil {
			address.AddressLine1 = *upd.AddressLine1
		}
		if upd.AddressLine2 != nil {
			address.AddressLine2 = *upd.AddressLine2
		}
		if upd.City != nil {
			address.City = *upd.City
		}
		if upd.State != nil {
			address.State = *upd.State
		}
		if upd.PostalCode != nil {
			address.PostalCode = *upd.PostalCode
		}
		if upd.Country != nil {
			address.Country = *upd.Country
		}
		if upd.AddressType != nil {
			address.AddressType = *upd.AddressType
		}

		if upd.IsDefault != nil {
			if *upd.IsDefault {
				if err := s.Addresses().ClearDefaults(ctx, userID, address.ID); err != nil {
					return err
				}
				address.IsDefault = true
			} else if address.IsDefault {
				count, err := s.Addresses().CountByUser(ctx, userID)
				if err != nil {
					return err
				}
				if count == 1 {
					return &ConflictError{Reason: "cannot unset default status on the only address"}
				}
				address.IsDefault = false
			}
		}

		return s.Addresses().Save(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// SetDefault marks the address default and unsets every other one.
func (as *AddressService) SetDefault(ctx context.Context, id, userID uint) (*model.Address, error) {
	var address *model.Address
	err := as.stores.Atomic(ctx, func(s Stores) error {
		var err error
		address, err = s.Addresses().GetByID(ctx, id, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return &NotFoundError{Entity: "address"}
		}
		if err := s.Addresses().ClearDefaults(ctx, userID, address.ID); err != nil {
			return err
		}
		address.IsDefault = true
		return s.Addresses().Save(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes the address. When the deleted address was default, the
// earliest-created survivor (if any) is promoted.
func (as *AddressService) Delete(ctx context.Context, id, userID uint) error {
	return as.stores.Atomic(ctx, func(s Stores) error {
		address, err := s.Addresses().GetByID(ctx, id, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return &NotFoundError{Entity: "address"}
		}
		if err := s.Addresses().Delete(ctx, id, userID); err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		earliest, err := s.Addresses().EarliestByUser(ctx, userID)
		if err != nil {
			return err
		}
		if earliest == nil {
			return nil
		}
		earliest.IsDefault = true
		return s.Addresses().Save(ctx, earliest)
	})
}
