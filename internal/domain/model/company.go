package model

import (
	"time"

	"github.com/okian/paragon/internal/domain/datetime"
)

// Company is a business registered in the system. Every field is optional so
// that partial updates can carry only what changed.
type Company struct {
	ID       *int64
	Created  *time.Time
	Nip      *string // tax identification number
	Regon    *string // statistical registry number
	Street   *string
	City     *string
	PostCode *string
}

// NewCompany returns an unsaved company.
func NewCompany() Company {
	return Company{}
}

// Identifier returns the company id, nil while unsaved.
func (c Company) Identifier() *int64 {
	return c.ID
}

// Merge returns c with every non-nil field of patch applied on top.
func (c Company) Merge(patch Company) Company {
	out := c
	if patch.ID != nil {
		out.ID = patch.ID
	}
	if patch.Created != nil {
		out.Created = patch.Created
	}
	if patch.Nip != nil {
		out.Nip = patch.Nip
	}
	if patch.Regon != nil {
		out.Regon = patch.Regon
	}
	if patch.Street != nil {
		out.Street = patch.Street
	}
	if patch.City != nil {
		out.City = patch.City
	}
	if patch.PostCode != nil {
		out.PostCode = patch.PostCode
	}
	return out
}

// CompanyWire is the JSON shape of a company on the wire.
type CompanyWire struct {
	ID       *int64  `json:"id,omitempty"`
	Created  *string `json:"created,omitempty"`
	Nip      *string `json:"nip,omitempty"`
	Regon    *string `json:"regon,omitempty"`
	Street   *string `json:"street,omitempty"`
	City     *string `json:"city,omitempty"`
	PostCode *string `json:"postCode,omitempty"`
}

// ToWire converts c to its wire shape, formatting Created.
func (c Company) ToWire() CompanyWire {
	return CompanyWire{
		ID:       c.ID,
		Created:  datetime.ToWire(c.Created),
		Nip:      c.Nip,
		Regon:    c.Regon,
		Street:   c.Street,
		City:     c.City,
		PostCode: c.PostCode,
	}
}

// ToDomain converts w to a Company. A missing or malformed created value is
// treated as absent.
func (w CompanyWire) ToDomain() Company {
	return Company{
		ID:       w.ID,
		Created:  datetime.FromWire(w.Created),
		Nip:      w.Nip,
		Regon:    w.Regon,
		Street:   w.Street,
		City:     w.City,
		PostCode: w.PostCode,
	}
}
