package client

import "github.com/okian/paragon/internal/domain/model"

// CompanyResourceURL is the company collection path relative to the API root.
const CompanyResourceURL = "api/companies"

// CompanyService talks to the company collection.
type CompanyService struct {
	*Resource[model.Company, model.CompanyWire]
}

// NewCompanyService returns a CompanyService using c.
func NewCompanyService(c *Client) *CompanyService {
	return &CompanyService{
		Resource: NewResource(c, "company", CompanyResourceURL, Codec[model.Company, model.CompanyWire]{
			ToWire:   model.Company.ToWire,
			FromWire: model.CompanyWire.ToDomain,
		}),
	}
}
