// Package testutil holds fixtures and comparers shared by tests.
package testutil

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/okian/paragon/internal/domain/model"
)

// CompanyStub builds a company filled with fake data.
type CompanyStub struct {
	company model.Company
}

// NewCompanyStub returns a stub with every field set.
func NewCompanyStub() CompanyStub {
	created := gofakeit.DateRange(
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	).UTC().Truncate(time.Second)

	return CompanyStub{company: model.Company{
		ID:       model.Ptr(gofakeit.Int64()),
		Created:  &created,
		Nip:      model.Ptr(gofakeit.Numerify("##########")),
		Regon:    model.Ptr(gofakeit.Numerify("#########")),
		Street:   model.Ptr(gofakeit.Street()),
		City:     model.Ptr(gofakeit.City()),
		PostCode: model.Ptr(gofakeit.Numerify("##-###")),
	}}
}

// WithID sets the id.
func (s CompanyStub) WithID(id int64) CompanyStub {
	s.company.ID = &id
	return s
}

// WithoutID clears the id, as for a company not yet stored.
func (s CompanyStub) WithoutID() CompanyStub {
	s.company.ID = nil
	return s
}

// WithCreated sets the creation time.
func (s CompanyStub) WithCreated(t time.Time) CompanyStub {
	s.company.Created = &t
	return s
}

// Get returns the built company.
func (s CompanyStub) Get() model.Company {
	return s.company
}
