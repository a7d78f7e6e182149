package seed

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/okian/paragon/internal/domain/model"
)

// Generator produces fake companies. It is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator returns a Generator seeded with seed; 0 picks a random seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: time.Now}
}

// Company returns one unsaved company with every field set.
func (g *Generator) Company() model.Company {
	created := g.now().UTC().Truncate(time.Second)
	return model.Company{
		Created:  &created,
		Nip:      model.Ptr(g.faker.Numerify("##########")),
		Regon:    model.Ptr(g.faker.Numerify("#########")),
		Street:   model.Ptr(g.faker.Street()),
		City:     model.Ptr(g.faker.City()),
		PostCode: model.Ptr(g.faker.Numerify("##-###")),
	}
}

// Companies returns n unsaved companies.
func (g *Generator) Companies(n int) []model.Company {
	out := make([]model.Company, n)
	for i := range out {
		out[i] = g.Company()
	}
	return out
}
