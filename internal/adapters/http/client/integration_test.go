package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/paragon/internal/adapters/http/api"
	"github.com/okian/paragon/internal/adapters/http/client"
	service "github.com/okian/paragon/internal/app"
	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/internal/testutil"
	"github.com/okian/paragon/pkg/logger"
)

func TestCompanyServiceAgainstAPI(t *testing.T) {
	Convey("Given a company service talking to the API server", t, func() {
		ctx := context.Background()
		svc := service.New()
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c, err := client.New(srv.URL, client.WithTimeout(5*time.Second), client.WithLogger(logger.Nop()))
		So(err, ShouldBeNil)
		companies := client.NewCompanyService(c)

		in := testutil.NewCompanyStub().WithoutID().Get()
		created, err := companies.Create(ctx, in)
		So(err, ShouldBeNil)
		So(created.ID, ShouldNotBeNil)

		Convey("When the company is fetched", func() {
			got, err := companies.Find(ctx, *created.ID)

			Convey("Then it should match what was sent", func() {
				So(err, ShouldBeNil)
				want := in
				want.ID = created.ID
				So(cmp.Diff(want, got, testutil.TimeWithinTolerance(0)), ShouldBeEmpty)
			})
		})

		Convey("When the company is partially updated", func() {
			got, err := companies.PartialUpdate(ctx, model.Company{ID: created.ID, City: model.Ptr("Zakopane")})

			Convey("Then untouched fields should survive", func() {
				So(err, ShouldBeNil)
				So(*got.City, ShouldEqual, "Zakopane")
				So(*got.Nip, ShouldEqual, *in.Nip)
				So(got.Created.Equal(*in.Created), ShouldBeTrue)
			})
		})

		Convey("When the company is replaced", func() {
			got, err := companies.Update(ctx, model.Company{ID: created.ID, Regon: model.Ptr("123456789")})

			Convey("Then omitted fields should be cleared", func() {
				So(err, ShouldBeNil)
				So(*got.Regon, ShouldEqual, "123456789")
				So(got.Nip, ShouldBeNil)
			})
		})

		Convey("When more companies are added and listed page by page", func() {
			for i := 0; i < 4; i++ {
				_, err := companies.Create(ctx, testutil.NewCompanyStub().WithoutID().Get())
				So(err, ShouldBeNil)
			}

			var all []model.Company
			var total int64
			for page := 0; ; page++ {
				p, err := companies.QueryPage(ctx, client.PageOf(page, 2, "id,asc"))
				So(err, ShouldBeNil)
				total = p.TotalCount
				if len(p.Items) == 0 {
					break
				}
				items := make([]*model.Company, len(p.Items))
				for i := range p.Items {
					items[i] = &p.Items[i]
				}
				all = companies.AddToCollectionIfMissing(all, items)
			}

			Convey("Then every company should be collected once", func() {
				So(total, ShouldEqual, int64(5))
				So(all, ShouldHaveLength, 5)
				So(*all[0].ID, ShouldEqual, *created.ID)
			})
		})

		Convey("When the company is deleted", func() {
			So(companies.Delete(ctx, *created.ID), ShouldBeNil)

			Convey("Then finding it should report not found", func() {
				_, err := companies.Find(ctx, *created.ID)
				So(client.IsNotFound(err), ShouldBeTrue)
			})
		})
	})
}
