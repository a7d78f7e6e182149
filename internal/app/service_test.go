package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	repository "github.com/okian/paragon/internal/adapters/repository"
	service "github.com/okian/paragon/internal/app"
	"github.com/okian/paragon/internal/domain/model"
	"github.com/okian/paragon/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["companies"], ShouldEqual, 0)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithStartID(100),
			service.WithLogger(logger.Named("test")),
			service.WithRefreshInterval(time.Second),
		)

		Convey("Then ids should start at the configured value", func() {
			c, err := svc.CreateCompany(context.Background(), model.NewCompany())
			So(err, ShouldBeNil)
			So(*c.ID, ShouldEqual, int64(100))
		})
	})

	Convey("Given a service with an injected store", t, func() {
		store := repository.NewMemoryStore(repository.WithStartID(7))
		svc := service.New(service.WithStore(store))

		Convey("Then writes should land in that store", func() {
			_, err := svc.CreateCompany(context.Background(), model.NewCompany())
			So(err, ShouldBeNil)
			So(store.Count(context.Background()), ShouldEqual, 1)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithRefreshInterval(10 * time.Millisecond))
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats, ShouldContainKey, "uptimeSeconds")
			})

			Convey("And starting twice should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
				So(stats, ShouldNotContainKey, "uptimeSeconds")
			})

			Convey("And stopping again should be safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestService_CompanyLifecycle(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := service.New()

		Convey("When a company goes through its lifecycle", func() {
			created, err := svc.CreateCompany(ctx, model.Company{Nip: model.Ptr("1234567890")})
			So(err, ShouldBeNil)
			id := *created.ID

			got, err := svc.GetCompany(ctx, id)
			So(err, ShouldBeNil)
			So(*got.Nip, ShouldEqual, "1234567890")

			got.City = model.Ptr("Wrocław")
			updated, err := svc.UpdateCompany(ctx, got)
			So(err, ShouldBeNil)
			So(*updated.City, ShouldEqual, "Wrocław")

			patched, err := svc.PatchCompany(ctx, id, model.Company{PostCode: model.Ptr("50-001")})
			So(err, ShouldBeNil)
			So(*patched.PostCode, ShouldEqual, "50-001")
			So(*patched.City, ShouldEqual, "Wrocław")

			list, total, err := svc.ListCompanies(ctx, repository.PageRequest{})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
			So(list, ShouldHaveLength, 1)

			So(svc.DeleteCompany(ctx, id), ShouldBeNil)

			Convey("Then the company should be gone", func() {
				_, err := svc.GetCompany(ctx, id)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(svc.GetStats()["companies"], ShouldEqual, 0)
			})
		})

		Convey("When mutating a missing company", func() {
			_, uerr := svc.UpdateCompany(ctx, model.Company{ID: model.Ptr(int64(9))})
			_, perr := svc.PatchCompany(ctx, 9, model.Company{})
			derr := svc.DeleteCompany(ctx, 9)

			Convey("Then ErrNotFound should be returned", func() {
				So(errors.Is(uerr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(perr, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(derr, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When creating a company that already has an id", func() {
			_, err := svc.CreateCompany(ctx, model.Company{ID: model.Ptr(int64(1))})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, repository.ErrIDExists), ShouldBeTrue)
			})
		})
	})
}

func TestService_Concurrency(t *testing.T) {
	Convey("Given a service under concurrent writes", t, func() {
		ctx := context.Background()
		svc := service.New()

		const writers, perWriter = 8, 25
		var wg sync.WaitGroup
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWriter; i++ {
					c, err := svc.CreateCompany(ctx, model.NewCompany())
					if err == nil {
						_, _ = svc.PatchCompany(ctx, *c.ID, model.Company{City: model.Ptr("Kraków")})
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then every write should be stored", func() {
			_, total, err := svc.ListCompanies(ctx, repository.PageRequest{Size: 10})
			So(err, ShouldBeNil)
			So(total, ShouldEqual, writers*perWriter)
		})
	})
}
