package app

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kanishkarathore/mosspay-project/internal/refdata"
	"github.com/kanishkarathore/mosspay-project/internal/repository/memory"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/catalog"
)

// Demo credentials for STORE_DRIVER=memory. Both accounts use demoPassword.
const (
	demoVendorEmail   = "vendor@demo.mosspay"
	demoCustomerEmail = "customer@demo.mosspay"
	demoCustomerPhone = "9000000001"
	demoPassword      = "mosspay-demo"
)

var demoItems = []struct {
	name  string
	price string
	unit  string
	stock int
}{
	{"Local Tomatoes", "2.40", "kg", 40},
	{"Local Apples", "3.10", "kg", 25},
	{"Oat Milk (1L)", "2.75", "bottle", 12},
	{"Jute Bag", "4.00", "piece", 8},
}

func seedDemo(mem *memory.DB, tables *refdata.Tables) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	vendorID := mem.AddVendor(memory.VendorSeed{
		BusinessName: "Demo Green Grocer",
		Email:        demoVendorEmail,
		PasswordHash: string(hash),
	})
	mem.AddCustomer(memory.CustomerSeed{
		FullName:     "Demo Customer",
		Email:        demoCustomerEmail,
		Phone:        demoCustomerPhone,
		PasswordHash: string(hash),
	})

	items := memory.NewCatalogStore(mem)
	for _, it := range demoItems {
		_, err := items.Create(context.Background(), catalog.NewItem{
			VendorID:       vendorID,
			Name:           it.name,
			Price:          decimal.RequireFromString(it.price),
			Unit:           it.unit,
			Stock:          it.stock,
			FootprintSaved: tables.Footprint(it.name),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
