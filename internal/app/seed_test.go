package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kanishkarathore/mosspay-project/internal/refdata"
	"github.com/kanishkarathore/mosspay-project/internal/repository/memory"
	"github.com/kanishkarathore/mosspay-project/internal/usecase/auth"
)

func TestSeedDemo(t *testing.T) {
	tables, err := refdata.Default()
	require.NoError(t, err)

	mem := memory.NewDB()
	require.NoError(t, seedDemo(mem, tables))

	stores := memoryStores(mem)
	login := auth.NewLoginUsecase(stores.Auth, "secret", 5)

	v, err := login.Execute(context.Background(), auth.RoleVendor, demoVendorEmail, demoPassword)
	require.NoError(t, err)
	require.Equal(t, "Demo Green Grocer", v.Name)

	_, err = login.Execute(context.Background(), auth.RoleCustomer, demoCustomerEmail, demoPassword)
	require.NoError(t, err)

	cust, err := stores.Bills.FindCustomerByPhone(context.Background(), demoCustomerPhone)
	require.NoError(t, err)
	require.Equal(t, "Demo Customer", cust.Name)
}
