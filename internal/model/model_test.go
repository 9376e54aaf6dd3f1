package model

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gormTag(t *testing.T, typ reflect.Type, field string) string {
	t.Helper()
	f, ok := typ.FieldByName(field)
	require.True(t, ok, "%s has no field %s", typ.Name(), field)
	return f.Tag.Get("gorm")
}

// Number series restart at 001-001-001 for every company, so the unique
// index on Number must be scoped by CompanyID or the second tenant's first
// insert collides.
func TestNumberUniquenessIsScopedPerCompany(t *testing.T) {
	cases := []struct {
		typ   reflect.Type
		index string
	}{
		{reflect.TypeOf(WorkshopOrder{}), "idx_orders_company_number"},
		{reflect.TypeOf(Invoice{}), "idx_invoices_company_number"},
	}
	for _, tc := range cases {
		t.Run(tc.typ.Name(), func(t *testing.T) {
			company := gormTag(t, tc.typ, "CompanyID")
			number := gormTag(t, tc.typ, "Number")
			assert.Contains(t, company, "uniqueIndex:"+tc.index)
			assert.Contains(t, number, "uniqueIndex:"+tc.index)
			assert.False(t, strings.Contains(number, "uniqueIndex;"),
				"Number must not carry a single-column unique index")
		})
	}
}
