package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"custetl/internal/schema"
)

func TestTableForCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prefix  string
		country string
		want    string
		wantErr bool
	}{
		{name: "default prefix", country: "USA", want: "Table_USA"},
		{name: "custom prefix", prefix: "cust_", country: "IND", want: "cust_IND"},
		{name: "underscore ok", country: "NEW_ZEALAND", want: "Table_NEW_ZEALAND"},
		{name: "empty country", country: "", wantErr: true},
		{name: "space", country: "U S", wantErr: true},
		{name: "injection", country: `USA";DROP TABLE x;--`, wantErr: true},
		{name: "leading digit", country: "1US", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := TableForCountry(tc.prefix, tc.country)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCustomerTableDefinition(t *testing.T) {
	t.Parallel()

	def := CustomerTable("Table_USA")
	require.Equal(t, "Table_USA", def.Name)
	require.Len(t, def.Columns, len(schema.StorageColumns))

	byName := map[string]string{}
	for _, c := range def.Columns {
		byName[c.Name] = c.Type
	}
	require.Equal(t, "int", byName[schema.ColAge])
	require.Equal(t, "int", byName[schema.ColDaysSinceLastConsulted])
	// Date columns collapse to text; the store holds YYYY-MM-DD strings.
	require.Equal(t, "text", byName[schema.ColDOB])
	require.Equal(t, "text", byName[schema.ColOpenDate])
}

func TestNewUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Kind: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "oracle")
}
