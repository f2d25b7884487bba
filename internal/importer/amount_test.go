package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		in      string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{in: "12", want: "12.00"},
		{in: "12.5", want: "12.50"},
		{in: "12,5", want: "12.50"},
		{in: "-64,00", want: "-64.00"},
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "1,234", want: "1234.00"},
		{in: "1,234,567", want: "1234567.00"},
		{in: "₹ 2,500.75", want: "2500.75"},
		{in: "€1.000,00", want: "1000.00"},
		{in: "", wantErr: true},
		{in: "-", wantErr: true},
		{in: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestParseDate(t *testing.T) {
	type testCase struct {
		in     string
		want   string
		wantOK bool
	}

	tests := []testCase{
		{in: "2024-03-01", want: "2024-03-01", wantOK: true},
		{in: "01-03-2024", want: "2024-03-01", wantOK: true},
		{in: "01/03/2024", want: "2024-03-01", wantOK: true},
		{in: "1/3/2024", want: "2024-03-01", wantOK: true},
		{in: "01.03.2024", want: "2024-03-01", wantOK: true},
		{in: "2024-03-01T23:30:00+05:30", want: "2024-03-01", wantOK: true},
		{in: "Total", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got.Key())
			}
		})
	}
}
