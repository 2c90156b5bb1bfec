package util

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseByteOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    ByteOrder
		wantErr error
	}{
		{input: "big", want: BigEndian},
		{input: "little", want: LittleEndian},
		{input: "LITTLE", want: LittleEndian},
		{input: " Big ", want: BigEndian},
		{input: "middle", wantErr: ErrInvalidConfiguration},
		{input: "", wantErr: ErrInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseByteOrder(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestByteOrderFlag(t *testing.T) {
	order := BigEndian
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.VarP(&order, "byteorder", "b", "byte order")

	require.NoError(t, fs.Parse([]string{"-b", "little"}))
	require.Equal(t, LittleEndian, order)
	require.Equal(t, "little", fs.Lookup("byteorder").Value.String())

	require.Error(t, fs.Parse([]string{"--byteorder", "sideways"}))
	require.False(t, ByteOrder(7).Valid())
}
