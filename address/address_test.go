package address

import (
	"encoding/json"
	"testing"

	"github.com/houssamboudiar/mockusdt-tron/common"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	usdtContract    = "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t"
	usdtContractHex = "41a614f803b6fd780986a42c78ec9c7f77e6ded13c"
	zeroAddress     = "T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb"
)

func TestDecodeString(t *testing.T) {
	a, err := DecodeString(usdtContract)
	require.NoError(t, err)
	require.Equal(t, usdtContractHex, a.Hex())
	require.Equal(t, usdtContract, a.String())
	require.False(t, a.IsZero())

	b, err := DecodeString(usdtContractHex)
	require.NoError(t, err)
	require.Equal(t, a, b)

	z, err := DecodeString(zeroAddress)
	require.NoError(t, err)
	require.Equal(t, Zero, z)
	require.True(t, z.IsZero())
	require.Equal(t, zeroAddress, Zero.String())
}

func TestDecodeStringInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"not an address",
		"TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6u", // checksum
		"41a614f803b6fd780986a42c78ec9c7f77e6ded1zz",
		"3QJmnh", // too short
	} {
		_, err := DecodeString(s)
		require.ErrorIs(t, err, common.ErrInvalidArgument, s)
	}

	_, err := DecodeBytes(make([]byte, Len))
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = DecodeBytes([]byte{Prefix, 1, 2})
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestFromUint160(t *testing.T) {
	h := util.Uint160{1, 2, 3}
	a := FromUint160(h)
	require.EqualValues(t, Prefix, a[0])
	require.Equal(t, h, a.Hash())

	back, err := DecodeString(a.String())
	require.NoError(t, err)
	require.Equal(t, a, back)

	require.Negative(t, Zero.Compare(a))
	require.Positive(t, a.Compare(Zero))
	require.Zero(t, a.Compare(a))
}

func TestTextMarshaling(t *testing.T) {
	type holder struct {
		Owner Address `json:"owner"`
	}

	src := holder{Owner: MustDecodeString(usdtContract)}
	data, err := json.Marshal(src)
	require.NoError(t, err)
	require.JSONEq(t, `{"owner":"`+usdtContract+`"}`, string(data))

	var dst holder
	require.NoError(t, json.Unmarshal(data, &dst))
	require.Equal(t, src, dst)

	require.Error(t, json.Unmarshal([]byte(`{"owner":"bad"}`), &dst))
}

func TestValid(t *testing.T) {
	require.NoError(t, MustDecodeString(usdtContract).Valid())
	require.NoError(t, FromUint160(util.Uint160{7}).Valid())

	require.ErrorIs(t, Zero.Valid(), common.ErrInvalidArgument)
	require.ErrorIs(t, Address{}.Valid(), common.ErrInvalidArgument)

	var wrongPrefix Address
	wrongPrefix[Len-1] = 7
	require.False(t, wrongPrefix.IsZero())
	require.ErrorIs(t, wrongPrefix.Valid(), common.ErrInvalidArgument)

	_, err := DecodeBytes(wrongPrefix[:])
	require.ErrorIs(t, err, common.ErrInvalidArgument)
}
