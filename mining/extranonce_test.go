package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzsquirrell/TrezarCoin/util"
)

func TestExtraNonceCacheResetsOnTipChange(t *testing.T) {
	c := NewExtraNonceCache()
	var tipA, tipB util.Hash
	tipA[0] = 1
	tipB[0] = 2

	s1, err := c.Increment(tipA, 10)
	require.NoError(t, err)
	s2, err := c.Increment(tipA, 10)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s2)

	assert.EqualValues(t, 2, c.extraNonce)
	_, err = c.Increment(tipB, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.extraNonce)
}

func TestExtraNonceCacheRejectsOversizedScriptSig(t *testing.T) {
	c := NewExtraNonceCache()
	c.extraNonce = 0
	orig := CoinbaseFlags
	CoinbaseFlags = make([]byte, 200)
	defer func() { CoinbaseFlags = orig }()

	_, err := c.Increment(util.Hash{}, 1)
	assert.Error(t, err)
}

func TestScriptNumLengthPrefixMatchesPayloadForSmallPositiveHeights(t *testing.T) {
	s := scriptNum(500000)
	assert.NotEmpty(t, s)
	assert.Equal(t, int(s[0]), len(s)-1)
}
