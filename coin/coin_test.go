package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/phtlc/codec"
	"github.com/iov-one/phtlc/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same ticker": {
			a:    NewCoin(5, "ETH"),
			b:    NewCoin(7, "ETH"),
			want: NewCoin(12, "ETH"),
		},
		"empty coin is neutral": {
			a:    Coin{},
			b:    NewCoin(7, "SOL"),
			want: NewCoin(7, "SOL"),
		},
		"different tickers": {
			a:       NewCoin(1, "ETH"),
			b:       NewCoin(1, "SOL"),
			wantErr: errors.ErrType,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "ETH"),
			b:       NewCoin(1, "ETH"),
			wantErr: errors.ErrOverflow,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubtract(t *testing.T) {
	got, err := NewCoin(10, "ETH").Subtract(NewCoin(4, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, NewCoin(6, "ETH"), got)

	_, err = NewCoin(3, "ETH").Subtract(NewCoin(4, "ETH"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	_, err = NewCoin(3, "ETH").Subtract(NewCoin(1, "SOL"))
	assert.True(t, errors.ErrType.Is(err))

	got, err = NewCoin(3, "ETH").Subtract(Coin{})
	require.NoError(t, err)
	assert.Equal(t, NewCoin(3, "ETH"), got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, NewCoin(1, "ETH").Validate())
	assert.NoError(t, NewCoin(0, "USDC").Validate())
	assert.True(t, errors.ErrType.Is(NewCoin(1, "eth").Validate()))
	assert.True(t, errors.ErrType.Is(NewCoin(1, "").Validate()))
	assert.True(t, errors.ErrType.Is(NewCoin(1, "TOOLONGT").Validate()))
}

func TestParseCoin(t *testing.T) {
	c, err := ParseCoin("1000 SOL")
	require.NoError(t, err)
	assert.Equal(t, NewCoin(1000, "SOL"), c)
	assert.Equal(t, "1000 SOL", c.String())

	_, err = ParseCoin("1.5 SOL")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = ParseCoin("-1 SOL")
	assert.True(t, errors.ErrInput.Is(err))
	_, err = ParseCoin("99999999999999999999999 SOL")
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestJSON(t *testing.T) {
	var c Coin
	require.NoError(t, json.Unmarshal([]byte(`"12 ETH"`), &c))
	assert.Equal(t, NewCoin(12, "ETH"), c)

	require.NoError(t, json.Unmarshal([]byte(`{"ticker": "USDC", "amount": 3}`), &c))
	assert.Equal(t, NewCoin(3, "USDC"), c)

	raw, err := json.Marshal(NewCoin(5, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, `"5 ETH"`, string(raw))
}

func TestBinary(t *testing.T) {
	in := NewCoin(150, "ETH")
	raw, err := codec.Marshal(&in)
	require.NoError(t, err)

	var out Coin
	require.NoError(t, codec.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}
