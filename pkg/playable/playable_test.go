package playable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOK(t *testing.T) {
	a := assert.New(t)

	res := OK()
	a.Equal("status", res.Key)
	a.Equal("OK", res.Value)
	a.Equal("", res.Context)

	a.Equal("abc", OK("abc").Context)
}

func TestAdditionalData(t *testing.T) {
	a := assert.New(t)

	var payload PayloadIn
	err := json.Unmarshal([]byte(`{"action":"action","subject":"raise","additionalData":{"amount":300,"half":2.5,"table":"t1","allIn":true},"context":"c1"}`), &payload)
	a.NoError(err)
	a.Equal("raise", payload.Subject)
	a.Equal("c1", payload.Context)

	ad := payload.AdditionalData
	amount, ok := ad.GetInt64("amount")
	a.True(ok)
	a.Equal(int64(300), amount)

	n, ok := ad.GetInt("amount")
	a.True(ok)
	a.Equal(300, n)

	_, ok = ad.GetInt64("half")
	a.False(ok)

	s, ok := ad.GetString("table")
	a.True(ok)
	a.Equal("t1", s)

	b, ok := ad.GetBool("allIn")
	a.True(ok)
	a.True(b)

	_, ok = ad.GetString("missing")
	a.False(ok)
	_, ok = ad.GetBool("table")
	a.False(ok)
	_, ok = ad.GetInt("table")
	a.False(ok)
}
