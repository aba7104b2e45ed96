package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode 与 Client 一致地用 UseNumber 解析
func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

const weiboWithPinned = `{
  "ok": 1,
  "data": {
    "hotgov": {"word": "#坚持人民至上#", "num": 0},
    "realtime": [
      {"word": "第一条", "num": 1234567, "label_name": "热"},
      {"word": "第二条", "num": 88888, "label_name": ""},
      {"word": "第三条", "num": 999, "label_name": "新"}
    ]
  }
}`

func TestWeiboPinnedBecomesRankZero(t *testing.T) {
	srv := newJSONServer(t, http.StatusOK, weiboWithPinned)

	f := &WeiboFetcher{Client: NewClient(time.Second), URL: srv.URL}
	list, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)

	assert.Equal(t, HotItem{Rank: 0, Word: "#坚持人民至上#", Label: PinnedLabel}, list[0])
	assert.Equal(t, HotItem{Rank: 1, Word: "第一条", HotValue: "1,234,567", Label: "热"}, list[1])
	assert.Equal(t, HotItem{Rank: 2, Word: "第二条", HotValue: "88,888"}, list[2])
	assert.Equal(t, 3, list[3].Rank)
}

func TestWeiboEmptyHotgovHasNoPinned(t *testing.T) {
	list, err := parseWeibo(decode(t, `{"data":{"hotgov":{},"realtime":[{"word":"a","num":1},{"word":"b","num":2}]}}`))
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, it := range list {
		assert.NotEqual(t, 0, it.Rank)
	}
}

func TestWeiboEmptyRealtimeIsEmpty(t *testing.T) {
	list, err := parseWeibo(decode(t, `{"data":{"hotgov":{"word":"x"},"realtime":[]}}`))
	assert.NoError(t, err)
	assert.Empty(t, list)

	list, err = parseWeibo(decode(t, `{"ok":-100}`))
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestWeiboCapsRealtimeAtTen(t *testing.T) {
	body := `{"data":{"hotgov":{"word":"pin"},"realtime":[` +
		`{"word":"1"},{"word":"2"},{"word":"3"},{"word":"4"},{"word":"5"},{"word":"6"},` +
		`{"word":"7"},{"word":"8"},{"word":"9"},{"word":"10"},{"word":"11"},{"word":"12"}]}}`

	list, err := parseWeibo(decode(t, body))
	require.NoError(t, err)
	require.Len(t, list, 11)
	assert.Equal(t, 0, list[0].Rank)
	assert.Equal(t, 10, list[10].Rank)
	assert.Equal(t, "10", list[10].Word)
}

func TestWeiboUnexpectedShapeIsSourceError(t *testing.T) {
	for _, body := range []string{
		`[]`,
		`{"data":"oops"}`,
		`{"data":{"realtime":{"word":"a"}}}`,
		`{"data":{"realtime":["a"]}}`,
	} {
		_, err := parseWeibo(decode(t, body))
		var se *SourceError
		assert.True(t, errors.As(err, &se), "body %s", body)
	}
}

func TestWeiboTransportFailureIsEmpty(t *testing.T) {
	srv := newJSONServer(t, http.StatusForbidden, `{}`)

	list, err := (&WeiboFetcher{Client: NewClient(time.Second), URL: srv.URL}).Fetch(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, list)
}
