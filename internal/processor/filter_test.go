package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LJTian/HotSearch/internal/collector"
)

func TestDropPinned(t *testing.T) {
	list := collector.HotList{
		{Rank: 0, Word: "pin"},
		{Rank: 1, Word: "a"},
		{Rank: 2, Word: "b"},
	}

	out := DropPinned(list)
	assert.Equal(t, collector.HotList{{Rank: 1, Word: "a"}, {Rank: 2, Word: "b"}}, out)
	// 原列表不变
	assert.Len(t, list, 3)
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		args string
		want int
	}{
		{"", 10},
		{"   ", 10},
		{"5", 5},
		{" 20 ", 20},
		{"1", 1},
		{"0", 10},
		{"21", 10},
		{"-3", 10},
		{"abc", 10},
		{"3条", 10},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ParseCount(c.args, 10), "ParseCount(%q)", c.args)
	}
}
