package collector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	cases := []struct {
		in   json.Number
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567", "1,234,567"},
		{"-1234567", "-1,234,567"},
		{"1234.5", "1,234.5"},
		{"1e5", "100,000"},
		{"12345678901234567890123", "12,345,678,901,234,567,890,123"},
		{"-98765432109876543210", "-98,765,432,109,876,543,210"},
		{"-1234.25", "-1,234.25"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, formatThousands(c.in), "formatThousands(%q)", c.in)
	}
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "", displayValue(nil))
	assert.Equal(t, "", displayValue(""))
	assert.Equal(t, "", displayValue(json.Number("0")))
	assert.Equal(t, "9,876,543", displayValue(json.Number("9876543")))
	assert.Equal(t, "120万", displayValue("120万"))
	assert.Equal(t, "12,345,678,901,234,567,890,123", displayValue(json.Number("12345678901234567890123")))
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "1", groupDigits("1"))
	assert.Equal(t, "-123", groupDigits("-123"))
	assert.Equal(t, "123,456", groupDigits("123456"))
	assert.Equal(t, "1,234,567,890", groupDigits("1234567890"))
}

func TestTruthyAndFirstTruthy(t *testing.T) {
	obj := map[string]any{
		"word":  "",
		"title": "标题",
		"name":  "名字",
	}
	assert.Equal(t, "标题", firstTruthy(obj, "word", "title", "name"))
	assert.Nil(t, firstTruthy(obj, "missing"))

	assert.False(t, truthy(map[string]any{}))
	assert.False(t, truthy([]any{}))
	assert.True(t, truthy(json.Number("3")))
	assert.False(t, truthy(false))
}

func TestTruncateRunesHandlesChinese(t *testing.T) {
	s := "你好，世界，这是一个很长的中文句子"
	assert.Equal(t, "你好，世界", truncateRunes(s, 5))
	assert.Equal(t, "短文本", truncateRunes("短文本", 10))
}

func TestWordOrPlaceholder(t *testing.T) {
	assert.Equal(t, placeholderWord, wordOrPlaceholder(""))
	assert.Equal(t, placeholderWord, wordOrPlaceholder("  "))
	assert.Equal(t, "A", wordOrPlaceholder("A"))
}
