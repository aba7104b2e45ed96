package collector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// field 沿着 path 逐层取对象字段，任意一层不是对象或缺字段时返回 false
func field(v any, path ...string) (any, bool) {
	cur := v
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

func asArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// truthy 与上游接口的“有值”语义一致：空串、0、false、空数组/对象都算没有
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// firstTruthy 返回 keys 中第一个有值的字段
func firstTruthy(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v := obj[k]; truthy(v) {
			return v
		}
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any, map[string]any:
		s, err := encodeJSON(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return s
	default:
		return fmt.Sprint(t)
	}
}

// displayValue 热度值：数字加千分位，其它有值的原样转字符串，没值返回空
func displayValue(v any) string {
	if !truthy(v) {
		return ""
	}
	switch t := v.(type) {
	case json.Number:
		return formatThousands(t)
	case float64:
		return formatThousands(json.Number(strconv.FormatFloat(t, 'f', -1, 64)))
	}
	return stringify(v)
}

func formatThousands(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return numberPrinter.Sprintf("%d", i)
	}
	// 超出 int64 的整数直接按数字串分组
	if isDigits(strings.TrimPrefix(n.String(), "-")) {
		return groupDigits(n.String())
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	whole, frac, hasFrac := strings.Cut(s, ".")
	out := groupDigits(whole)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// groupDigits 给可带负号的十进制整数串加千分位
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// wordOrPlaceholder 保证标题非空
func wordOrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholderWord
	}
	return s
}

// truncateRunes 按 rune 截断，避免把中文截成半个字符
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// encodeJSON 序列化时不转义 <>&，便于正则直接匹配原文
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
