package collector

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	douyinSalvageLimit = 20
	douyinWordMaxRunes = 50
)

// Endpoint 一个可用（但可能随时下线）的抖音热搜接口
type Endpoint struct {
	URL    string
	Params map[string]string
}

// DefaultDouyinEndpoints 按优先级排列，前一个失败才尝试下一个
func DefaultDouyinEndpoints() []Endpoint {
	return []Endpoint{
		{
			URL: "https://www.douyin.com/aweme/v1/web/hot/search/list/",
			Params: map[string]string{
				"device_platform": "webapp",
				"aid":             "6383",
				"channel":         "channel_pc_web",
				"detail_list":     "1",
			},
		},
		{
			URL: "https://api.douyin.com/web/api/v1/hot/search/list/",
		},
	}
}

// DouyinFetcher 抖音热搜：多接口顺序回退 + 多种响应结构解析
type DouyinFetcher struct {
	Client    *Client
	Endpoints []Endpoint
}

func (d *DouyinFetcher) Name() string {
	return "douyin"
}

func (d *DouyinFetcher) Fetch(ctx context.Context) (HotList, error) {
	logrus.Debug("fetch Douyin hot search...")

	payload, err := d.fetchFirst(ctx)
	if err != nil {
		return nil, err
	}

	entries := resolveDouyinEntries(payload)
	if len(entries) == 0 {
		return nil, sourceErrorf("douyin", "no usable data")
	}
	return normalizeDouyinEntries(entries), nil
}

func (d *DouyinFetcher) fetchFirst(ctx context.Context) (Payload, error) {
	endpoints := d.Endpoints
	if len(endpoints) == 0 {
		endpoints = DefaultDouyinEndpoints()
	}

	headers := douyinHeaders()
	client := clientOrDefault(d.Client)
	for i, ep := range endpoints {
		payload, err := client.FetchJSON(ctx, ep.URL, headers, ep.Params)
		if err != nil {
			logrus.Debugf("douyin endpoint %d failed, try next", i+1)
			continue
		}
		if !truthy(payload.Data) {
			logrus.Debugf("douyin endpoint %d returned empty body, try next", i+1)
			continue
		}
		return payload, nil
	}
	return Payload{}, sourceErrorf("douyin", "all endpoints failed")
}

func douyinHeaders() map[string]string {
	headers := commonHeaders()
	headers["Referer"] = "https://www.douyin.com/"
	headers["Origin"] = "https://www.douyin.com"
	headers["Sec-Fetch-Dest"] = "empty"
	headers["Sec-Fetch-Mode"] = "cors"
	headers["Sec-Fetch-Site"] = "same-origin"
	headers["Upgrade-Insecure-Requests"] = "1"
	return headers
}

// shapeResolver 从响应中取出热搜条目序列，取不到返回空
type shapeResolver func(Payload) []any

// douyinResolvers 依次尝试，第一个返回非空序列的生效；最后一项是正则兜底
var douyinResolvers = []shapeResolver{
	arrayAt("data", "word_list"),
	arrayAt("data", "list"),
	arrayAt("data"),
	salvageWords,
}

func resolveDouyinEntries(p Payload) []any {
	for _, resolve := range douyinResolvers {
		if entries := resolve(p); len(entries) > 0 {
			return entries
		}
	}
	return nil
}

func arrayAt(path ...string) shapeResolver {
	return func(p Payload) []any {
		v, ok := field(p.Data, path...)
		if !ok {
			return nil
		}
		arr, _ := asArray(v)
		return arr
	}
}

var douyinWordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"word"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`),
}

// salvageWords 结构都对不上时，按字段名正则提取。优先扫描原始响应体以保留上游顺序，
// 没有原始响应体时才扫描重新序列化的结果（键按字母序）
func salvageWords(p Payload) []any {
	text := string(p.Raw)
	if text == "" {
		encoded, err := encodeJSON(p.Data)
		if err != nil {
			return nil
		}
		text = encoded
	}

	for _, re := range douyinWordPatterns {
		matches := re.FindAllStringSubmatch(text, douyinSalvageLimit)
		if len(matches) == 0 {
			continue
		}
		out := make([]any, 0, len(matches))
		for _, m := range matches {
			out = append(out, map[string]any{"word": unescapeJSONString(m[1])})
		}
		return out
	}
	return nil
}

// unescapeJSONString 还原 \uXXXX 等转义，失败时原样返回
func unescapeJSONString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var u string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &u); err != nil {
		return s
	}
	return u
}

func normalizeDouyinEntries(entries []any) HotList {
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	list := make(HotList, 0, len(entries))
	for i, entry := range entries {
		item := HotItem{Rank: i + 1}
		if obj, ok := asObject(entry); ok {
			item.Word = wordOrPlaceholder(stringify(firstTruthy(obj, "word", "title", "name")))
			item.HotValue = displayValue(firstTruthy(obj, "hot_value", "hotValue", "value"))
			item.Label = stringify(firstTruthy(obj, "label", "tag"))
		} else {
			item.Word = wordOrPlaceholder(truncateRunes(stringify(entry), douyinWordMaxRunes))
		}
		list = append(list, item)
	}
	return list
}
