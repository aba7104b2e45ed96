package collector

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

const bilibiliHotURL = "https://api.bilibili.com/x/web-interface/search/square?limit=10"

// BilibiliFetcher 拉取 B 站热搜（搜索广场 trending）
type BilibiliFetcher struct {
	Client *Client
	// URL 为空时使用官方接口，测试时指向本地服务
	URL string
}

func (b *BilibiliFetcher) Name() string {
	return "bilibili"
}

func (b *BilibiliFetcher) Fetch(ctx context.Context) (HotList, error) {
	logrus.Debug("fetch Bilibili hot search...")

	headers := commonHeaders()
	headers["Referer"] = "https://www.bilibili.com/"

	target := b.URL
	if target == "" {
		target = bilibiliHotURL
	}

	payload, err := clientOrDefault(b.Client).FetchJSON(ctx, target, headers, nil)
	if err != nil {
		// 网络层失败视为暂无数据
		return nil, nil
	}
	return parseBilibili(payload.Data)
}

func parseBilibili(data any) (HotList, error) {
	code, _ := field(data, "code")
	if !isZeroCode(code) {
		msg, ok := field(data, "message")
		if !ok || !truthy(msg) {
			msg = "未知错误"
		}
		return nil, sourceErrorf("bilibili", "API返回错误: %s - %s", codeString(code), stringify(msg))
	}

	raw, _ := field(data, "data", "trending", "list")
	entries, _ := asArray(raw)
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	list := make(HotList, 0, len(entries))
	for i, entry := range entries {
		keyword, _ := field(entry, "keyword")
		list = append(list, HotItem{
			Rank: i + 1,
			Word: wordOrPlaceholder(stringify(keyword)),
		})
	}
	return list, nil
}

func isZeroCode(code any) bool {
	n, ok := code.(json.Number)
	if !ok {
		return false
	}
	i, err := n.Int64()
	return err == nil && i == 0
}

func codeString(code any) string {
	if code == nil {
		return "None"
	}
	return stringify(code)
}

func clientOrDefault(c *Client) *Client {
	if c == nil {
		return NewClient(defaultRequestTimeout)
	}
	return c
}
