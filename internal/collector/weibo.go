package collector

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	weiboHotURL = "https://weibo.com/ajax/side/hotSearch"

	// PinnedLabel 微博置顶热搜的标签
	PinnedLabel = "置顶"
)

// WeiboFetcher 拉取微博实时热搜，hotgov 存在时作为第 0 条置顶
type WeiboFetcher struct {
	Client *Client
	URL    string
}

func (w *WeiboFetcher) Name() string {
	return "weibo"
}

func (w *WeiboFetcher) Fetch(ctx context.Context) (HotList, error) {
	logrus.Debug("fetch Weibo hot search...")

	headers := commonHeaders()
	headers["Referer"] = "https://s.weibo.com/"

	target := w.URL
	if target == "" {
		target = weiboHotURL
	}

	payload, err := clientOrDefault(w.Client).FetchJSON(ctx, target, headers, nil)
	if err != nil {
		return nil, nil
	}
	return parseWeibo(payload.Data)
}

func parseWeibo(data any) (HotList, error) {
	root, ok := asObject(data)
	if !ok {
		return nil, sourceErrorf("weibo", "unexpected response type %T", data)
	}

	var body map[string]any
	if d := root["data"]; d != nil {
		if body, ok = asObject(d); !ok {
			return nil, sourceErrorf("weibo", "unexpected data type %T", d)
		}
	}

	var realtime []any
	if r := body["realtime"]; r != nil {
		if realtime, ok = asArray(r); !ok {
			return nil, sourceErrorf("weibo", "unexpected realtime type %T", r)
		}
	}
	if len(realtime) == 0 {
		return nil, nil
	}

	list := make(HotList, 0, maxItems+1)

	if hotgov := body["hotgov"]; truthy(hotgov) {
		pinned, ok := asObject(hotgov)
		if !ok {
			return nil, sourceErrorf("weibo", "unexpected hotgov type %T", hotgov)
		}
		list = append(list, HotItem{
			Rank:     0,
			Word:     wordOrPlaceholder(stringify(pinned["word"])),
			HotValue: displayValue(pinned["num"]),
			Label:    PinnedLabel,
		})
	}

	if len(realtime) > maxItems {
		realtime = realtime[:maxItems]
	}
	for i, entry := range realtime {
		obj, ok := asObject(entry)
		if !ok {
			return nil, sourceErrorf("weibo", "unexpected realtime entry type %T", entry)
		}
		list = append(list, HotItem{
			Rank:     i + 1,
			Word:     wordOrPlaceholder(stringify(obj["word"])),
			HotValue: displayValue(obj["num"]),
			Label:    stringify(obj["label_name"]),
		})
	}

	return list, nil
}
