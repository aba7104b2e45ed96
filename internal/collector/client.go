package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 2 << 20 // 2MB，抖音接口偶尔返回很大的 detail_list

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Payload 一次成功请求的结果：原始响应体与 UseNumber 解析后的 JSON
type Payload struct {
	Raw  []byte
	Data any
}

// Client 发起单次 GET 并解析 JSON，内部不做重试
type Client struct {
	Timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{Timeout: timeout}
}

// commonHeaders 返回各平台共用的浏览器请求头，调用方可以在副本上追加
func commonHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      browserUserAgent,
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
		"Connection":      "keep-alive",
	}
}

// FetchJSON 对 rawURL 发起一次 GET。任何失败都以 *TransportError 返回。
func (c *Client) FetchJSON(ctx context.Context, rawURL string, headers, params map[string]string) (Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target, err := withParams(rawURL, params)
	if err != nil {
		return Payload{}, c.fail(rawURL, errors.Wrap(err, "build url"))
	}
	if err := ctx.Err(); err != nil {
		return Payload{}, c.fail(target, err)
	}

	// 每次请求新建 collector，避免 colly 的已访问 URL 记录拦截重复请求
	col := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
		colly.MaxBodySize(maxResponseBytes),
		// 状态码由下面统一判断，任何 2xx 都算成功
		colly.ParseHTTPErrorResponse(),
	)
	col.SetRequestTimeout(c.timeout())

	var (
		body   []byte
		status int
	)
	col.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})
	col.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	if err := col.Visit(target); err != nil {
		return Payload{}, c.fail(target, err)
	}
	if err := ctx.Err(); err != nil {
		return Payload{}, c.fail(target, err)
	}
	if status/100 != 2 {
		return Payload{}, c.fail(target, errors.Errorf("unexpected status %d", status))
	}
	if body == nil {
		return Payload{}, c.fail(target, errors.New("empty response"))
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return Payload{}, c.fail(target, errors.Wrap(err, "decode json"))
	}

	return Payload{Raw: body, Data: data}, nil
}

func (c *Client) timeout() time.Duration {
	if c == nil || c.Timeout <= 0 {
		return defaultRequestTimeout
	}
	return c.Timeout
}

func (c *Client) fail(target string, err error) error {
	logrus.WithField("url", target).Warnf("fetch failed: %v", err)
	return &TransportError{URL: target, Err: err}
}

func withParams(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
