package collector

import "fmt"

// TransportError 网络、超时、非 2xx 或 JSON 解析失败。调用方按“暂无数据”处理。
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SourceError 请求成功但上游明确报错，或所有解析方式都拿不到数据
type SourceError struct {
	Source string
	Reason string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func sourceErrorf(source, format string, args ...any) *SourceError {
	return &SourceError{Source: source, Reason: fmt.Sprintf(format, args...)}
}
