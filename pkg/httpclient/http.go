package httpclient

import (
	"context"
	"net/http"
)

// BaseResponse carries the raw response alongside any decoded result, so
// callers can inspect status and body on non-2xx replies.
type BaseResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

type HTTPClient interface {
	Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error)
	Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error)
}
