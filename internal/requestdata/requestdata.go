package requestdata

import (
	"context"

	"github.com/unimindapp/unimind-backend/internal/auth"
)

type requestDataKey struct{}

// RequestData is the per-request identity attached by the auth middleware.
// It is request-scoped and never persisted.
type RequestData struct {
	Claims *auth.Claims
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// UID returns the verified caller uid, or "" when the request is
// unauthenticated.
func UID(ctx context.Context) string {
	rd := GetRequestData(ctx)
	if rd == nil || rd.Claims == nil {
		return ""
	}
	return rd.Claims.UID
}
