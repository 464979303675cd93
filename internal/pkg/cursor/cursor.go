package cursor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// 游标对外不透明：base64("v1:key1:key2:...")，key 为排序键（int64）。
// 排序键在同一排序方式下单调，重放同一游标得到确定的下一页。

const prefix = "v1"

var ErrInvalidCursor = errors.New("游标无效")

// Encode 编码排序键为游标
func Encode(keys ...int64) string {
	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, prefix)
	for _, k := range keys {
		parts = append(parts, strconv.FormatInt(k, 10))
	}
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
}

// Decode 解码游标，返回排序键
func Decode(s string, wantKeys int) ([]int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != wantKeys+1 || parts[0] != prefix {
		return nil, fmt.Errorf("%w: unexpected shape", ErrInvalidCursor)
	}

	keys := make([]int64, 0, wantKeys)
	for _, p := range parts[1:] {
		k, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
