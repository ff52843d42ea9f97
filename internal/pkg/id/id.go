package id

import (
	"github.com/google/uuid"
)

// maxExternalLen 外部传入 ID 的最大长度
const maxExternalLen = 128

// New 生成新的UUID（string格式）
func New() string {
	return uuid.New().String()
}

// OrNew 外部传入的 ID 可用时沿用，否则生成新的
// 只接受可打印 ASCII，避免把控制字符写进日志和响应头
func OrNew(external string) string {
	if external == "" || len(external) > maxExternalLen {
		return New()
	}
	for i := 0; i < len(external); i++ {
		if c := external[i]; c < 0x21 || c > 0x7e {
			return New()
		}
	}
	return external
}
