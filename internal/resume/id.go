package resume

import (
	"strconv"
	"sync"
	"time"
)

// IDGenerator 生成以毫秒时间戳为基础的字符串 ID。
// 同一毫秒内的重复调用会顺延 1，保证进程内单调递增且不重复。
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator 使用给定时钟构造生成器，clock 为 nil 时使用 time.Now。
func NewIDGenerator(clock func() time.Time) *IDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &IDGenerator{now: clock}
}

// Next 返回下一个 ID。
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
