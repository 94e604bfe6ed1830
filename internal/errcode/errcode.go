package errcode

// 导出通知中携带的错误码：
// - 0：无错误
// - 4xxx：任务无需重试的业务错误（例如简历在导出前已被删除）
// - 5xxx：系统错误，任务会按重试策略重新执行
const (
	OK            = 0
	ResumeMissing = 4004
	SystemError   = 5000
	RenderFailed  = 5001
	StorageFailed = 5002
)
