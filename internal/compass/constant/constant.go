package constant

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 20:31
 * @file: constant.go
 * @description: constant
 */

const (
	// DETAIL handler 结果，由统一响应中间件消费
	DETAIL = "detail"
	// OPERATION 无返回体操作的标记
	OPERATION = "operation"
	// USER_ID 鉴权中间件写入的当前用户
	USER_ID = "userId"

	// DistributeLockKeyPrefix 分发运行的 redis 锁前缀
	DistributeLockKeyPrefix = "compass:distribute:lock:"

	// SrvRecordPrefix 服务注册前缀
	SrvRecordPrefix = "compass_srv_"
)
