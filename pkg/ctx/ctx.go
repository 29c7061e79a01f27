package ctx

import (
	"context"

	"github.com/go-compass/compass/pkg/cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/9 0:12
 * @file: ctx.go
 * @description: Global context
 */

type Context struct {
	DB    *gorm.DB
	Redis *redis.Client
	Cache cache.ICache
	Ctx   context.Context
	Log   *zap.SugaredLogger
}

func NewContext(ctx context.Context, db *gorm.DB, redisClient *redis.Client, log *zap.SugaredLogger) *Context {
	c := &Context{
		DB:    db,
		Redis: redisClient,
		Ctx:   ctx,
		Log:   log,
	}
	if redisClient != nil {
		c.Cache = cache.NewRedisCache(redisClient)
	}
	return c
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) GetDB() *gorm.DB {
	return c.DB
}

func (c *Context) GetRedis() *redis.Client {
	return c.Redis
}
