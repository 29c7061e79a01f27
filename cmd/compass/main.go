package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/go-compass/compass/internal/compass/conf"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/internal/compass/router"
	"github.com/go-compass/compass/internal/compass/service"
	"github.com/go-compass/compass/pkg/cache"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/database"
	"github.com/go-compass/compass/pkg/event"
	"github.com/go-compass/compass/pkg/http"
	"github.com/go-compass/compass/pkg/log"
	"github.com/go-compass/compass/pkg/metrics"
	"github.com/go-compass/compass/pkg/runner"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/4 19:51
 * @file: main.go
 * @description: compass server
 */

var (
	configFile string
)

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()
	printRunner()

	appConf := conf.NewConf(configFile)

	log.MustInit(&appConf.Log)
	defer func() {
		_ = log.Sync()
	}()

	redis, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		panic(err)
	}

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		panic(err)
	}
	if err := db.AutoMigrate(
		&model.Workspace{},
		&model.WorkspaceMember{},
		&model.Group{},
		&model.GroupMember{},
		&model.EntityGrant{},
		&model.CreatorRevocation{},
		&model.Track{},
		&model.SharedItem{},
		&model.Projection{},
		&model.AuditEvent{},
	); err != nil {
		panic(err)
	}

	Ctx := ctx.NewContext(context.Background(), db, redis, nil)

	repos := repo.NewRepositories(database.NewGormDB(db))
	bus := event.NewBus()
	services := service.NewServices(Ctx, repos, bus)

	metricsSrv := metrics.NewMetricsServer(appConf.Metrics)
	if err := metricsSrv.Start(); err != nil {
		panic(err)
	}
	defer func() {
		_ = metricsSrv.Stop(context.Background())
	}()

	route := router.NewRouter(&appConf.Http, Ctx, services)

	httpClean := http.NewHttp(appConf.Http, route.Router())
	httpClean()
}

func printRunner() {
	fmt.Println("runner.pwd:", runner.Pwd)
	fmt.Println("runner.hostname:", runner.Hostname)
}
