package service

import (
	"encoding/json"

	"github.com/go-compass/compass/internal/compass/errs"
	"github.com/go-compass/compass/internal/compass/model"
	"github.com/go-compass/compass/internal/compass/repo"
	"github.com/go-compass/compass/pkg/ctx"
	"github.com/go-compass/compass/pkg/event"
	"github.com/go-compass/compass/pkg/id"
	"github.com/go-compass/compass/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/10/17
 * @file: service_audit.go
 * @description: 审计服务
 */

// AuditService 审计服务，订阅事件总线落盘，只增不改
type AuditService struct {
	ctx  *ctx.Context
	repo *repo.Repositories
}

// NewAuditService 创建审计服务实例并订阅所有事件
func NewAuditService(c *ctx.Context, repos *repo.Repositories, bus *event.Bus) *AuditService {
	as := &AuditService{
		ctx:  c,
		repo: repos,
	}
	bus.SubscribeAll(as.record)
	return as
}

// record 事件落盘，失败只记日志不反向影响业务
func (as *AuditService) record(e event.Event) {
	auditEvent := &model.AuditEvent{
		EventId: id.GetULID(),
		Action:  string(e.Type),
		ActorId: e.ActorId,
		Payload: marshalPayload(e.Payload),
	}
	if err := as.repo.Audit.CreateEvent(auditEvent); err != nil {
		log.Errorw("audit event persist failed", "action", e.Type, "error", err)
	}
}

// QueryEvents 分页查询审计事件
func (as *AuditService) QueryEvents(req *model.QueryAuditReq) ([]model.AuditEvent, int64, error) {
	events, total, err := as.repo.Audit.QueryEvents(req)
	if err != nil {
		return nil, 0, errs.Internal(err, "query audit events")
	}
	return events, total, nil
}

func marshalPayload(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
