package event

import (
	"time"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/11/2 17:20
 * @file: event.go
 * @description: in-process event
 */

type Type string

const (
	GrantCreated      Type = "grant.create"
	GrantRevoked      Type = "grant.revoke"
	CreatorRevoked    Type = "creator.revoke"
	ProjectionCreated Type = "projection.create"
	ProjectionAccept  Type = "projection.accept"
	ProjectionDecline Type = "projection.decline"
	ProjectionRevoked Type = "projection.revoke"
	GroupMemberJoin   Type = "group.member.join"
	GroupMemberLeave  Type = "group.member.leave"
	WorkspaceExit     Type = "workspace.exit"
)

type Event struct {
	Type      Type
	ActorId   string
	Payload   map[string]any
	Timestamp time.Time
}

func New(t Type, actorId string, payload map[string]any) Event {
	return Event{
		Type:      t,
		ActorId:   actorId,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}
