// Package session carries the acting user through a request.
package session

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleWorker   Role = "worker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleWorker, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is the caller of an operation: a worker, an employer or an administrator.
// The zero Actor is anonymous.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) Anonymous() bool {
	return a.ID == uuid.Nil || a.Role == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin && a.ID != uuid.Nil
}

// Is reports whether the actor is the given principal acting in role.
func (a Actor) Is(role Role, id uuid.UUID) bool {
	return a.Role == role && a.ID != uuid.Nil && a.ID == id
}

func Admin(id uuid.UUID) Actor {
	return Actor{ID: id, Role: RoleAdmin}
}

func Worker(id uuid.UUID) Actor {
	return Actor{ID: id, Role: RoleWorker}
}

func Employer(id uuid.UUID) Actor {
	return Actor{ID: id, Role: RoleEmployer}
}

type contextKey string

const actorKey contextKey = "actor"

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// FromContext returns the actor stored by WithActor, or the anonymous actor.
func FromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey).(Actor); ok {
		return actor
	}
	return Actor{}
}
