package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justsurfingit/senior-job-match/internal/common"
	"github.com/justsurfingit/senior-job-match/internal/session"
)

// clock is swapped in tests.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func requireAdmin(actor session.Actor) error {
	if actor.Anonymous() {
		return common.NewError(common.CodeUnauthorized, "login required", nil)
	}
	if !actor.IsAdmin() {
		return common.NewError(common.CodeForbidden, "administrator only", nil)
	}
	return nil
}

// requireSelfOrAdmin allows the principal (role, id) itself or an administrator.
func requireSelfOrAdmin(actor session.Actor, role session.Role, id uuid.UUID) error {
	if actor.Anonymous() {
		return common.NewError(common.CodeUnauthorized, "login required", nil)
	}
	if actor.IsAdmin() || actor.Is(role, id) {
		return nil
	}
	return common.NewError(common.CodeForbidden, "not allowed to act for another "+string(role), nil)
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, common.NewValidationError("invalid "+field, map[string]string{field: "must be a UUID"})
	}
	return id, nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
