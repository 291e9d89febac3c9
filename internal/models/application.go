package models

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationRecommended ApplicationStatus = "recommended"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// applicationTransitions lists the allowed next states. Terminal states have none.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:     {ApplicationRecommended, ApplicationHired, ApplicationRejected},
	ApplicationRecommended: {ApplicationHired, ApplicationRejected},
	ApplicationHired:       nil,
	ApplicationRejected:    nil,
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationTransitions[s]
	return ok
}

func (s ApplicationStatus) Terminal() bool {
	next, ok := applicationTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether the edge s -> next exists.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
