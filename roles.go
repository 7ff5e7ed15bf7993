package sessions

// Action identifies an operation submitted to the authorization gate.
type Action string

const (
	ActionViewSessions  Action = "session.view.list"
	ActionViewSession   Action = "session.view.detail"
	ActionCreateSession Action = "session.create"
	ActionUpdateSession Action = "session.update"
	ActionDeleteSession Action = "session.delete"
	ActionJoinSession   Action = "session.join"
	ActionLeaveSession  Action = "session.leave"
	ActionViewProfile   Action = "profile.view"
	ActionDeleteProfile Action = "profile.delete"
)

// Access is the decision context the gate evaluates: an explicit variant
// resolved once per action instead of scattered boolean checks. The gate is
// a UX convenience only; enforcement belongs to the server.
type Access int

const (
	AccessAnonymous Access = iota
	AccessMember
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessMember:
		return "member"
	case AccessAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// AccessFor derives the decision context from an optional identity.
func AccessFor(identity *Identity) Access {
	if identity == nil {
		return AccessAnonymous
	}
	if identity.Role() == RoleAdmin {
		return AccessAdmin
	}
	return AccessMember
}

// Permit is the pure decision function over (access, action) pairs.
func Permit(access Access, action Action) bool {
	switch action {
	case ActionCreateSession, ActionUpdateSession, ActionDeleteSession:
		return access == AccessAdmin
	case ActionViewSessions, ActionViewSession,
		ActionJoinSession, ActionLeaveSession,
		ActionViewProfile, ActionDeleteProfile:
		return access != AccessAnonymous
	default:
		return false
	}
}

// Route identifies a view destination gated by the route guard.
type Route string

const (
	RouteLogin         Route = "login"
	RouteRegister      Route = "register"
	RouteSessions      Route = "sessions"
	RouteSessionDetail Route = "sessions/detail"
	RouteSessionForm   Route = "sessions/form"
	RouteMe            Route = "me"
)

// GuardRoute decides whether the access level may navigate to the route.
// Denied navigation answers with a redirect target instead of an error:
// anonymous users go to the login entry point, authenticated users hitting
// anonymous-only or admin-only routes go back to the session list.
func GuardRoute(access Access, route Route) (Route, bool) {
	switch route {
	case RouteLogin, RouteRegister:
		if access == AccessAnonymous {
			return route, true
		}
		return RouteSessions, false
	case RouteSessions, RouteSessionDetail, RouteMe:
		if access == AccessAnonymous {
			return RouteLogin, false
		}
		return route, true
	case RouteSessionForm:
		if access == AccessAnonymous {
			return RouteLogin, false
		}
		if access != AccessAdmin {
			return RouteSessions, false
		}
		return route, true
	default:
		return RouteLogin, false
	}
}
