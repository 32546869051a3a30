package event

import "fmt"

// MembershipState is the membership value of an m.room.member event.
type MembershipState string

const (
	MembershipJoin   MembershipState = "join"
	MembershipLeave  MembershipState = "leave"
	MembershipBan    MembershipState = "ban"
	MembershipInvite MembershipState = "invite"
	MembershipKnock  MembershipState = "knock"
)

// MembershipStates returns the closed set of membership states.
func MembershipStates() []MembershipState {
	return []MembershipState{MembershipJoin, MembershipLeave, MembershipBan, MembershipInvite, MembershipKnock}
}

// ParseMembership maps a wire value onto a MembershipState.
func ParseMembership(raw string) (MembershipState, error) {
	for _, s := range MembershipStates() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: membership %q", ErrUnsupportedEvent, raw)
}
