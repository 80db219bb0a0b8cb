package owtypes

import (
	"fmt"
	"strings"
)

type Group int

const (
	GROUP_BRONZE Group = iota
	GROUP_SILVER
	GROUP_GOLD
	GROUP_PLATINUM
	GROUP_DIAMOND
	GROUP_MASTER
	GROUP_GRANDMASTER
)

var groupNames = []string{
	"Bronze",
	"Silver",
	"Gold",
	"Platinum",
	"Diamond",
	"Master",
	"Grandmaster",
}

func ParseGroup(name string) (Group, error) {
	for i, n := range groupNames {
		if n == name {
			return Group(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rank group '%s'", name)
}

func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return fmt.Sprintf("Group(%d)", int(g))
	}
	return groupNames[g]
}

func (g Group) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= len(groupNames) {
		return nil, fmt.Errorf("invalid rank group %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

type Role int

const (
	ROLE_TANK Role = iota
	ROLE_DAMAGE
	ROLE_SUPPORT
)

var roleNames = []string{"Tank", "Damage", "Support"}

// Roles lists every role in declaration order.
var Roles = []Role{ROLE_TANK, ROLE_DAMAGE, ROLE_SUPPORT}

// ParseRole is case-insensitive so that both API names ("Tank") and markup
// attributes ("tank") are accepted.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if strings.EqualFold(n, name) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role '%s'", name)
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

func (r Role) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(roleNames) {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type Rank struct {
	Group   Group `json:"group"`
	Tier    Tier  `json:"tier"`
	Role    Role  `json:"role"`
	Console bool  `json:"console"`
}

func (r Rank) String() string {
	return fmt.Sprintf("%s %d", r.Group, r.Tier)
}

func cloneRanks(ranks []Rank) []Rank {
	if ranks == nil {
		return nil
	}
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// MergeRanks overlays secondary on primary: a secondary rank replaces the
// primary one for the same role and platform, primary ranks secondary has no
// counterpart for are kept. The result is never nil.
func MergeRanks(primary, secondary []Rank) []Rank {
	type slot struct {
		role    Role
		console bool
	}
	covered := make(map[slot]bool, len(secondary))
	merged := make([]Rank, 0, len(primary)+len(secondary))
	for _, r := range secondary {
		covered[slot{r.Role, r.Console}] = true
		merged = append(merged, r)
	}
	for _, r := range primary {
		if !covered[slot{r.Role, r.Console}] {
			merged = append(merged, r)
		}
	}
	return merged
}
