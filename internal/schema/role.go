package schema

import "fmt"

// Role is the semantic meaning assigned to one source column.
type Role int

const (
	RolePatientID Role = iota
	RoleDate
	RoleTime
	RoleDateTime
	RoleSystolic
	RoleDiastolic
	RoleHeartRate
	RoleNotes
	RoleIgnore
)

// rolePriority fixes the order roles are tested in. Name matches all score the
// same confidence, so the first matching role in this order wins ties.
var rolePriority = []Role{
	RolePatientID,
	RoleDate,
	RoleTime,
	RoleDateTime,
	RoleSystolic,
	RoleDiastolic,
	RoleHeartRate,
	RoleNotes,
}

// Roles returns the closed set of legal roles, in priority order with Ignore last.
// Callers building column-mapping UIs should present exactly these.
func Roles() []Role {
	out := make([]Role, 0, len(rolePriority)+1)
	out = append(out, rolePriority...)
	out = append(out, RoleIgnore)
	return out
}

var roleNames = map[Role]string{
	RolePatientID: "patient_id",
	RoleDate:      "date",
	RoleTime:      "time",
	RoleDateTime:  "datetime",
	RoleSystolic:  "sbp",
	RoleDiastolic: "dbp",
	RoleHeartRate: "heart_rate",
	RoleNotes:     "notes",
	RoleIgnore:    "ignore",
}

// String returns the stable canonical field name for the role.
func (r Role) String() string {
	if n, ok := roleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole maps a canonical field name back to its Role.
func ParseRole(s string) (Role, error) {
	for r, n := range roleNames {
		if n == s {
			return r, nil
		}
	}
	return RoleIgnore, fmt.Errorf("unknown column role: %q", s)
}

// MarshalYAML serializes the role as its canonical name.
func (r Role) MarshalYAML() (interface{}, error) { return r.String(), nil }

// UnmarshalYAML parses the canonical name form.
func (r *Role) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
