package core

import (
	"strings"

	"github.com/google/uuid"
)

// DeriveID returns the explicit id verbatim when one is given. Otherwise it returns
// the name-based (version 5, DNS namespace) UUID of "<module>:<action>",
// which is the same on every run and machine.
func DeriveID(explicit string, module string, action string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(module+":"+action)).String()
}
