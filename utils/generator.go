package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

// GenerateUserID returns an opaque user identifier like UID3F29A1C4.
func GenerateUserID() string {
	return "UID" + randomHex(4)
}

// GenerateAdminID returns an opaque admin identifier like A3F29A1C4.
func GenerateAdminID() string {
	return "A" + randomHex(4)
}

// GenerateDepartmentID returns an opaque department identifier like DEPT_3F29A1C4.
func GenerateDepartmentID() string {
	return "DEPT_" + randomHex(4)
}

// GenerateServiceID returns a service identifier scoped to its department,
// like SERV_3F29A1@DEPT_....
func GenerateServiceID(deptID string) string {
	return fmt.Sprintf("SERV_%s@%s", randomHex(3), deptID)
}
