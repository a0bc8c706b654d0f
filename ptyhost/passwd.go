package ptyhost

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// shellFromPasswd looks up username's login shell from /etc/passwd. Go's
// os/user package doesn't expose the shell field, so this reads the file
// directly, matching what the teacher's shell/pty.go did for the same
// fallback.
func shellFromPasswd(username string) (string, error) {
	f, err := os.Open("/etc/passwd")
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		if len(fields) < 7 || fields[0] != username {
			continue
		}
		return fields[6], nil
	}
	return "", fmt.Errorf("ptyhost: no passwd entry for %s", username)
}
