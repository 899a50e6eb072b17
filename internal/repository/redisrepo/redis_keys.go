package redisrepo

import "fmt"

const (
	TOKEN_KEY = "session:%s:token" // <sessionID>
)

func TokenKey(sessionID string) string {
	return fmt.Sprintf(TOKEN_KEY, sessionID)
}
