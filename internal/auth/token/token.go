package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The admin token is the original storefront's opaque scheme: base64 of
// "<user id>:<unix timestamp>". It carries no signature; trust comes from
// re-checking the user against the database on every request.

var ErrMalformedToken = errors.New("malformed token")

func GenerateToken(userID int64, issuedAt time.Time) string {
	raw := fmt.Sprintf("%d:%d", userID, issuedAt.Unix())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func ParseToken(token string) (int64, time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, time.Time{}, ErrMalformedToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return 0, time.Time{}, ErrMalformedToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, time.Time{}, ErrMalformedToken
	}
	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, ErrMalformedToken
	}

	return userID, time.Unix(issued, 0), nil
}
