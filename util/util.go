package util

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func init() {
	rand.Seed(time.Now().UnixNano())
}

func GetUUID() string {
	return uuid.New().String()
}

// RandomString - Returns a random alphabetical string of given length.
func RandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rand.Intn(len(letterRunes))]
	}
	return string(b)
}

// FloatToString - Shortest decimal representation, no exponent for ids.
func FloatToString(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
