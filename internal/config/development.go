package config

import (
	"fmt"
	"os"
	"strconv"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// Seed reads MINES_SEED. When set, every game is laid out from the same
// seed so boards can be reproduced.
func Seed() (seed uint64, ok bool, err error) {
	s, ok := os.LookupEnv("MINES_SEED")
	if !ok || s == "" {
		return 0, false, nil
	}
	seed, err = strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("unable to parse MINES_SEED: %w", err)
	}
	return seed, true, nil
}
