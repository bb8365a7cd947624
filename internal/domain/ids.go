package domain

import "strconv"

// UniqueID returns base when it is free, otherwise the first of base-2,
// base-3, ... that taken reports as unused.
func UniqueID(base string, taken func(id string) bool) string {
	id := base
	for n := 2; taken(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}
