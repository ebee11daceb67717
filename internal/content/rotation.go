package content

import "fmt"

// Index maps elapsed days onto a catalog of length entries.
// Negative days (a clock set before the start date) count as day 0.
func Index(days, length int) int {
	if length <= 0 {
		panic(fmt.Sprintf("content: rotation over empty catalog (length %d)", length))
	}
	if days < 0 {
		days = 0
	}
	return days % length
}

type Rotation struct {
	Day          int  `json:"day"`
	Today        int  `json:"today"`
	Yesterday    int  `json:"yesterday"`
	HasYesterday bool `json:"hasYesterday"`
}

// Rotate selects today's and yesterday's indices. Day 0 has no yesterday.
func Rotate(days, length int) Rotation {
	if days < 0 {
		days = 0
	}
	r := Rotation{Day: days, Today: Index(days, length)}
	if days >= 1 {
		r.Yesterday = Index(days-1, length)
		r.HasYesterday = true
	}
	return r
}
