package mumvest

import "embed"

// ContentFS holds the markdown catalog: moments, swaps, challenges and lessons.
//
//go:embed content
var ContentFS embed.FS
