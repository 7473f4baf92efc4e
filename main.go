// Package main is the entry point for the crickstats CLI tool, which records
// cricket practice sessions and match scorecards and computes coaching
// dashboards, leaderboards, trends and player progress reports.
package main

import "github.com/pable/go-cricket-coach/cmd"

func main() {
	cmd.Execute()
}
