// Command lunar is the command line front end of the calendar engine and
// planner.
package main

import "github.com/CatcatWinter/calendar-planner/internal/cli"

func main() {
	cli.Execute()
}
