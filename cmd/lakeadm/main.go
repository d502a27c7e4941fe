// Copyright © 2026 Lakeland Data

package main

import (
	"github.com/lakeland-data/lakeland/cmd/lakeadm/cmd"
)

func main() {
	cmd.Execute()
}
