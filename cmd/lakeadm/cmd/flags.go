// Copyright © 2026 Lakeland Data

package cmd

type flagsT struct {
	root struct {
		logLevel string
		forceYes bool
	}
	stats struct {
		human bool
	}
	fixity struct {
		uid string
	}
	dump struct {
		src      string
		dest     string
		binaries string
	}
	load struct {
		src      string
		dest     string
		noVerify bool
	}
}

var lakeadmFlags flagsT
