// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hamed0406/statusgrid/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load()
	if err != nil {
		fail(err.Error())
	}

	if _, err := cfg.Location(); err != nil {
		fail(fmt.Sprintf("TZ_NAME %q is not a valid zone: %v", cfg.Timezone, err))
	}
	ok("timezone " + cfg.Timezone)

	if _, err := os.Stat(cfg.TargetsFile); err != nil {
		if cfg.TargetsRequired {
			fail(fmt.Sprintf("TARGETS_FILE %q missing and TARGETS_REQUIRED is set", cfg.TargetsFile))
		}
		warn(fmt.Sprintf("TARGETS_FILE %q missing; the built-in default set will be monitored", cfg.TargetsFile))
	} else {
		ok("targets file " + cfg.TargetsFile)
	}

	switch cfg.ProbeMode {
	case "http", "ping", "dns":
		ok("probe mode " + cfg.ProbeMode)
	default:
		fail(fmt.Sprintf("PROBE_MODE %q unknown (want http, ping or dns)", cfg.ProbeMode))
	}

	if cfg.BucketWidth < time.Minute {
		fail(fmt.Sprintf("BUCKET_WIDTH %v is below the minute granularity floor", cfg.BucketWidth))
	}
	if cfg.Retention() < cfg.BucketWidth {
		warn(fmt.Sprintf("retention %v is shorter than one bucket (%v)", cfg.Retention(), cfg.BucketWidth))
	}
	ok(fmt.Sprintf("retention %dd, bucket width %v", cfg.RetentionDays, cfg.BucketWidth))
}
