package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"debate-bot/internal/infra/config"
	"debate-bot/internal/infra/logger"
)

// CheckStatus represents the result of a health check.
type CheckStatus string

const (
	StatusPass CheckStatus = "PASS"
	StatusWarn CheckStatus = "WARN"
	StatusFail CheckStatus = "FAIL"
)

// CheckResult holds the outcome of a single health check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // optional fix suggestion
}

// Check is a named health check function.
type Check struct {
	Name string
	Fn   func(cfg *config.Config) CheckResult
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and backing services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.OutOrStdout(), configPath(cmd))
		},
	}
}

// runDoctor executes all health checks and reports results.
func runDoctor(out io.Writer, cfgPath string) error {
	cfg, cfgErr := config.Load(cfgPath)

	checks := []Check{
		{Name: "Config file", Fn: checkConfigFile(cfgPath, cfgErr)},
		{Name: "Store", Fn: checkStore},
		{Name: "HTTP listener", Fn: checkListener(func(c *config.Config) (string, bool) { return c.Server.Addr, true })},
		{Name: "gRPC listener", Fn: checkListener(func(c *config.Config) (string, bool) { return c.GRPC.Addr, c.GRPC.Enabled })},
		{Name: "Kafka brokers", Fn: checkKafka},
		{Name: "Retention", Fn: checkRetention},
	}

	fmt.Fprintln(out, "debatebot doctor")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintln(out)

	var pass, warn, fail int
	for _, check := range checks {
		result := check.Fn(cfg)
		result.Name = check.Name

		fmt.Fprintf(out, "  %s %s: %s\n", statusIcon(result.Status), result.Name, result.Message)
		if result.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", result.Fix)
		}

		switch result.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("-", 50))
	fmt.Fprintf(out, "Results: %d passed, %d warnings, %d failed\n", pass, warn, fail)

	if fail > 0 {
		return fmt.Errorf("%d check(s) failed", fail)
	}
	return nil
}

func statusIcon(s CheckStatus) string {
	switch s {
	case StatusPass:
		return "[PASS]"
	case StatusWarn:
		return "[WARN]"
	case StatusFail:
		return "[FAIL]"
	default:
		return "[????]"
	}
}

// checkConfigFile reports whether the config file exists and loads.
func checkConfigFile(cfgPath string, cfgErr error) func(*config.Config) CheckResult {
	return func(_ *config.Config) CheckResult {
		if cfgErr != nil {
			return CheckResult{
				Status:  StatusFail,
				Message: fmt.Sprintf("config %s is invalid: %v", cfgPath, cfgErr),
				Fix:     "Fix the listed fields or remove the file to run with defaults",
			}
		}
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			return CheckResult{
				Status:  StatusWarn,
				Message: fmt.Sprintf("no config file at %s, using defaults", cfgPath),
			}
		}
		return CheckResult{Status: StatusPass, Message: fmt.Sprintf("loaded %s", cfgPath)}
	}
}

// checkStore opens the configured backend and pings it.
func checkStore(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "cannot check, config not loaded"}
	}
	st, closer, err := openStore(cfg.Store, logger.Discard())
	if err != nil {
		return CheckResult{
			Status:  StatusFail,
			Message: fmt.Sprintf("%s store cannot be opened: %v", cfg.Store.Backend, err),
			Fix:     "Check store.sqlite_path or store.redis_url",
		}
	}
	defer closer()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !st.HealthCheck(ctx) {
		return CheckResult{
			Status:  StatusFail,
			Message: fmt.Sprintf("%s store is not responding", cfg.Store.Backend),
		}
	}
	n, err := st.Count(ctx)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("%s store reachable but count failed: %v", cfg.Store.Backend, err)}
	}
	msg := fmt.Sprintf("%s store healthy, %d conversations", cfg.Store.Backend, n)
	if cfg.Store.Backend == "memory" {
		return CheckResult{Status: StatusWarn, Message: "memory store: conversations are lost on restart"}
	}
	return CheckResult{Status: StatusPass, Message: msg}
}

// checkListener verifies an address can be bound. addr reports the address
// and whether the listener is enabled.
func checkListener(addr func(*config.Config) (string, bool)) func(*config.Config) CheckResult {
	return func(cfg *config.Config) CheckResult {
		if cfg == nil {
			return CheckResult{Status: StatusFail, Message: "cannot check, config not loaded"}
		}
		a, enabled := addr(cfg)
		if !enabled {
			return CheckResult{Status: StatusPass, Message: "disabled"}
		}
		ln, err := net.Listen("tcp", a)
		if err != nil {
			return CheckResult{
				Status:  StatusFail,
				Message: fmt.Sprintf("cannot bind %s: %v", a, err),
				Fix:     "Stop the process using the port or change the address",
			}
		}
		ln.Close()
		return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%s available", a)}
	}
}

// checkKafka dials every configured broker.
func checkKafka(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "cannot check, config not loaded"}
	}
	k := cfg.Events.Kafka
	if !k.Enabled {
		return CheckResult{Status: StatusPass, Message: "event export disabled"}
	}

	var d net.Dialer
	var down []string
	for _, b := range k.Brokers {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		conn, err := d.DialContext(ctx, "tcp", b)
		cancel()
		if err != nil {
			down = append(down, b)
			continue
		}
		conn.Close()
	}
	switch {
	case len(down) == len(k.Brokers):
		return CheckResult{
			Status:  StatusFail,
			Message: "no kafka broker reachable",
			Fix:     "Check events.kafka.brokers or disable events.kafka",
		}
	case len(down) > 0:
		return CheckResult{Status: StatusWarn, Message: "unreachable brokers: " + strings.Join(down, ", ")}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d broker(s) reachable, topic %s", len(k.Brokers), k.Topic)}
}

func checkRetention(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "cannot check, config not loaded"}
	}
	if !cfg.Retention.Enabled {
		return CheckResult{Status: StatusWarn, Message: "disabled, idle conversations are kept forever"}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("schedule %q, max idle %s", cfg.Retention.Schedule, cfg.Retention.MaxIdle),
	}
}
