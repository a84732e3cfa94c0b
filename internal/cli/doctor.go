// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for vectorize.
//
// Command: doctor
// Short:   Check that vectorize can reach the service and write its files
// Aliases: diag
//
// Examples:
//   vectorize doctor             Run all health checks
//   vectorize doctor --json      Health check results in JSON
//
// Health Checks Performed:
//   1. Config Valid       - Configuration file parses and validates
//   2. Service Reachable  - The conversion endpoint answers HTTP
//   3. Output Writable    - output.dir accepts new files
//   4. Log Writable       - The log file directory accepts new files
//   5. Clipboard          - Copy to clipboard is available (optional)
//
// Exit Codes:
//   0   All checks passed (warnings allowed)
//   1   One or more checks failed
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vectorize-tui/internal/config"
)

// =============================================================================
// DOCTOR STYLES
// =============================================================================

var (
	checkPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates a non-critical problem.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the bracketed marker for the status.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return RenderConditional(checkPassStyle, "[OK]")
	case CheckWarn:
		return RenderConditional(checkWarnStyle, "[!!]")
	case CheckFail:
		return RenderConditional(checkFailStyle, "[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix instruction
}

// Render returns a formatted string representation of the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), c.Message)
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + RenderConditional(fixStyle, "-> "+c.Fix)
	}
	return result
}

// DoctorOptions carries everything the checks look at.
type DoctorOptions struct {
	Config *config.Config
	Path   string // config file in use

	// HTTPClient probes the endpoint. Nil uses a client with ProbeTimeout.
	HTTPClient *http.Client

	// ClipboardUnsupported overrides clipboard.Unsupported in tests.
	ClipboardUnsupported *bool
}

// ProbeTimeout bounds the endpoint reachability check.
const ProbeTimeout = 5 * time.Second

// =============================================================================
// HANDLE DOCTOR
// =============================================================================

// HandleDoctor runs every health check and prints the results to w.
// It returns an error when at least one check failed.
func HandleDoctor(ctx context.Context, w io.Writer, args Args, opts DoctorOptions) error {
	checks := RunChecks(ctx, opts)

	passed, warned, failed := tally(checks)

	if args.JSON {
		return writeDoctorJSON(w, checks, passed, warned, failed)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderConditional(TitleStyle, "vectorize doctor"))
	fmt.Fprintln(w, RenderSeparator(ReportWidth()))
	fmt.Fprintln(w)

	for _, check := range checks {
		fmt.Fprintln(w, check.Render())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, RenderConditional(SeparatorStyle, strings.Repeat("-", ReportWidth())))

	summary := []string{fmt.Sprintf("%d passed", passed)}
	if warned > 0 {
		summary = append(summary, RenderConditional(checkWarnStyle, fmt.Sprintf("%d warning", warned)))
	}
	if failed > 0 {
		summary = append(summary, RenderConditional(checkFailStyle, fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintln(w, RenderConditional(DimStyle, strings.Join(summary, ", ")))
	fmt.Fprintln(w)

	if failed > 0 {
		return NewCommandError("doctor", "check", fmt.Sprintf("%d health check(s) failed", failed), nil)
	}
	return nil
}

func tally(checks []*HealthCheck) (passed, warned, failed int) {
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			passed++
		case CheckWarn:
			warned++
		case CheckFail:
			failed++
		}
	}
	return passed, warned, failed
}

func writeDoctorJSON(w io.Writer, checks []*HealthCheck, passed, warned, failed int) error {
	jsonChecks := make([]DoctorCheck, 0, len(checks))
	for _, check := range checks {
		jsonChecks = append(jsonChecks, DoctorCheck{
			Name:    check.Name,
			Status:  check.Status.String(),
			Message: check.Message,
			Fix:     check.Fix,
		})
	}

	resp := NewJSONResponse("doctor", DoctorData{
		Checks: jsonChecks,
		Summary: DoctorSummary{
			Passed:  passed,
			Warned:  warned,
			Failed:  failed,
			Healthy: failed == 0,
		},
	})

	// Failures still carry the check data.
	if failed > 0 {
		errMsg := fmt.Sprintf("%d health check(s) failed", failed)
		resp.Success = false
		resp.Error = &errMsg
	}

	if err := resp.Write(w); err != nil {
		return err
	}
	if failed > 0 {
		return ErrJSONAlreadyWritten
	}
	return nil
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

// RunChecks runs all health checks in order.
func RunChecks(ctx context.Context, opts DoctorOptions) []*HealthCheck {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return []*HealthCheck{
		checkConfigValid(cfg, opts.Path),
		checkServiceReachable(ctx, cfg, opts.HTTPClient),
		checkDirWritable("Output Writable", "Output directory", outputDir(cfg), "output.dir"),
		checkLogWritable(cfg),
		checkClipboard(opts.ClipboardUnsupported),
	}
}

func checkConfigValid(cfg *config.Config, path string) *HealthCheck {
	check := &HealthCheck{Name: "Config Valid"}

	if path == "" {
		check.Status = CheckWarn
		check.Message = "Could not determine config path"
		return check
	}

	if err := cfg.Validate(); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Config invalid: %s", err)
		check.Fix = "Run: vectorize config init --force"
		return check
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		check.Status = CheckPass
		check.Message = "Config valid (using defaults)"
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Config valid (%s)", path)
	return check
}

// checkServiceReachable only needs an HTTP answer; any status proves the
// endpoint is listening. 5xx is reported as a warning.
func checkServiceReachable(ctx context.Context, cfg *config.Config, client *http.Client) *HealthCheck {
	check := &HealthCheck{Name: "Service Reachable"}
	endpoint := cfg.Service.Endpoint
	fix := "Check service.endpoint: vectorize config set service.endpoint <url>"

	if client == nil {
		client = &http.Client{Timeout: ProbeTimeout}
	}

	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Invalid endpoint %q: %s", endpoint, err)
		check.Fix = fix
		return check
	}

	resp, err := client.Do(req)
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Cannot reach %s: %s", endpoint, err)
		check.Fix = fix
		return check
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("%s answered HTTP %d", endpoint, resp.StatusCode)
		return check
	}

	check.Status = CheckPass
	check.Message = fmt.Sprintf("Service reachable (%s, HTTP %d)", endpoint, resp.StatusCode)
	return check
}

func outputDir(cfg *config.Config) string {
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func checkLogWritable(cfg *config.Config) *HealthCheck {
	if cfg.Log.Path == "" {
		return &HealthCheck{
			Name:    "Log Writable",
			Status:  CheckPass,
			Message: "File logging disabled",
		}
	}
	check := checkDirWritable("Log Writable", "Log directory", filepath.Dir(cfg.Log.Path), "log.path")
	if check.Status == CheckFail {
		// The TUI runs without a log file, it just loses diagnostics.
		check.Status = CheckWarn
	}
	return check
}

// checkDirWritable creates dir when missing and writes a probe file into it.
func checkDirWritable(name, label, dir, key string) *HealthCheck {
	check := &HealthCheck{Name: name}

	if err := os.MkdirAll(dir, 0755); err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("Could not create %s: %s", strings.ToLower(label), err)
		check.Fix = fmt.Sprintf("Create it manually or change %s", key)
		return check
	}

	probe, err := os.CreateTemp(dir, ".vectorize-probe-*")
	if err != nil {
		check.Status = CheckFail
		check.Message = fmt.Sprintf("%s not writable: %s", label, err)
		check.Fix = fmt.Sprintf("Check permissions on %s or change %s", dir, key)
		return check
	}
	probe.Close()
	os.Remove(probe.Name())

	check.Status = CheckPass
	check.Message = fmt.Sprintf("%s writable (%s)", label, dir)
	return check
}

func checkClipboard(override *bool) *HealthCheck {
	check := &HealthCheck{Name: "Clipboard"}

	unsupported := clipboard.Unsupported
	if override != nil {
		unsupported = *override
	}

	if unsupported {
		check.Status = CheckWarn
		check.Message = "No clipboard utility found, copy (y) is unavailable"
		check.Fix = "Install xclip, xsel or wl-clipboard"
		return check
	}

	check.Status = CheckPass
	check.Message = "Clipboard available"
	return check
}
