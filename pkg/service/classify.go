package service

import (
	"regexp"
	"strings"
)

// Markers written by the notebook setup cells this tool was built to navigate.
const (
	markerInstallation = "COMPREHENSIVE INSTALLATION"
	markerImports      = "COMPREHENSIVE IMPORTS"
	markerHelpers      = "HELPER FUNCTIONS"
	markerSafeInstall  = "safe_install"
	markerSafeImport   = "safe_import"
)

// Summary tags and initialization labels
const (
	TagInstallation   = "INSTALLATION"
	TagImports        = "IMPORTS"
	TagHelpers        = "HELPERS"
	tagFunctionPrefix = "FUNCTION: "

	InitInstallFunction = "INSTALL_FUNCTION"
	InitImportFunction  = "IMPORT_FUNCTION"
	InitSetup           = "SETUP"
)

var safeCellExecutionPattern = regexp.MustCompile(`@safe_cell_execution\("([^"]+)"\)`)

// labelRule assigns a label to a cell source. Rules are evaluated in order
// and the first one that returns ok wins.
type labelRule func(source string) (label string, ok bool)

func contains(marker, label string) labelRule {
	return func(source string) (string, bool) {
		return label, strings.Contains(source, marker)
	}
}

func safeCellExecution(source string) (string, bool) {
	m := safeCellExecutionPattern.FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	return tagFunctionPrefix + m[1], true
}

func always(label string) labelRule {
	return func(string) (string, bool) { return label, true }
}

// summaryTagRules label cells in the summary listing.
var summaryTagRules = []labelRule{
	contains(markerInstallation, TagInstallation),
	contains(markerImports, TagImports),
	contains(markerHelpers, TagHelpers),
	safeCellExecution,
}

// initTypeRules label cells that already qualified as initialization cells.
var initTypeRules = []labelRule{
	contains(markerInstallation, TagInstallation),
	contains(markerImports, TagImports),
	contains(markerHelpers, TagHelpers),
	contains(markerSafeInstall, InitInstallFunction),
	contains(markerSafeImport, InitImportFunction),
	always(InitSetup),
}

// initMarkers decide whether a code cell is an initialization cell at all.
var initMarkers = []string{
	markerInstallation,
	markerImports,
	markerHelpers,
	markerSafeInstall,
	markerSafeImport,
	"import subprocess",
	"from datetime import datetime",
	"FileManager",
	"ProgressTracker",
	"CheckpointManager",
}

// errorTextMarkers flag stream text that looks like a failure report.
var errorTextMarkers = []string{"error:", "exception:", "failed:", "traceback"}

// summaryErrorMarkers are the looser markers used for the summary flag.
var summaryErrorMarkers = []string{"error", "exception"}

func classify(rules []labelRule, source string) (string, bool) {
	for _, rule := range rules {
		if label, ok := rule(source); ok {
			return label, true
		}
	}
	return "", false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
