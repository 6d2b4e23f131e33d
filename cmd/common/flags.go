package common

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// CommonFlags contains flags that are shared across commands
type CommonFlags struct {
	ConfigFile *string
	EnvFile    *string
	Quiet      *bool
	Version    *bool
	Help       *bool
}

// RegisterCommonFlags registers common flags with fs
func RegisterCommonFlags(fs *flag.FlagSet) *CommonFlags {
	return &CommonFlags{
		ConfigFile: fs.String("config", "", "Config file (yaml, json or toml)"),
		EnvFile:    fs.String("env", ".env", "Environment file path"),
		Quiet:      fs.Bool("quiet", false, "Suppress console tables and progress"),
		Version:    fs.Bool("version", false, "Show version information"),
		Help:       fs.Bool("help", false, "Show help information"),
	}
}

// FlagValidator provides flag validation utilities
type FlagValidator struct {
	errors []string
}

// NewFlagValidator creates a new flag validator
func NewFlagValidator() *FlagValidator {
	return &FlagValidator{
		errors: make([]string, 0),
	}
}

// ValidateInt validates an int flag value
func (v *FlagValidator) ValidateInt(name string, value int, min, max int) *FlagValidator {
	if value < min || value > max {
		v.errors = append(v.errors, fmt.Sprintf("%s must be between %d and %d, got: %d", name, min, max, value))
	}
	return v
}

// ValidateChoice validates that a string is one of the allowed choices
func (v *FlagValidator) ValidateChoice(name, value string, choices []string) *FlagValidator {
	for _, choice := range choices {
		if value == choice {
			return v
		}
	}
	v.errors = append(v.errors, fmt.Sprintf("%s must be one of [%s], got: %s", name, strings.Join(choices, ", "), value))
	return v
}

// AddError adds a custom validation error
func (v *FlagValidator) AddError(message string) *FlagValidator {
	v.errors = append(v.errors, message)
	return v
}

// HasErrors returns true if there are validation errors
func (v *FlagValidator) HasErrors() bool {
	return len(v.errors) > 0
}

// GetError returns a formatted error message with all validation errors
func (v *FlagValidator) GetError() error {
	if len(v.errors) == 0 {
		return nil
	}

	if len(v.errors) == 1 {
		return fmt.Errorf("validation error: %s", v.errors[0])
	}

	return fmt.Errorf("validation errors:\n  - %s", strings.Join(v.errors, "\n  - "))
}

// VisitedFlags returns the names of the flags explicitly set on the command line
func VisitedFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// UsageFormatter provides utilities for formatting flag usage
type UsageFormatter struct {
	AppName        string
	AppDescription string
	Examples       []UsageExample
}

// UsageExample represents a usage example
type UsageExample struct {
	Command     string
	Description string
}

// NewUsageFormatter creates a new usage formatter
func NewUsageFormatter(appName, description string) *UsageFormatter {
	return &UsageFormatter{
		AppName:        appName,
		AppDescription: description,
		Examples:       make([]UsageExample, 0),
	}
}

// AddExample adds a usage example
func (u *UsageFormatter) AddExample(command, description string) *UsageFormatter {
	u.Examples = append(u.Examples, UsageExample{
		Command:     command,
		Description: description,
	})
	return u
}

// PrintUsage prints formatted usage information for fs
func (u *UsageFormatter) PrintUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "%s - %s\n\n", u.AppName, u.AppDescription)

	fmt.Fprintf(w, "USAGE:\n")
	fmt.Fprintf(w, "  %s [OPTIONS]\n\n", fs.Name())

	if len(u.Examples) > 0 {
		fmt.Fprintf(w, "EXAMPLES:\n")
		for _, example := range u.Examples {
			fmt.Fprintf(w, "  # %s\n", example.Description)
			fmt.Fprintf(w, "  %s\n\n", example.Command)
		}
	}

	fmt.Fprintf(w, "OPTIONS:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
