// Package cli provides command-line interface setup and configuration
// for the gemdict application. It handles flag parsing, command
// creation, settings validation and output rendering using cobra, viper
// and validator.
package cli
