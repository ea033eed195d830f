package main

// Build-time variables 'version', 'commit', and 'date' are declared in
// root.go and populated via -ldflags.

// main is the entry point for the identify binary. Command parsing,
// configuration loading, and error handling follow Cobra's Execute
// pattern; RunE errors are printed and mapped to a non-zero exit code.
func main() {
	Execute()
}
