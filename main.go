// Command scenario-runner describes a household, sends it to the
// PolicyEngine calculate API and shows the result three ways: the JSON
// input, the API output and a code snippet reproducing the call.
//
// Usage:
//
//	scenario-runner serve
//	scenario-runner submit --mode us --reform -f situation.json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
