// Package processor turns command-line flags and configuration into a
// running chat: it builds the responder, the speech output and input
// adapters, and then either answers a single question or launches the GUI.
package processor
