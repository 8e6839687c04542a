// Package models lists the OpenAI models usable for speech output and
// speech input with the configured API key.
package models
