// Package audio turns chatbot replies into speech. Providers synthesize
// audio files (espeak-ng offline, OpenAI TTS online) and a Speaker plays
// them back through the platform audio player.
package audio
