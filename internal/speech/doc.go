// Package speech captures a spoken question from the microphone and turns
// it into text with a speech-to-text service.
//
// Capture is energy based: a clip starts at the first loud frame and ends
// after a stretch of trailing silence or when the maximum duration is
// reached. Microphone access needs PortAudio and the "portaudio" build tag;
// without it Capture returns an error that the chat window shows as a line.
package speech
